// Package parser builds the retained scene tree from a token stream.
//
// The parser is a recursive descent over a peek/advance cursor. Nodes
// are constructed directly into a caller-provided bounded arena; child
// lists are flattened into the arena during parsing and recovered by
// root filtering when the enclosing list closes.
package parser

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/lexer"
	"github.com/swen-ui/swen/scene"
)

// Option configures a parse.
type Option func(*Parser)

// WithArena supplies the node arena. Callers that re-parse into the
// same retained tree pass the tree's arena; by default a fresh arena
// with scene.DefaultNodeCapacity is created.
func WithArena(a *scene.Arena) Option {
	return func(p *Parser) {
		p.arena = a
	}
}

// WithNodeCapacity sets the capacity of the default arena.
// Ignored when WithArena is given.
func WithNodeCapacity(n int) Option {
	return func(p *Parser) {
		p.nodeCapacity = n
	}
}

// WithFilterCapacity sets the root-filter bitset capacity.
func WithFilterCapacity(n int) Option {
	return func(p *Parser) {
		p.filterCapacity = n
	}
}

// Parser consumes a token stream and produces a scene.Root.
// A Parser is single-use.
type Parser struct {
	tokens []lexer.Token
	pos    int

	arena          *scene.Arena
	nodeCapacity   int
	filterCapacity int

	// declared tracks source-declared ids within the current app
	// subtree; conflicts are parse errors.
	declared map[string]lexer.Span
}

// Parse builds a scene tree from tokens. The stream must be terminated
// by an eof token, as produced by lexer.ScanAll.
func Parse(tokens []lexer.Token, opts ...Option) (*scene.Root, error) {
	p := &Parser{
		tokens:         tokens,
		nodeCapacity:   scene.DefaultNodeCapacity,
		filterCapacity: scene.DefaultFilterCapacity,
		declared:       make(map[string]lexer.Span),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.arena == nil {
		p.arena = scene.NewArena(p.nodeCapacity)
	}
	return p.parseRoot()
}

// ParseSource lexes and parses in one step.
func ParseSource(src []byte, opts ...Option) (*scene.Root, error) {
	tokens, err := lexer.New(src).ScanAll()
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}

// Cursor operations.

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Tag != lexer.TagEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tag lexer.Tag) (lexer.Token, error) {
	tok := p.peek()
	if tok.Tag != tag {
		return tok, errAt(ErrExpectedToken, tok.Span, "expected %q, found %q", tag.String(), tok.Tag.String())
	}
	return p.advance(), nil
}

// skipUnknown logs and consumes one unexpected token inside a body.
// Recovery applies only to stray tokens; missing braces stay fatal.
func (p *Parser) skipUnknown(where string) {
	tok := p.advance()
	swen.Logger().Warn("parser: skipping unexpected token",
		"where", where,
		"tag", tok.Tag.String(),
		"line", tok.Span.Line,
		"column", tok.Span.Column)
}

// parseRoot parses `root { (desktop | system)* }` and enforces exactly
// one desktop and one system child.
func (p *Parser) parseRoot() (*scene.Root, error) {
	if _, err := p.expect(lexer.TagRoot); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	root := &scene.Root{}
	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			if root.Desktop == nil {
				return nil, errAt(ErrMissingRequiredNode, tok.Span, "root has no desktop")
			}
			if root.System == nil {
				return nil, errAt(ErrMissingRequiredNode, tok.Span, "root has no system")
			}
			return root, nil

		case lexer.TagDesktop:
			if root.Desktop != nil {
				return nil, errAt(ErrDuplicateNode, tok.Span, "second desktop under root")
			}
			p.advance()
			d, err := p.parseDesktop()
			if err != nil {
				return nil, err
			}
			root.Desktop = d

		case lexer.TagSystem:
			if root.System != nil {
				return nil, errAt(ErrDuplicateNode, tok.Span, "second system under root")
			}
			p.advance()
			s, err := p.parseSystem()
			if err != nil {
				return nil, err
			}
			root.System = s

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed root block")

		default:
			p.skipUnknown("root")
		}
	}
}

// parseDesktop parses the desktop body. Size is required and must be
// strictly positive.
func (p *Parser) parseDesktop() (*scene.Desktop, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	d := &scene.Desktop{}
	var sizeSeen, bgSeen, nodesSeen, workspacesSeen bool

	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			if !sizeSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "desktop has no size")
			}
			return d, nil

		case lexer.TagSize:
			if sizeSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate size")
			}
			sizeSeen = true
			p.advance()
			v, err := p.parseVector()
			if err != nil {
				return nil, err
			}
			if !v.IsPositive() {
				return nil, errAt(ErrInvalidSize, tok.Span, "desktop size must be positive, got (%d, %d)", v.X, v.Y)
			}
			d.Size = v

		case lexer.TagBackground:
			if bgSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate background")
			}
			bgSeen = true
			p.advance()
			c, err := p.parseColor()
			if err != nil {
				return nil, err
			}
			d.Background = &c

		case lexer.TagNodes:
			if nodesSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate nodes")
			}
			nodesSeen = true
			p.advance()
			nodes, err := p.parseNodeList(swen.Vector{})
			if err != nil {
				return nil, err
			}
			d.Nodes = nodes

		case lexer.TagWorkspaces:
			if workspacesSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate workspaces")
			}
			workspacesSeen = true
			p.advance()
			ws, err := p.parseWorkspaces()
			if err != nil {
				return nil, err
			}
			d.Workspaces = ws
			if len(ws) > 0 {
				d.ActiveWorkspace = ws[0]
			}

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed desktop block")

		default:
			p.skipUnknown("desktop")
		}
	}
}

// parseSystem parses the system body. App subtrees are retained so
// the data stays reachable; everything else is skipped.
func (p *Parser) parseSystem() (*scene.System, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	s := &scene.System{}
	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			return s, nil

		case lexer.TagApp:
			p.advance()
			app, err := p.parseApp()
			if err != nil {
				return nil, err
			}
			s.Apps = append(s.Apps, app)

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed system block")

		default:
			p.skipUnknown("system")
		}
	}
}

// parseWorkspaces parses `[ { app* }* ]`.
func (p *Parser) parseWorkspaces() ([]*scene.Workspace, error) {
	if _, err := p.expect(lexer.TagLBracket); err != nil {
		return nil, err
	}

	var list []*scene.Workspace
	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBracket:
			p.advance()
			return list, nil

		case lexer.TagLBrace:
			ws, err := p.parseWorkspace()
			if err != nil {
				return nil, err
			}
			list = append(list, ws)

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed workspaces list")

		default:
			p.skipUnknown("workspaces")
		}
	}
}

func (p *Parser) parseWorkspace() (*scene.Workspace, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	ws := &scene.Workspace{}
	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			return ws, nil

		case lexer.TagApp:
			p.advance()
			app, err := p.parseApp()
			if err != nil {
				return nil, err
			}
			ws.Apps = append(ws.Apps, app)

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed workspace block")

		default:
			p.skipUnknown("workspace")
		}
	}
}

// parseApp parses an app surface. Each app opens a fresh declared-id
// scope; ids may repeat across apps but not within one.
func (p *Parser) parseApp() (*scene.App, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	outer := p.declared
	p.declared = make(map[string]lexer.Span)
	defer func() { p.declared = outer }()

	app := &scene.App{}
	var idSeen, sizeSeen, posSeen, bgSeen, nodesSeen bool

	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			return app, nil

		case lexer.TagID:
			if idSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate id")
			}
			idSeen = true
			p.advance()
			str, err := p.expect(lexer.TagString)
			if err != nil {
				return nil, err
			}
			app.ID = str.Text()

		case lexer.TagSize:
			if sizeSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate size")
			}
			sizeSeen = true
			p.advance()
			v, err := p.parseVector()
			if err != nil {
				return nil, err
			}
			if !v.IsPositive() {
				return nil, errAt(ErrInvalidSize, tok.Span, "app size must be positive, got (%d, %d)", v.X, v.Y)
			}
			app.Size = v

		case lexer.TagPosition:
			if posSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate position")
			}
			posSeen = true
			p.advance()
			v, err := p.parseVector()
			if err != nil {
				return nil, err
			}
			app.Position = v

		case lexer.TagBackground:
			if bgSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate background")
			}
			bgSeen = true
			p.advance()
			c, err := p.parseColor()
			if err != nil {
				return nil, err
			}
			app.Background = c

		case lexer.TagNodes:
			if nodesSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate nodes")
			}
			if !posSeen {
				return nil, errAt(ErrInvalidPosition, tok.Span, "position must precede nodes")
			}
			nodesSeen = true
			p.advance()
			nodes, err := p.parseNodeList(app.Position)
			if err != nil {
				return nil, err
			}
			app.Children = nodes

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed app block")

		default:
			p.skipUnknown("app")
		}
	}
}

// declareID records a source-declared id, rejecting conflicts within
// the current app subtree.
func (p *Parser) declareID(id string, span lexer.Span) error {
	if prior, ok := p.declared[id]; ok {
		return errAt(ErrDuplicateNode, span, "id %q already declared at %d:%d", id, prior.Line, prior.Column)
	}
	p.declared[id] = span
	return nil
}
