package parser

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/lexer"
	"github.com/swen-ui/swen/scene"
)

// parseNodeList parses `[ node* ]`. Every node (including nested
// children) lands in the shared arena; on the closing bracket the
// arena range is root-filtered so only top-level nodes of this list
// survive, which keeps the result a tree even though parsing flattens.
//
// local is the accumulated local position handed to each child.
func (p *Parser) parseNodeList(local swen.Vector) ([]scene.Node, error) {
	open, err := p.expect(lexer.TagLBracket)
	if err != nil {
		return nil, err
	}

	start := p.arena.Len()
	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBracket:
			p.advance()
			roots, err := scene.RootFilter(p.arena.Range(start, p.arena.Len()), p.filterCapacity)
			if err != nil {
				return nil, errAt(ErrOutOfMemory, open.Span, "root filter: %v", err)
			}
			return roots, nil

		case lexer.TagRect, lexer.TagText, lexer.TagTransform:
			if _, err := p.parseNode(local); err != nil {
				return nil, err
			}

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed nodes list")

		default:
			p.skipUnknown("nodes")
		}
	}
}

// parseNode dispatches on the node keyword and pushes the constructed
// node into the arena.
func (p *Parser) parseNode(local swen.Vector) (scene.Node, error) {
	var (
		n   scene.Node
		err error
	)
	switch tok := p.advance(); tok.Tag {
	case lexer.TagRect:
		n, err = p.parseRect(local)
	case lexer.TagText:
		n, err = p.parseText(local)
	case lexer.TagTransform:
		n, err = p.parseTransform(local)
	default:
		return nil, errAt(ErrExpectedToken, tok.Span, "expected node keyword, found %q", tok.Tag.String())
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.arena.Push(n); err != nil {
		return nil, errAt(ErrOutOfMemory, p.peek().Span, "node arena full")
	}
	return n, nil
}

// parseRect parses a rect body. Size and position are required, and
// position must precede nodes so children inherit the accumulated
// coordinate.
func (p *Parser) parseRect(local swen.Vector) (scene.Node, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	r := &scene.Rect{LocalPos: local}
	var idSeen, sizeSeen, posSeen, bgSeen, nodesSeen bool

	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			if !sizeSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "rect has no size")
			}
			if !posSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "rect has no position")
			}
			r.NodeID = p.arena.NextID()
			return r, nil

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
			if err := p.declareID(str.Text(), str.Span); err != nil {
				return nil, err
			}
			r.Name = str.Text()

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
				return nil, errAt(ErrInvalidSize, tok.Span, "rect size must be positive, got (%d, %d)", v.X, v.Y)
			}
			r.Size = v

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
			r.Pos = v

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
			r.Background = &c

		case lexer.TagNodes:
			if nodesSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate nodes")
			}
			if !posSeen {
				return nil, errAt(ErrInvalidPosition, tok.Span, "position must precede nodes")
			}
			nodesSeen = true
			p.advance()
			kids, err := p.parseNodeList(local.Add(r.Pos))
			if err != nil {
				return nil, err
			}
			r.Kids = kids

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed rect block")

		default:
			p.skipUnknown("rect")
		}
	}
}

// parseText parses a text body. Position and text_size are required;
// body defaults to empty and color to opaque white.
func (p *Parser) parseText(local swen.Vector) (scene.Node, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	t := &scene.Text{LocalPos: local, Color: swen.White}
	var idSeen, bodySeen, colorSeen, posSeen, sizeSeen bool

	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			if !posSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "text has no position")
			}
			if !sizeSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "text has no text_size")
			}
			t.NodeID = p.arena.NextID()
			return t, nil

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
			if err := p.declareID(str.Text(), str.Span); err != nil {
				return nil, err
			}
			t.Name = str.Text()

		case lexer.TagBody:
			if bodySeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate body")
			}
			bodySeen = true
			p.advance()
			str, err := p.expect(lexer.TagString)
			if err != nil {
				return nil, err
			}
			t.Body = str.Text()

		case lexer.TagColor:
			if colorSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate color")
			}
			colorSeen = true
			p.advance()
			c, err := p.parseColor()
			if err != nil {
				return nil, err
			}
			t.Color = c

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
			t.Pos = v

		case lexer.TagTextSize:
			if sizeSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate text_size")
			}
			sizeSeen = true
			p.advance()
			n, span, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			if n <= 0 || n > 0xFFFF {
				return nil, errAt(ErrInvalidTextSize, span, "text_size must be in (0, 65535], got %d", n)
			}
			t.TextSize = uint16(n)

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed text block")

		default:
			p.skipUnknown("text")
		}
	}
}

// parseTransform parses a transform body. Position is required; the
// matrix is optional.
func (p *Parser) parseTransform(local swen.Vector) (scene.Node, error) {
	if _, err := p.expect(lexer.TagLBrace); err != nil {
		return nil, err
	}

	tr := &scene.Transform{LocalPos: local}
	var idSeen, posSeen, matrixSeen, nodesSeen bool

	for {
		tok := p.peek()
		switch tok.Tag {
		case lexer.TagRBrace:
			p.advance()
			if !posSeen {
				return nil, errAt(ErrMissingProperty, tok.Span, "transform has no position")
			}
			tr.NodeID = p.arena.NextID()
			return tr, nil

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
			if err := p.declareID(str.Text(), str.Span); err != nil {
				return nil, err
			}
			tr.Name = str.Text()

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
			tr.Pos = v

		case lexer.TagMatrix:
			if matrixSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate matrix")
			}
			matrixSeen = true
			p.advance()
			m, err := p.parseMatrix()
			if err != nil {
				return nil, err
			}
			tr.Matrix = &m

		case lexer.TagNodes:
			if nodesSeen {
				return nil, errAt(ErrDuplicateProperty, tok.Span, "duplicate nodes")
			}
			if !posSeen {
				return nil, errAt(ErrInvalidPosition, tok.Span, "position must precede nodes")
			}
			nodesSeen = true
			p.advance()
			kids, err := p.parseNodeList(local.Add(tr.Pos))
			if err != nil {
				return nil, err
			}
			tr.Kids = kids

		case lexer.TagEOF:
			return nil, errAt(ErrExpectedToken, tok.Span, "unclosed transform block")

		default:
			p.skipUnknown("transform")
		}
	}
}
