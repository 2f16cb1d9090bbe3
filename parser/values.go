package parser

import (
	"strconv"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/lexer"
)

// parseInt consumes an int token and returns its value with the span.
func (p *Parser) parseInt() (int64, lexer.Span, error) {
	tok, err := p.expect(lexer.TagInt)
	if err != nil {
		return 0, tok.Span, err
	}
	n, perr := strconv.ParseInt(tok.Text(), 10, 64)
	if perr != nil {
		return 0, tok.Span, errAt(ErrExpectedToken, tok.Span, "integer out of range: %s", tok.Text())
	}
	return n, tok.Span, nil
}

// parseFloat consumes an int or float token as a float32.
func (p *Parser) parseFloat() (float32, lexer.Span, error) {
	tok := p.peek()
	if tok.Tag != lexer.TagInt && tok.Tag != lexer.TagFloat {
		return 0, tok.Span, errAt(ErrExpectedToken, tok.Span, "expected number, found %q", tok.Tag.String())
	}
	p.advance()
	f, perr := strconv.ParseFloat(tok.Text(), 32)
	if perr != nil {
		return 0, tok.Span, errAt(ErrExpectedToken, tok.Span, "number out of range: %s", tok.Text())
	}
	return float32(f), tok.Span, nil
}

// parseVector parses `( x , y )` with integer components.
func (p *Parser) parseVector() (swen.Vector, error) {
	if _, err := p.expect(lexer.TagLParen); err != nil {
		return swen.Vector{}, err
	}
	x, _, err := p.parseInt()
	if err != nil {
		return swen.Vector{}, err
	}
	if _, err := p.expect(lexer.TagComma); err != nil {
		return swen.Vector{}, err
	}
	y, _, err := p.parseInt()
	if err != nil {
		return swen.Vector{}, err
	}
	if _, err := p.expect(lexer.TagRParen); err != nil {
		return swen.Vector{}, err
	}
	return swen.Vector{X: int32(x), Y: int32(y)}, nil
}

// parseColor parses `( r , g , b , a )` with components in [0, 255].
func (p *Parser) parseColor() (swen.Color, error) {
	open, err := p.expect(lexer.TagLParen)
	if err != nil {
		return swen.Color{}, err
	}

	var ch [4]uint8
	for i := 0; i < 4; i++ {
		if i > 0 {
			if _, err := p.expect(lexer.TagComma); err != nil {
				return swen.Color{}, errAt(ErrExpectedColor, open.Span, "color needs four components")
			}
		}
		n, span, err := p.parseInt()
		if err != nil {
			return swen.Color{}, errAt(ErrExpectedColor, span, "color component must be an integer")
		}
		if n < 0 || n > 255 {
			return swen.Color{}, errAt(ErrExpectedColor, span, "color component out of range: %d", n)
		}
		ch[i] = uint8(n)
	}
	if _, err := p.expect(lexer.TagRParen); err != nil {
		return swen.Color{}, errAt(ErrExpectedColor, open.Span, "unclosed color tuple")
	}
	return swen.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// parseMatrix parses `( a , b , c , d , e , f )` with exactly six
// numbers. A trailing comma before the closing paren is permitted.
func (p *Parser) parseMatrix() (swen.Matrix, error) {
	open, err := p.expect(lexer.TagLParen)
	if err != nil {
		return swen.Matrix{}, err
	}

	var vals [6]float32
	for i := 0; i < 6; i++ {
		if i > 0 {
			if _, err := p.expect(lexer.TagComma); err != nil {
				return swen.Matrix{}, errAt(ErrInvalidMatrix, open.Span, "matrix needs six numbers, got %d", i)
			}
		}
		f, _, err := p.parseFloat()
		if err != nil {
			return swen.Matrix{}, errAt(ErrInvalidMatrix, open.Span, "matrix needs six numbers, got %d", i)
		}
		vals[i] = f
	}

	// Trailing comma is tolerated.
	if p.peek().Tag == lexer.TagComma {
		p.advance()
	}
	if tok, err := p.expect(lexer.TagRParen); err != nil {
		return swen.Matrix{}, errAt(ErrInvalidMatrix, tok.Span, "matrix has more than six numbers")
	}
	return swen.Matrix{
		A: vals[0], B: vals[1], C: vals[2],
		D: vals[3], E: vals[4], F: vals[5],
	}, nil
}
