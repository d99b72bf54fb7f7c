package sexp

import (
	"fmt"
	"io"
	"strings"
)

// Parser builds node trees from a lexer.
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]*Node, error) {
	return NewParser(r).ParseAll()
}

// ParseString reads every top-level expression from s.
func ParseString(s string) ([]*Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseAll parses all top-level expressions from the input
func (p *Parser) ParseAll() ([]*Node, error) {
	var result []*Node
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.current.Type != TokenEOF {
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, n)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) parseExpr() (*Node, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol:
		return Sym(p.current.Value), nil
	case TokenString:
		return Str(p.current.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unexpected %v", p.current.Line, p.current.Type)
	}
}

func (p *Parser) parseList() (*Node, error) {
	line := p.current.Line
	list := &Node{IsList: true}
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.current.Type {
		case TokenRightParen:
			return list, nil
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unexpected EOF in list opened here", line)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.List = append(list.List, elem)
	}
}
