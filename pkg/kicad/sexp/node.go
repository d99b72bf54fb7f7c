// Package sexp reads and writes the s-expression syntax used by KiCad files.
//
// A document is parsed into a tree of *Node. Atoms keep whether they were
// quoted so a tree can be written back without changing its meaning.
package sexp

import (
	"fmt"
	"strconv"
)

// Node is either an atom or a list.
type Node struct {
	Atom   string  // Atom text, unquoted
	Quoted bool    // Atom was (or must be) written as a quoted string
	List   []*Node // Children when IsList is true
	IsList bool
}

// Sym returns an unquoted atom.
func Sym(s string) *Node { return &Node{Atom: s} }

// Str returns a quoted string atom.
func Str(s string) *Node { return &Node{Atom: s, Quoted: true} }

// Num returns a number atom with at most six decimals and no trailing zeros.
func Num(f float64) *Node {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = trimZeros(s)
	if s == "-0" {
		s = "0"
	}
	return &Node{Atom: s}
}

// Int returns an integer atom.
func Int(i int) *Node { return &Node{Atom: strconv.Itoa(i)} }

// L returns a list whose first element is the symbol key.
func L(key string, children ...*Node) *Node {
	list := make([]*Node, 0, len(children)+1)
	list = append(list, Sym(key))
	list = append(list, children...)
	return &Node{List: list, IsList: true}
}

// Add appends children to a list node and returns it.
func (n *Node) Add(children ...*Node) *Node {
	n.List = append(n.List, children...)
	return n
}

// Key returns the leading symbol of a list, or "" for atoms and empty lists.
func (n *Node) Key() string {
	if n == nil || !n.IsList || len(n.List) == 0 || n.List[0].IsList {
		return ""
	}
	return n.List[0].Atom
}

// Child returns the first child list with the given key.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.List {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

// Children returns every child list with the given key.
func (n *Node) Children(key string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.List {
		if c.Key() == key {
			out = append(out, c)
		}
	}
	return out
}

// Arg returns the atom at position i after the key.
func (n *Node) Arg(i int) (string, error) {
	if n == nil || !n.IsList {
		return "", fmt.Errorf("expected list, got atom")
	}
	idx := i + 1
	if idx >= len(n.List) {
		return "", fmt.Errorf("(%s): argument %d out of range (%d args)", n.Key(), i, len(n.List)-1)
	}
	if n.List[idx].IsList {
		return "", fmt.Errorf("(%s): argument %d is a list", n.Key(), i)
	}
	return n.List[idx].Atom, nil
}

// Float parses the atom at position i after the key.
func (n *Node) Float(i int) (float64, error) {
	s, err := n.Arg(i)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s): failed to parse float %q: %w", n.Key(), s, err)
	}
	return f, nil
}

// XY parses the first two arguments, as in (start X Y) or (at X Y).
func (n *Node) XY() (x, y float64, err error) {
	if x, err = n.Float(0); err != nil {
		return 0, 0, err
	}
	if y, err = n.Float(1); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func trimZeros(s string) string {
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return s
	}
	end := len(s)
	for end > dot+1 && s[end-1] == '0' {
		end--
	}
	if end == dot+1 {
		end = dot
	}
	return s[:end]
}
