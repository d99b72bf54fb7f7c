package sexp

import (
	"bufio"
	"io"
	"strings"
)

// Write prints n with two-space indentation. A list whose children are all
// atoms stays on one line; nested lists start on their own line.
func Write(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

// String returns the single-line form of n.
func (n *Node) String() string {
	var sb strings.Builder
	writeFlat(&sb, n)
	return sb.String()
}

type stringWriter interface {
	io.Writer
	WriteString(string) (int, error)
	WriteByte(byte) error
}

func writeNode(w stringWriter, n *Node, depth int) {
	if !n.IsList || flat(n) {
		writeFlat(w, n)
		return
	}
	w.WriteByte('(')
	for i, c := range n.List {
		switch {
		case i == 0:
		case c.IsList:
			w.WriteByte('\n')
			w.WriteString(strings.Repeat("  ", depth+1))
		default:
			w.WriteByte(' ')
		}
		writeNode(w, c, depth+1)
	}
	w.WriteByte(')')
}

// flat reports whether n is shallow enough to print on one line, as in
// (effects (font (size 1 1))).
func flat(n *Node) bool {
	return depth(n) <= 3
}

func depth(n *Node) int {
	if !n.IsList {
		return 0
	}
	d := 0
	for _, c := range n.List {
		d = max(d, depth(c))
	}
	return d + 1
}

func writeFlat(w stringWriter, n *Node) {
	if !n.IsList {
		writeAtom(w, n)
		return
	}
	w.WriteByte('(')
	for i, c := range n.List {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeFlat(w, c)
	}
	w.WriteByte(')')
}

func writeAtom(w stringWriter, n *Node) {
	if !n.Quoted && n.Atom != "" && !strings.ContainsAny(n.Atom, " \t\r\n()\"\\") {
		w.WriteString(n.Atom)
		return
	}
	w.WriteByte('"')
	for _, r := range n.Atom {
		switch r {
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		case '\n':
			w.WriteString(`\n`)
		default:
			w.WriteString(string(r))
		}
	}
	w.WriteByte('"')
}
