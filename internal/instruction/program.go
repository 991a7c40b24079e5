package instruction

import "strings"

// Group is a list of instruction lines processed as one round.
type Group []string

// Program is an ordered list of top-level entries. A bare instruction is a
// Group of one.
type Program []Group

// Flat builds a Program in which every line is its own round.
func Flat(lines ...string) Program {
	p := make(Program, len(lines))
	for i, l := range lines {
		p[i] = Group{l}
	}
	return p
}

// Len returns the total number of instruction lines in the program.
func (p Program) Len() int {
	n := 0
	for _, g := range p {
		n += len(g)
	}
	return n
}

func (g Group) String() string {
	return strings.Join(g, "; ")
}
