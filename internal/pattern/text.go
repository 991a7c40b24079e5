package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseText reads the line format. Each non-blank line is one round and ';'
// separates the instructions of a group. A '#' that begins a line, or stands
// alone after a space, starts a comment; "#rrggbb" colours are left alone.
// Lines of the form "@name value", "@symmetry n" and "@size s" set document
// fields.
//
//	@name star6
//	@symmetry 6
//	hex1
//	addLineIntersect,1,4,2,5; addLineIntersect,2,5,3,6   # both diagonals
//	shape,0,1,2
func ParseText(r io.Reader) (*Document, error) {
	var doc Document
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@") {
			if err := doc.directive(line[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		var entry Entry
		for _, part := range strings.Split(line, ";") {
			if part = strings.TrimSpace(part); part != "" {
				entry = append(entry, part)
			}
		}
		if len(entry) == 0 {
			continue
		}
		doc.Instructions = append(doc.Instructions, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pattern: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if strings.TrimSpace(line[:i]) == "" {
			return ""
		}
		if line[i-1] != ' ' && line[i-1] != '\t' {
			continue
		}
		if i+1 == len(line) || line[i+1] == ' ' || line[i+1] == '\t' {
			return line[:i]
		}
	}
	return line
}

func (d *Document) directive(s string) error {
	key, value, _ := strings.Cut(s, " ")
	value = strings.TrimSpace(value)
	switch key {
	case "name":
		d.Name = value
	case "symmetry":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: symmetry %q", ErrFormat, value)
		}
		d.Symmetry = n
	case "size":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: size %q", ErrFormat, value)
		}
		d.Size = v
	default:
		return fmt.Errorf("%w: unknown directive @%s", ErrFormat, key)
	}
	return nil
}

// WriteText writes d in the line format.
func WriteText(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	if d.Name != "" {
		fmt.Fprintf(bw, "@name %s\n", d.Name)
	}
	if d.Symmetry != 0 {
		fmt.Fprintf(bw, "@symmetry %d\n", d.Symmetry)
	}
	if d.Size != 0 {
		fmt.Fprintf(bw, "@size %s\n", strconv.FormatFloat(d.Size, 'f', -1, 64))
	}
	for _, e := range d.Instructions {
		fmt.Fprintln(bw, strings.Join(e, "; "))
	}
	return bw.Flush()
}
