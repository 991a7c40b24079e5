package construction

import (
	"errors"
	"fmt"
	"image/color"

	"girih/internal/instruction"
	"girih/pkg/colorutil"
)

// ErrColor is returned when an instruction names a colour that cannot be
// parsed.
var ErrColor = errors.New("invalid color")

// InstructionError reports an instruction that was skipped.
type InstructionError struct {
	Round int
	Text  string
	Err   error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("round %d: %q: %v", e.Round, e.Text, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// Build executes a program against a fresh registry. Every top-level entry
// of prog is one round.
//
// A failing instruction is skipped and leaves the registry untouched; the
// rest of the program still runs. The registry is therefore always usable,
// and the returned error (if any) joins one *InstructionError per skipped
// instruction.
func Build(prog instruction.Program, opts Options) (*Registry, error) {
	b := NewBuilder(opts)
	var errs []error
	for _, group := range prog {
		for _, line := range group {
			if err := b.Run(line); err != nil {
				b.log.Printf("Construction: skipping %q in round %d: %v", line, b.round, err)
				errs = append(errs, &InstructionError{Round: b.round, Text: line, Err: err})
			}
		}
		b.NextRound()
	}
	return b.reg, errors.Join(errs...)
}

// Run parses and executes a single instruction line in the current round.
func (b *Builder) Run(line string) error {
	ins, err := instruction.Parse(line)
	if err != nil {
		return err
	}
	b.source = line
	defer func() { b.source = "" }()
	return b.Exec(ins)
}

// Exec executes a parsed instruction in the current round. Unknown commands
// are reported through the logger and change nothing.
func (b *Builder) Exec(ins instruction.Instruction) error {
	switch in := ins.(type) {
	case instruction.CircleIntersect:
		_, err := b.AddCircleIntersect(in.A, in.B, in.Center, in.Edge)
		return err
	case instruction.LineIntersect:
		_, err := b.AddLineIntersect(in.A, in.B, in.C, in.D)
		return err
	case instruction.RelativePoint:
		b.AddRelativePoint(in.DX, in.DY)
		return nil
	case instruction.SymmetricPoint:
		_, err := b.AddSymmetricPoint(in.A, in.B, in.C)
		return err
	case instruction.Circle:
		return b.AddConstructionCircle(in.Center, in.Edge)
	case instruction.Hex:
		_, err := b.AddHex(in.Variant)
		return err
	case instruction.Line:
		c, err := optionalColor(in.Color)
		if err != nil {
			return err
		}
		return b.AddPatternLine(in.Points, c)
	case instruction.Point:
		b.AddPoint(float64(in.X), float64(in.Y))
		return nil
	case instruction.Segment:
		return b.AddConstructionSegment(in.A, in.B)
	case instruction.Shape:
		return b.AddPatternShape(in.Points, nil)
	case instruction.ShapeColor:
		c, err := optionalColor(in.Color)
		if err != nil {
			return err
		}
		if err := b.AddPatternShape(in.Points, c); err != nil {
			return err
		}
		// Same indices as the shape, so this cannot fail.
		return b.AddPatternLine(in.Points, nil)
	case instruction.Unknown:
		b.log.Printf("Construction: unknown command %q in round %d, ignored", in.Name, b.round)
		return nil
	default:
		return fmt.Errorf("unsupported instruction %T", ins)
	}
}

func optionalColor(name string) (*color.RGBA, error) {
	if name == "" {
		return nil, nil
	}
	c, err := colorutil.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrColor, err)
	}
	return &c, nil
}
