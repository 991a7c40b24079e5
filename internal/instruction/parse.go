package instruction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command words of the language.
const (
	CmdCircleIntersect = "addCircleIntersect"
	CmdLineIntersect   = "addLineIntersect"
	CmdRelativePoint   = "addRelativePoint"
	CmdSymmetricPoint  = "addSymmetricPoint"
	CmdCircle          = "circle"
	CmdHex1            = "hex1"
	CmdHex2            = "hex2"
	CmdHex3            = "hex3"
	CmdHex4            = "hex4"
	CmdLine            = "line"
	CmdLineColor       = "lineColor"
	CmdPoint           = "point"
	CmdSegment         = "segment"
	CmdShape           = "shape"
	CmdShapeColor      = "shapeColor"
)

var (
	// ErrArity is returned when an instruction has the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrArgument is returned when an argument is not an integer.
	ErrArgument = errors.New("invalid argument")
	// ErrEmpty is returned for a blank instruction.
	ErrEmpty = errors.New("empty instruction")
)

// minPolyPoints is the fewest indices a line or shape accepts.
const minPolyPoints = 2

// Parse converts one instruction line into its typed form. Unrecognised
// commands parse successfully into Unknown.
func Parse(line string) (Instruction, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	cmd, args := fields[0], fields[1:]
	if cmd == "" {
		return nil, ErrEmpty
	}

	switch cmd {
	case CmdCircleIntersect:
		v, err := ints(cmd, args, 4)
		if err != nil {
			return nil, err
		}
		return CircleIntersect{A: v[0], B: v[1], Center: v[2], Edge: v[3]}, nil
	case CmdLineIntersect:
		v, err := ints(cmd, args, 4)
		if err != nil {
			return nil, err
		}
		return LineIntersect{A: v[0], B: v[1], C: v[2], D: v[3]}, nil
	case CmdRelativePoint:
		v, err := ints(cmd, args, 2)
		if err != nil {
			return nil, err
		}
		return RelativePoint{DX: v[0], DY: v[1]}, nil
	case CmdSymmetricPoint:
		v, err := ints(cmd, args, 3)
		if err != nil {
			return nil, err
		}
		return SymmetricPoint{A: v[0], B: v[1], C: v[2]}, nil
	case CmdCircle:
		v, err := ints(cmd, args, 2)
		if err != nil {
			return nil, err
		}
		return Circle{Center: v[0], Edge: v[1]}, nil
	case CmdHex1, CmdHex2, CmdHex3, CmdHex4:
		if _, err := ints(cmd, args, 0); err != nil {
			return nil, err
		}
		return Hex{Variant: HexVariant(cmd[3] - '0')}, nil
	case CmdLine:
		v, err := polyInts(cmd, args)
		if err != nil {
			return nil, err
		}
		return Line{Points: v}, nil
	case CmdLineColor:
		v, color, err := polyIntsColor(cmd, args)
		if err != nil {
			return nil, err
		}
		return Line{Points: v, Color: color}, nil
	case CmdPoint:
		v, err := ints(cmd, args, 2)
		if err != nil {
			return nil, err
		}
		return Point{X: v[0], Y: v[1]}, nil
	case CmdSegment:
		v, err := ints(cmd, args, 2)
		if err != nil {
			return nil, err
		}
		return Segment{A: v[0], B: v[1]}, nil
	case CmdShape:
		v, err := polyInts(cmd, args)
		if err != nil {
			return nil, err
		}
		return Shape{Points: v}, nil
	case CmdShapeColor:
		v, color, err := polyIntsColor(cmd, args)
		if err != nil {
			return nil, err
		}
		return ShapeColor{Points: v, Color: color}, nil
	default:
		return Unknown{Name: cmd, Args: args}, nil
	}
}

// ints parses exactly n integer arguments.
func ints(cmd string, args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", cmd, ErrArity, n, len(args))
	}
	return atois(cmd, args)
}

// polyInts parses a point list of at least minPolyPoints indices.
func polyInts(cmd string, args []string) ([]int, error) {
	if len(args) < minPolyPoints {
		return nil, fmt.Errorf("%s: %w: want at least %d points, got %d", cmd, ErrArity, minPolyPoints, len(args))
	}
	return atois(cmd, args)
}

// polyIntsColor parses a point list followed by a colour name.
func polyIntsColor(cmd string, args []string) ([]int, string, error) {
	if len(args) < minPolyPoints+1 {
		return nil, "", fmt.Errorf("%s: %w: want at least %d points and a color, got %d arguments", cmd, ErrArity, minPolyPoints, len(args))
	}
	color := args[len(args)-1]
	if color == "" {
		return nil, "", fmt.Errorf("%s: %w: empty color", cmd, ErrArgument)
	}
	v, err := atois(cmd, args[:len(args)-1])
	if err != nil {
		return nil, "", err
	}
	return v, color, nil
}

func atois(cmd string, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: argument %d is %q", cmd, ErrArgument, i+1, a)
		}
		out[i] = n
	}
	return out, nil
}
