package composition

import (
	"github.com/toumix/tally/pkg/errors"
)

// Parse reads a cell from its notation.
//
// The grammar accepts the binary forms produced by [Cell.String] plus the
// n-ary fold forms:
//
//	cell := "e"
//	      | "(" cell "|" cell ")"      beside
//	      | "(" cell "&" cell ")"      below
//	      | "H" "(" cell {"," cell} ")"  left-fold of beside
//	      | "V" "(" cell {"," cell} ")"  left-fold of below
//
// Whitespace between tokens is ignored. The fold forms apply the same
// extent checks as [Horizontal] and [Vertical], so a notation describing an
// ill-formed grid fails with DIMENSION_MISMATCH rather than producing a
// broken tree. Malformed input fails with INVALID_NOTATION naming the
// offending byte offset.
//
// Parse(c.String()) always reconstructs a tree Equal to c. The reverse only
// holds for binary notation: n-ary forms re-print as their binary folds.
func Parse(s string) (*Cell, error) {
	p := &parser{input: s}
	c, err := p.cell()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("trailing input")
	}
	return c, nil
}

// parser is a cursor over the notation string. Methods advance pos past
// what they consume.
type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	args = append(args, p.pos)
	return errors.New(errors.ErrCodeInvalidNotation, format+" at offset %d", args...)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n' || p.input[p.pos] == '\r') {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it, or 0 at end.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) expect(b byte) error {
	if p.peek() != b {
		return p.errorf("expected %q", string(b))
	}
	p.pos++
	return nil
}

func (p *parser) cell() (*Cell, error) {
	switch p.peek() {
	case 'e':
		p.pos++
		return Empty(), nil
	case '(':
		return p.binary()
	case 'H':
		p.pos++
		return p.fold(Horizontal)
	case 'V':
		p.pos++
		return p.fold(Vertical)
	case 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("expected cell")
	}
}

func (p *parser) binary() (*Cell, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	left, err := p.cell()
	if err != nil {
		return nil, err
	}
	op := p.peek()
	if op != '|' && op != '&' {
		return nil, p.errorf(`expected "|" or "&"`)
	}
	p.pos++
	right, err := p.cell()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	if op == '|' {
		return Beside(left, right)
	}
	return Below(left, right)
}

func (p *parser) fold(combine func(...*Cell) (*Cell, error)) (*Cell, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var terms []*Cell
	for {
		c, err := p.cell()
		if err != nil {
			return nil, err
		}
		terms = append(terms, c)
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return combine(terms...)
}
