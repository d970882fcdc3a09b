// Package layout describes brick layouts as data.
//
// A layout is a grid size plus a Rule: a small serializable predicate tree over
// the column/row of a cell. Rules contain no code, so layout packs can be
// stored as YAML or TOML and compared in tests without re-deriving geometry.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// RuleKind selects how a Rule node is evaluated.
type RuleKind string

const (
	RuleAll    RuleKind = "all"    // every cell
	RuleNone   RuleKind = "none"   // no cell
	RuleNot    RuleKind = "not"    // negates its single child
	RuleAnd    RuleKind = "and"    // all children match
	RuleOr     RuleKind = "or"     // any child matches
	RuleCmp    RuleKind = "cmp"    // integer comparison over Terms
	RuleDisc   RuleKind = "disc"   // euclidean distance from a center within [Inner, Outer]
	RuleSpiral RuleKind = "spiral" // archimedean band around a center
)

// CmpOp is the comparison used by a cmp rule.
type CmpOp string

const (
	OpEq CmpOp = "eq"
	OpNe CmpOp = "ne"
	OpLt CmpOp = "lt"
	OpLe CmpOp = "le"
	OpGt CmpOp = "gt"
	OpGe CmpOp = "ge"
	OpIn CmpOp = "in" // Value <= x <= Max
)

// Var names a grid coordinate.
type Var string

const (
	VarCol Var = "c"
	VarRow Var = "r"
)

// Errors returned by Validate.
var (
	ErrUnknownRule = errors.New("layout: unknown rule kind")
	ErrUnknownOp   = errors.New("layout: unknown comparison")
	ErrUnknownVar  = errors.New("layout: unknown variable")
	ErrBadRule     = errors.New("layout: malformed rule")
)

// Term is one integer summand of a cmp rule:
//
//	coef * abs?(floorDiv?(var + offset, div))
//
// A zero Coef means 1.
type Term struct {
	Var    Var  `yaml:"var" toml:"var"`
	Coef   int  `yaml:"coef,omitempty" toml:"coef,omitempty"`
	Offset int  `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Div    int  `yaml:"div,omitempty" toml:"div,omitempty"`
	Abs    bool `yaml:"abs,omitempty" toml:"abs,omitempty"`
}

func (t Term) eval(col, row int) int {
	v := col
	if t.Var == VarRow {
		v = row
	}
	v += t.Offset
	if t.Div > 0 {
		v = floorDiv(v, t.Div)
	}
	if t.Abs && v < 0 {
		v = -v
	}
	coef := t.Coef
	if coef == 0 {
		coef = 1
	}
	return coef * v
}

// Rule is a node of a layout predicate tree. Only the fields relevant to Kind
// are read.
type Rule struct {
	Kind RuleKind `yaml:"kind" toml:"kind"`

	// not / and / or
	Rules []Rule `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// cmp
	Terms []Term `yaml:"terms,omitempty" toml:"terms,omitempty"`
	Mod   int    `yaml:"mod,omitempty" toml:"mod,omitempty"`
	Op    CmpOp  `yaml:"op,omitempty" toml:"op,omitempty"`
	Value int    `yaml:"value,omitempty" toml:"value,omitempty"`
	Max   int    `yaml:"max,omitempty" toml:"max,omitempty"`

	// disc / spiral
	CX    float64 `yaml:"cx,omitempty" toml:"cx,omitempty"`
	CY    float64 `yaml:"cy,omitempty" toml:"cy,omitempty"`
	Inner float64 `yaml:"inner,omitempty" toml:"inner,omitempty"`
	Outer float64 `yaml:"outer,omitempty" toml:"outer,omitempty"`

	// spiral: (dist/Scale + angle*Twist/pi) mod Period < Band
	Scale  float64 `yaml:"scale,omitempty" toml:"scale,omitempty"`
	Twist  float64 `yaml:"twist,omitempty" toml:"twist,omitempty"`
	Period float64 `yaml:"period,omitempty" toml:"period,omitempty"`
	Band   float64 `yaml:"band,omitempty" toml:"band,omitempty"`
}

// Eval reports whether the cell at (col, row) matches the rule.
// Invalid rules evaluate to false; call Validate first.
func (r Rule) Eval(col, row int) bool {
	switch r.Kind {
	case RuleAll:
		return true
	case RuleNone:
		return false
	case RuleNot:
		if len(r.Rules) != 1 {
			return false
		}
		return !r.Rules[0].Eval(col, row)
	case RuleAnd:
		for _, child := range r.Rules {
			if !child.Eval(col, row) {
				return false
			}
		}
		return len(r.Rules) > 0
	case RuleOr:
		for _, child := range r.Rules {
			if child.Eval(col, row) {
				return true
			}
		}
		return false
	case RuleCmp:
		return r.evalCmp(col, row)
	case RuleDisc:
		d := math.Hypot(float64(col)-r.CX, float64(row)-r.CY)
		return d >= r.Inner && d <= r.Outer
	case RuleSpiral:
		return r.evalSpiral(col, row)
	default:
		return false
	}
}

func (r Rule) evalCmp(col, row int) bool {
	sum := 0
	for _, t := range r.Terms {
		sum += t.eval(col, row)
	}
	if r.Mod > 0 {
		sum %= r.Mod
	}

	switch r.Op {
	case OpEq:
		return sum == r.Value
	case OpNe:
		return sum != r.Value
	case OpLt:
		return sum < r.Value
	case OpLe:
		return sum <= r.Value
	case OpGt:
		return sum > r.Value
	case OpGe:
		return sum >= r.Value
	case OpIn:
		return sum >= r.Value && sum <= r.Max
	default:
		return false
	}
}

func (r Rule) evalSpiral(col, row int) bool {
	dx := float64(col) - r.CX
	dy := float64(row) - r.CY
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)
	v := dist/r.Scale + angle*r.Twist/math.Pi
	return math.Mod(v, r.Period) < r.Band
}

// Validate checks the rule tree for unknown kinds, operators and variables.
func (r Rule) Validate() error {
	switch r.Kind {
	case RuleAll, RuleNone:
		return nil
	case RuleNot:
		if len(r.Rules) != 1 {
			return fmt.Errorf("%w: not needs exactly one child, got %d", ErrBadRule, len(r.Rules))
		}
		return r.Rules[0].Validate()
	case RuleAnd, RuleOr:
		if len(r.Rules) == 0 {
			return fmt.Errorf("%w: %s needs at least one child", ErrBadRule, r.Kind)
		}
		for i, child := range r.Rules {
			if err := child.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", r.Kind, i, err)
			}
		}
		return nil
	case RuleCmp:
		if len(r.Terms) == 0 {
			return fmt.Errorf("%w: cmp without terms", ErrBadRule)
		}
		for _, t := range r.Terms {
			if t.Var != VarCol && t.Var != VarRow {
				return fmt.Errorf("%w: %q", ErrUnknownVar, t.Var)
			}
			if t.Div < 0 {
				return fmt.Errorf("%w: negative div %d", ErrBadRule, t.Div)
			}
		}
		if r.Mod < 0 {
			return fmt.Errorf("%w: negative mod %d", ErrBadRule, r.Mod)
		}
		switch r.Op {
		case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		case OpIn:
			if r.Max < r.Value {
				return fmt.Errorf("%w: empty range [%d, %d]", ErrBadRule, r.Value, r.Max)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
		}
		return nil
	case RuleDisc:
		if r.Outer < r.Inner || r.Inner < 0 {
			return fmt.Errorf("%w: disc radii [%g, %g]", ErrBadRule, r.Inner, r.Outer)
		}
		return nil
	case RuleSpiral:
		if r.Scale <= 0 || r.Period <= 0 {
			return fmt.Errorf("%w: spiral needs positive scale and period", ErrBadRule)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, r.Kind)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
