package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(op CmpOp, v int) Rule {
	return Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol}}, Op: op, Value: v}
}

func TestRuleEvalCmp(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		col, row int
		want     bool
	}{
		{"eq hit", col(OpEq, 3), 3, 0, true},
		{"eq miss", col(OpEq, 3), 4, 0, false},
		{"ne", col(OpNe, 3), 4, 0, true},
		{"lt", col(OpLt, 4), 3, 0, true},
		{"le", col(OpLe, 4), 4, 0, true},
		{"gt", col(OpGt, 15), 16, 0, true},
		{"ge", col(OpGe, 15), 14, 0, false},
		{"in low", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarRow}}, Op: OpIn, Value: 3, Max: 11}, 0, 3, true},
		{"in high", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarRow}}, Op: OpIn, Value: 3, Max: 11}, 0, 12, false},
		{"sum mod", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol}, {Var: VarRow}}, Mod: 2, Op: OpEq}, 1, 1, true},
		{"negative coef", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol}, {Var: VarRow, Coef: -1}}, Op: OpEq, Value: -1}, 4, 5, true},
		{"abs offset", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol, Offset: -10, Abs: true}}, Op: OpEq, Value: 3}, 7, 0, true},
		{"div", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol, Div: 3}}, Op: OpEq, Value: 2}, 8, 0, true},
		{"floor div negative", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol, Offset: -1, Div: 3}}, Op: OpEq, Value: -1}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.rule.Validate())
			assert.Equal(t, tt.want, tt.rule.Eval(tt.col, tt.row))
		})
	}
}

func TestRuleEvalComposite(t *testing.T) {
	lt4 := col(OpLt, 4)
	gt15 := col(OpGt, 15)

	or := Rule{Kind: RuleOr, Rules: []Rule{lt4, gt15}}
	assert.True(t, or.Eval(0, 0))
	assert.True(t, or.Eval(19, 0))
	assert.False(t, or.Eval(10, 0))

	and := Rule{Kind: RuleAnd, Rules: []Rule{col(OpGe, 4), col(OpLe, 15)}}
	assert.True(t, and.Eval(10, 0))
	assert.False(t, and.Eval(3, 0))

	not := Rule{Kind: RuleNot, Rules: []Rule{and}}
	assert.True(t, not.Eval(3, 0))
	assert.False(t, not.Eval(10, 0))

	assert.True(t, Rule{Kind: RuleAll}.Eval(5, 5))
	assert.False(t, Rule{Kind: RuleNone}.Eval(5, 5))
}

func TestRuleEvalDisc(t *testing.T) {
	ring := Rule{Kind: RuleDisc, CX: 10, CY: 7, Inner: 3, Outer: 6}
	require.NoError(t, ring.Validate())

	assert.False(t, ring.Eval(10, 7), "center is inside the hole")
	assert.True(t, ring.Eval(13, 7), "inner edge is inclusive")
	assert.True(t, ring.Eval(16, 7), "outer edge is inclusive")
	assert.False(t, ring.Eval(17, 7))
}

func TestRuleEvalSpiralCenter(t *testing.T) {
	s := Rule{Kind: RuleSpiral, CX: 10, CY: 7, Scale: 1.8, Twist: 3, Period: 2.5, Band: 1}
	require.NoError(t, s.Validate())
	assert.True(t, s.Eval(10, 7))
}

func TestRuleValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want error
	}{
		{"unknown kind", Rule{Kind: "circle"}, ErrUnknownRule},
		{"unknown op", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol}}, Op: "approx"}, ErrUnknownOp},
		{"unknown var", Rule{Kind: RuleCmp, Terms: []Term{{Var: "z"}}, Op: OpEq}, ErrUnknownVar},
		{"empty range", Rule{Kind: RuleCmp, Terms: []Term{{Var: VarCol}}, Op: OpIn, Value: 5, Max: 4}, ErrBadRule},
		{"not arity", Rule{Kind: RuleNot}, ErrBadRule},
		{"empty or", Rule{Kind: RuleOr}, ErrBadRule},
		{"nested", Rule{Kind: RuleAnd, Rules: []Rule{{Kind: "bogus"}}}, ErrUnknownRule},
		{"disc radii", Rule{Kind: RuleDisc, Inner: 4, Outer: 2}, ErrBadRule},
		{"spiral scale", Rule{Kind: RuleSpiral, Period: 1}, ErrBadRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rule.Validate(), tt.want)
		})
	}
}
