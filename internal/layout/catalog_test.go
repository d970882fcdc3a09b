package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayouts() []Layout {
	return []Layout{
		{ID: "full", Name: "Full", Rows: 2, Cols: 3, Rule: Rule{Kind: RuleAll}},
		{ID: "left", Name: "Left Column", Rows: 2, Cols: 3, Rule: col(OpEq, 0)},
	}
}

func TestNewCatalogErrors(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	dup := testLayouts()
	dup[1].ID = "full"
	_, err = NewCatalog(dup)
	assert.ErrorIs(t, err, ErrDuplicateID)

	bad := testLayouts()
	bad[0].Rows = 0
	_, err = NewCatalog(bad)
	assert.ErrorIs(t, err, ErrBadLayout)

	empty := testLayouts()
	empty[0].Rule = Rule{Kind: RuleNone}
	_, err = NewCatalog(empty)
	assert.ErrorIs(t, err, ErrBadLayout)

	badRule := testLayouts()
	badRule[1].Rule = Rule{Kind: "wat"}
	_, err = NewCatalog(badRule)
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func TestCatalogForLevelWraps(t *testing.T) {
	c, err := NewCatalog(testLayouts())
	require.NoError(t, err)

	tests := []struct {
		level int
		index int
		id    string
	}{
		{1, 0, "full"},
		{2, 1, "left"},
		{3, 0, "full"},
		{4, 1, "left"},
		{0, 1, "left"},
	}
	for _, tt := range tests {
		l, idx := c.ForLevel(tt.level)
		assert.Equal(t, tt.index, idx, "level %d", tt.level)
		assert.Equal(t, tt.id, l.ID, "level %d", tt.level)
	}

	assert.Equal(t, "left", c.At(-1).ID)
}

func TestCatalogIsImmutable(t *testing.T) {
	src := testLayouts()
	c, err := NewCatalog(src)
	require.NoError(t, err)

	src[0].Name = "changed"
	out := c.Layouts()
	out[1].Name = "changed too"

	assert.Equal(t, "Full", c.At(0).Name)
	assert.Equal(t, "Left Column", c.At(1).Name)
}

func TestCatalogFind(t *testing.T) {
	c, err := NewCatalog(testLayouts())
	require.NoError(t, err)

	l, idx, ok := c.Find("left")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "Left Column", l.Name)

	_, idx, ok = c.Find("1")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, idx, ok = c.Find("left column")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, _, ok = c.Find("3")
	assert.False(t, ok)
}

func TestLayoutExistsAndPreview(t *testing.T) {
	l := testLayouts()[1]

	assert.True(t, l.Exists(0, 1))
	assert.False(t, l.Exists(1, 1))
	assert.False(t, l.Exists(0, 2), "out of grid")
	assert.False(t, l.Exists(-1, 0), "out of grid")
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, []string{"#..", "#.."}, l.Preview('#', '.'))
}
