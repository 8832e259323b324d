package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchscope/internal/facet"
)

func TestToggleIsIdempotent(t *testing.T) {
	s := New()
	s.Toggle(facet.Task, "X", true)
	s.Toggle(facet.Task, "X", true)
	assert.Equal(t, []string{"X"}, s.Selected(facet.Task))
	assert.Equal(t, 1, s.ActiveCount())

	s.Toggle(facet.Task, "X", false)
	s.Toggle(facet.Task, "X", false)
	s.Toggle(facet.Area, "never-added", false)
	assert.Empty(t, s.Selected(facet.Task))
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Set(facet.Task))
}

func TestSetQueryIsVerbatim(t *testing.T) {
	s := New()
	s.SetQuery("  MNist ")
	assert.Equal(t, "  MNist ", s.Query())
	assert.False(t, s.IsEmpty())
}

func TestSetYearsReplaces(t *testing.T) {
	s := New()
	s.SetYears([]string{"2019", "2020"})
	s.SetYears([]string{"2021"})
	assert.Equal(t, []string{"2021"}, s.Selected(facet.Year))
	s.SetYears(nil)
	assert.True(t, s.FacetsEmpty())
}

func TestClearAllResetsEverything(t *testing.T) {
	s := New()
	s.SetQuery("q")
	require.NoError(t, s.SetExpr(`year == "2019"`))
	for _, c := range facet.Categories {
		s.Toggle(c, "v", true)
	}
	s.ClearAll()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "", s.Query())
	assert.Equal(t, "", s.Expr())
	for _, c := range facet.Categories {
		assert.Empty(t, s.Selected(c))
	}
}

func TestSetExprRejectsInvalidAndKeepsPrevious(t *testing.T) {
	s := New()
	require.NoError(t, s.SetExpr(`area == "Speech"`))
	err := s.SetExpr(`area == (`)
	require.Error(t, err)
	assert.Equal(t, `area == "Speech"`, s.Expr())
	require.NoError(t, s.SetExpr("   "))
	assert.Equal(t, "", s.Expr())
}

func TestKeyIsStructural(t *testing.T) {
	a := New()
	a.Toggle(facet.Task, "Y", true)
	a.Toggle(facet.Task, "X", true)
	a.SetQuery("mnist")

	b := New()
	b.SetQuery("mnist")
	b.Toggle(facet.Task, "X", true)
	b.Toggle(facet.Task, "Y", true)
	b.Toggle(facet.Area, "P", true)
	b.Toggle(facet.Area, "P", false)

	assert.Equal(t, a.Key(), b.Key())

	b.Toggle(facet.Modality, "X", true)
	assert.NotEqual(t, a.Key(), b.Key())

	// values that would collide if joined naively
	c, d := New(), New()
	c.Toggle(facet.Task, "a,b", true)
	d.Toggle(facet.Task, "a", true)
	d.Toggle(facet.Task, "b", true)
	assert.NotEqual(t, c.Key(), d.Key())
}

func TestCloneIsIndependent(t *testing.T) {
	a := New()
	a.Toggle(facet.Modality, "Images", true)
	b := a.Clone()
	b.Toggle(facet.Modality, "Text", true)
	assert.Equal(t, 1, a.ActiveCount())
	assert.Equal(t, 2, b.ActiveCount())
	assert.True(t, b.Has(facet.Modality, "Images"))
}
