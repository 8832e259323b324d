package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtoms(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"Images,Text", []string{"Images", "Text"}},
		{" Images ,  Text ,", []string{"Images", "Text"}},
		{"Computer Vision, Graphics", []string{"Computer Vision", "Graphics"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Atoms(c.in), "Atoms(%q)", c.in)
	}
}

func TestHasAtom(t *testing.T) {
	set := map[string]struct{}{"Y": {}}
	assert.True(t, HasAtom("X, Y", set))
	assert.True(t, HasAtom("Y", set))
	assert.False(t, HasAtom("XY, Z", set))
	assert.False(t, HasAtom("", set))
	assert.False(t, HasAtom(" , ", map[string]struct{}{"": {}}))
}

func TestGetSetRoundTripEveryField(t *testing.T) {
	var r Record
	for _, f := range Fields {
		r.Set(f, f.Column()+"-v")
	}
	for _, f := range Fields {
		assert.Equal(t, f.Column()+"-v", r.Get(f))
	}
	assert.Equal(t, "pwc_url-v", r.SourcePageURL)
}

func TestBenchmarkLinks(t *testing.T) {
	r := Record{BenchmarkURLs: "image-classification-on-mnist, foo/bar-baz,"}
	links := r.BenchmarkLinks()
	require.Len(t, links, 2)
	assert.Equal(t, "image-classification-on-mnist", links[0].Name)
	assert.Equal(t, "https://paperswithcode.com/sota/image-classification-on-mnist", links[0].URL)
	assert.Equal(t, "bar-baz", links[1].Name)
	assert.Nil(t, (&Record{}).BenchmarkLinks())
}

func TestStoreGenerationsDiffer(t *testing.T) {
	a := NewStore([]Record{{ID: "A"}}, "a.csv")
	b := NewStore(nil, "b.csv")
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Records())
	assert.Equal(t, "A", a.At(0).ID)

	var nilStore *Store
	assert.Equal(t, 0, nilStore.Len())
	assert.Nil(t, nilStore.Records())
}
