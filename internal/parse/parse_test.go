package parse

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchscope/internal/model"
)

func TestDecodeCSVFixture(t *testing.T) {
	f, err := os.Open("../../testdata/datasets.csv")
	require.NoError(t, err)
	defer f.Close()

	recs, err := DecodeCSV(f)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	mnist := recs[0]
	assert.Equal(t, "MNIST", mnist.ID)
	assert.Equal(t, "https://paperswithcode.com/dataset/mnist", mnist.SourcePageURL)
	assert.Equal(t, "The MNIST database of handwritten digits, 70,000 images.", mnist.Description)
	assert.Equal(t, "Image Classification, Domain Adaptation", mnist.AssociatedTasks)
	assert.Equal(t, "1998", mnist.YearPublished)

	// last row stops after languages; the rest stay empty
	libri := recs[3]
	assert.Equal(t, "English", libri.Languages)
	assert.Empty(t, libri.HomepageURL)
	assert.Empty(t, libri.BenchmarkURLs)
}

func TestDecodeCSVShortRowsAndUnknownColumns(t *testing.T) {
	in := "\ufeffDataset ID,task,colour,area\nA,X,red,P\nB\n\nC,Y,blue,Q,extra\n"
	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, model.Record{ID: "A", Task: "X", Area: "P"}, recs[0])
	assert.Equal(t, model.Record{ID: "B"}, recs[1])
	assert.Equal(t, model.Record{ID: "C", Task: "Y", Area: "Q"}, recs[2])
}

func TestDecodeCSVErrors(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = DecodeCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrUnknownHeader)
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	recs, err := DecodeCSV(strings.NewReader("dataset_id,task\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDecodeJSONCoercesValues(t *testing.T) {
	f, err := os.Open("../../testdata/datasets.json")
	require.NoError(t, err)
	defer f.Close()

	recs, err := Decode(f, FormatJSON)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Images", recs[0].Modalities)
	assert.Equal(t, "1998", recs[0].YearPublished)
	assert.Equal(t, "COCO", recs[1].ID)
	assert.Equal(t, "2014", recs[1].YearPublished)
	assert.Empty(t, recs[1].License)
}

func TestDecodeNDJSON(t *testing.T) {
	f, err := os.Open("../../testdata/datasets.ndjson")
	require.NoError(t, err)
	defer f.Close()

	recs, err := Decode(f, FormatNDJSON)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1998", recs[0].YearPublished)
	assert.Equal(t, "Texts", recs[1].Modalities)
}

func TestDecodeNDJSONBadLine(t *testing.T) {
	_, err := DecodeNDJSON(strings.NewReader("{\"dataset_id\":\"A\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{float64(2019), "2019"},
		{1.5, "1.5"},
		{[]any{"Images", " ", "Text"}, "Images, ,Text"},
		{[]any{"a", []any{"b"}}, ""},
		{map[string]any{"k": "v"}, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Coerce(c.in), "Coerce(%#v)", c.in)
	}
}

func TestFromMapAliasPrecedence(t *testing.T) {
	obj := map[string]any{
		"dataset_id":      "MNIST",
		"name":            "mnist-handwritten",
		"year":            "2010",
		"year_published":  "1998",
		"source_page_url": "https://example.org/mnist",
		"pwc_url":         "https://paperswithcode.com/dataset/mnist",
	}
	for i := 0; i < 100; i++ {
		rec := FromMap(obj)
		require.Equal(t, "MNIST", rec.ID)
		require.Equal(t, "1998", rec.YearPublished)
		require.Equal(t, "https://paperswithcode.com/dataset/mnist", rec.SourcePageURL)
	}

	// without the canonical key the alias that sorts first wins
	for i := 0; i < 100; i++ {
		rec := FromMap(map[string]any{"name": "second", "id": "first", "Year": float64(2001)})
		require.Equal(t, "first", rec.ID)
		require.Equal(t, "2001", rec.YearPublished)
	}
}

func TestDecodeCSVAliasPrecedence(t *testing.T) {
	in := "name,dataset_id,id,year,year_published\nlong-name,A,a,1999,2000\n"
	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A", recs[0].ID)
	assert.Equal(t, "2000", recs[0].YearPublished)

	recs, err = DecodeCSV(strings.NewReader("name,id\nfirst,second\n"))
	require.NoError(t, err)
	assert.Equal(t, "first", recs[0].ID)
}

func TestDecodeNDJSONAliasesAreStable(t *testing.T) {
	in := `{"name":"b","dataset_id":"A","year":1999,"year_published":"2000"}` + "\n"
	for i := 0; i < 50; i++ {
		recs, err := DecodeNDJSON(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "A", recs[0].ID)
		assert.Equal(t, "2000", recs[0].YearPublished)
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode(strings.NewReader(""), Format("xml"))
	assert.Error(t, err)
}
