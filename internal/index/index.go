// Package index keeps an inverted index from facet values to record
// positions so facet selections resolve with bitmap algebra instead of a
// scan. Positions are indexes into the store's record slice.
package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"benchscope/internal/facet"
	"benchscope/internal/model"
	"benchscope/internal/selection"
)

type Index struct {
	n        int
	postings map[facet.Category]map[string]*roaring.Bitmap
}

// Build indexes records. Task and modality post every atom of the field;
// area and year post the whole field value. Empty values are not posted.
func Build(records []model.Record) *Index {
	ix := &Index{
		n:        len(records),
		postings: make(map[facet.Category]map[string]*roaring.Bitmap, len(facet.Categories)),
	}
	for _, c := range facet.Categories {
		ix.postings[c] = make(map[string]*roaring.Bitmap)
	}
	for i := range records {
		id := uint32(i)
		r := &records[i]
		for _, a := range model.Atoms(r.Task) {
			ix.add(facet.Task, a, id)
		}
		for _, a := range model.Atoms(r.Modalities) {
			ix.add(facet.Modality, a, id)
		}
		if r.Area != "" {
			ix.add(facet.Area, r.Area, id)
		}
		if r.YearPublished != "" {
			ix.add(facet.Year, r.YearPublished, id)
		}
	}
	for _, m := range ix.postings {
		for _, bm := range m {
			bm.RunOptimize()
		}
	}
	return ix
}

func (ix *Index) add(c facet.Category, v string, id uint32) {
	bm := ix.postings[c][v]
	if bm == nil {
		bm = roaring.New()
		ix.postings[c][v] = bm
	}
	bm.Add(id)
}

// Len is the number of indexed records.
func (ix *Index) Len() int { return ix.n }

// Postings returns the positions posted under c=v, or nil. The bitmap is
// shared; clone before mutating.
func (ix *Index) Postings(c facet.Category, v string) *roaring.Bitmap {
	return ix.postings[c][v]
}

// Count is the number of records posted under c=v.
func (ix *Index) Count(c facet.Category, v string) int {
	if bm := ix.postings[c][v]; bm != nil {
		return int(bm.GetCardinality())
	}
	return 0
}

// Candidates resolves the facet part of sel: values are OR-ed within a
// category and categories are AND-ed together. all is true when no facet
// category is active, in which case bm is nil and every record qualifies.
func (ix *Index) Candidates(sel *selection.State) (bm *roaring.Bitmap, all bool) {
	var acc *roaring.Bitmap
	active := false
	for _, c := range facet.Categories {
		set := sel.Set(c)
		if len(set) == 0 {
			continue
		}
		active = true
		parts := make([]*roaring.Bitmap, 0, len(set))
		for v := range set {
			if p := ix.postings[c][v]; p != nil {
				parts = append(parts, p)
			}
		}
		var union *roaring.Bitmap
		if len(parts) == 0 {
			union = roaring.New()
		} else {
			union = roaring.FastOr(parts...)
		}
		if acc == nil {
			acc = union
		} else {
			acc.And(union)
		}
		if acc.IsEmpty() {
			return acc, false
		}
	}
	if !active {
		return nil, true
	}
	return acc, false
}
