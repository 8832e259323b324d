package model

import "sync/atomic"

var generation atomic.Uint64

// Store is the immutable, ordered record set of one load. A reload builds a
// new Store; the generation number tells stores apart for memoization.
type Store struct {
	records []Record
	gen     uint64
	source  string
}

// NewStore takes ownership of records. Callers must not mutate the slice
// afterwards.
func NewStore(records []Record, source string) *Store {
	if records == nil {
		records = []Record{}
	}
	return &Store{records: records, gen: generation.Add(1), source: source}
}

// Records returns the backing slice. It is shared and must be treated as
// read-only.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return s.records
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

func (s *Store) At(i int) Record { return s.records[i] }

func (s *Store) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// Source is the location the records were loaded from.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}
