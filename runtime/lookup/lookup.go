// Package lookup answers "where is this identifier?" over a scanned buffer,
// with fuzzy suggestions when the exact name never occurs.
package lookup

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/idfilter/pkgs/errors"
)

// Index counts identifier occurrences in first-seen order.
type Index struct {
	counts map[string]int
	names  []string
}

// NewIndex returns an empty index. Its Add method can be passed directly to
// a scan as the emit callback.
func NewIndex() *Index {
	return &Index{counts: make(map[string]int)}
}

// Add records one occurrence of name.
func (ix *Index) Add(name string) {
	if ix.counts[name] == 0 {
		ix.names = append(ix.names, name)
	}
	ix.counts[name]++
}

// Count returns how often name occurred.
func (ix *Index) Count(name string) int {
	return ix.counts[name]
}

// Names returns the distinct identifiers in first-seen order.
func (ix *Index) Names() []string {
	return append([]string(nil), ix.names...)
}

// Suggestion is a fuzzy candidate for a missing name.
type Suggestion struct {
	Name     string
	Distance int // Levenshtein distance to the requested name
	Count    int
}

// Suggest ranks identifiers that contain the letters of name in order,
// ignoring case. Closer names come first; ties keep first-seen order.
// The exact name is never suggested. A limit <= 0 means no limit.
func (ix *Index) Suggest(name string, limit int) []Suggestion {
	ranks := fuzzy.RankFindFold(name, ix.names)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	var out []Suggestion
	for _, r := range ranks {
		if r.Target == name {
			continue
		}
		out = append(out, Suggestion{
			Name:     r.Target,
			Distance: r.Distance,
			Count:    ix.counts[r.Target],
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Result is the answer to a Find.
type Result struct {
	Name        string
	Count       int
	Suggestions []Suggestion // Only filled when Count is zero
}

// Find looks name up. It fails with an errors.ErrNotFound error when the
// name neither occurs nor has any fuzzy candidate.
func Find(ix *Index, name string, limit int) (Result, error) {
	res := Result{Name: name, Count: ix.Count(name)}
	if res.Count > 0 {
		return res, nil
	}

	res.Suggestions = ix.Suggest(name, limit)
	if len(res.Suggestions) == 0 {
		return res, errors.NewNotFoundError(name)
	}
	return res, nil
}
