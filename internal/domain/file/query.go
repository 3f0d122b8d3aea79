package file

import (
	"context"
	"strings"
)

// Filter narrows a listing. Zero values disable the corresponding filter,
// except Category which always applies.
type Filter struct {
	Category Category
	Year     *int
	Search   string
}

type ListResult struct {
	Files []FileRecord
	Count int
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Query builds read-only views over a Store.
type Query struct {
	store Store
}

func NewQuery(store Store) *Query {
	return &Query{store: store}
}

// List returns the records matching f in store order. An unknown category is
// not an error: it simply matches nothing.
func (q *Query) List(ctx context.Context, f Filter) (*ListResult, error) {
	res := &ListResult{Files: []FileRecord{}}
	if !f.Category.Valid() {
		return res, nil
	}

	needle := strings.ToLower(f.Search)
	for rec, err := range q.store.All(ctx) {
		if err != nil {
			return nil, err
		}
		if f.matches(rec, needle) {
			res.Files = append(res.Files, rec)
		}
	}
	res.Count = len(res.Files)
	return res, nil
}

// CategoryStats counts records per category; every category is reported.
func (q *Query) CategoryStats(ctx context.Context) ([]CategoryCount, error) {
	counts := make(map[Category]int, len(Categories))
	for rec, err := range q.store.All(ctx) {
		if err != nil {
			return nil, err
		}
		counts[rec.Category]++
	}

	out := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out, nil
}

func (f Filter) matches(rec FileRecord, needle string) bool {
	if rec.Category != f.Category {
		return false
	}
	if f.Year != nil && rec.Year != *f.Year {
		return false
	}
	if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
		return false
	}
	return true
}
