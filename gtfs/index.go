package gtfs

import (
	"cmp"
	"slices"
)

// sortedIndex keeps entities of one kind ordered by id for binary-search lookups.
type sortedIndex[T any] struct {
	items []*T
	id    func(*T) string
}

// newSortedIndex sorts items in place and rejects duplicate ids.
func newSortedIndex[T any](entity string, items []*T, id func(*T) string) (sortedIndex[T], error) {
	slices.SortStableFunc(items, func(a, b *T) int { return cmp.Compare(id(a), id(b)) })
	for i := 1; i < len(items); i++ {
		if id(items[i-1]) == id(items[i]) {
			return sortedIndex[T]{}, &FeedError{Err: ErrDuplicateID, Entity: entity, Value: id(items[i])}
		}
	}
	return sortedIndex[T]{items: items, id: id}, nil
}

func (x sortedIndex[T]) find(key string) (*T, bool) {
	i, ok := x.position(key)
	if !ok {
		return nil, false
	}
	return x.items[i], true
}

func (x sortedIndex[T]) position(key string) (int, bool) {
	return slices.BinarySearchFunc(x.items, key, func(item *T, k string) int {
		return cmp.Compare(x.id(item), k)
	})
}

func (x sortedIndex[T]) len() int { return len(x.items) }

// only returns the single entity of the index, if there is exactly one.
func (x sortedIndex[T]) only() (*T, bool) {
	if len(x.items) != 1 {
		return nil, false
	}
	return x.items[0], true
}

// findSorted is a read-only lookup over a slice already ordered by id.
func findSorted[T any](items []*T, key string, id func(*T) string) *T {
	i, ok := slices.BinarySearchFunc(items, key, func(item *T, k string) int {
		return cmp.Compare(id(item), k)
	})
	if !ok {
		return nil
	}
	return items[i]
}

func agencyID(a *Agency) string     { return a.ID }
func stopID(s *Stop) string         { return s.ID }
func routeID(r *Route) string       { return r.ID }
func tripID(t *Trip) string         { return t.ID }
func calendarID(c *Calendar) string { return c.ID }
