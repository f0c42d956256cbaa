package clincontext

import "sort"

// ReduceToLatest keeps the single most recent item per group key, preserving
// the first-seen order of the groups. Items whose date fails to parse sort
// older than any dated item; when dates tie, the first-seen item wins.
func ReduceToLatest[T any](items []T, keyFn func(T) string, dateFn func(T) string) []T {
	type candidate struct {
		index int
		date  sortableDate
	}
	best := make(map[string]candidate)
	var order []string
	for i, item := range items {
		key := keyFn(item)
		d := newSortableDate(dateFn(item))
		cur, exists := best[key]
		if !exists {
			best[key] = candidate{index: i, date: d}
			order = append(order, key)
			continue
		}
		if d.after(cur.date) {
			best[key] = candidate{index: i, date: d}
		}
	}
	out := make([]T, 0, len(order))
	for _, key := range order {
		out = append(out, items[best[key].index])
	}
	return out
}

// sortByDateDesc orders items newest first. Undated items sink below every
// dated item; the sort is stable, so input order breaks ties.
func sortByDateDesc[T any](items []T, dateFn func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return newSortableDate(dateFn(items[i])).after(newSortableDate(dateFn(items[j])))
	})
}

type sortableDate struct {
	t  int64
	ok bool
}

func newSortableDate(iso string) sortableDate {
	t, ok := parseDate(iso)
	if !ok {
		return sortableDate{}
	}
	return sortableDate{t: t.UnixNano(), ok: true}
}

func (d sortableDate) after(other sortableDate) bool {
	if d.ok != other.ok {
		return d.ok
	}
	return d.ok && d.t > other.t
}
