package reports

// TotalsFunc computes the total row of a partition.
// groupField is "" for the root partition; groupedBy holds the key values of
// the partition and all enclosing ones.
type TotalsFunc func(rows []*Row, groupField string, groupValue any, groupedBy *Row) *Row

// GroupRows partitions rows by each field of groupBy in turn and interleaves a
// total row ahead of every partition. groupBy[0] is the root level and is
// normally "". Partitions appear in first-seen order and keep the input order of
// their rows. With totalsOnly only total rows are returned.
func GroupRows(rows []*Row, groupBy []string, calc TotalsFunc, totalsOnly bool) []*Row {
	if len(groupBy) == 0 {
		groupBy = []string{""}
	}
	g := &grouper{groupBy: groupBy, calc: calc, totalsOnly: totalsOnly}
	return g.walk(rows, 0, nil, NewRow())
}

type grouper struct {
	groupBy    []string
	calc       TotalsFunc
	totalsOnly bool
}

func (g *grouper) walk(rows []*Row, level int, value any, groupedBy *Row) []*Row {
	total := g.calc(rows, g.groupBy[level], value, groupedBy)
	total.Set(FieldIndent, level).Set(FieldIsGroupTotal, true)
	out := []*Row{total}

	if level+1 >= len(g.groupBy) {
		if !g.totalsOnly {
			out = append(out, rows...)
		}
		return out
	}

	next := g.groupBy[level+1]
	for _, p := range partition(rows, next) {
		childBy := groupedBy.Clone().Set(next, p.value)
		out = append(out, g.walk(p.rows, level+1, p.value, childBy)...)
	}
	return out
}

type bucket struct {
	value any
	rows  []*Row
}

func partition(rows []*Row, field string) []*bucket {
	var buckets []*bucket
	index := make(map[string]*bucket)
	for _, r := range rows {
		v := r.Value(field)
		key := formatValue(v)
		b, ok := index[key]
		if !ok {
			b = &bucket{value: v}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.rows = append(b.rows, r)
	}
	return buckets
}
