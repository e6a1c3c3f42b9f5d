package symtab

// Stats summarizes how entries are spread over the buckets of a table.
type Stats struct {
	Buckets int // number of buckets
	Used    int // buckets holding at least one entry
	Entries int // number of entries
	Longest int // length of the longest chain
}

// LoadFactor returns the average number of entries per bucket.
func (s Stats) LoadFactor() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Buckets)
}

// AvgChain returns the average chain length over non-empty buckets.
func (s Stats) AvgChain() float64 {
	if s.Used == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Used)
}

// Stats returns the current bucket occupancy of the table.
func (t *Table[V]) Stats() Stats {
	s := Stats{
		Buckets: len(t.buckets),
		Entries: t.count,
	}
	for _, chain := range t.buckets {
		if len(chain) == 0 {
			continue
		}
		s.Used++
		s.Longest = max(s.Longest, len(chain))
	}
	return s
}

// ChainLen returns the number of entries in bucket b.
func (t *Table[V]) ChainLen(b int) int {
	return len(t.buckets[b])
}
