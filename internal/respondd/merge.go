package respondd

// mergeNodes groups per-kind record lists by node identifier. A node
// missing from one kind keeps its entries for the others; it is only
// absent from the result when no requested kind reported it.
func mergeNodes(byKind map[string][]Record) map[string]map[string]Record {
	merged := make(map[string]map[string]Record)
	for kind, records := range byKind {
		for _, record := range records {
			id := record.Node()
			node, ok := merged[id]
			if !ok {
				node = make(map[string]Record)
				merged[id] = node
			}
			node[kind] = record
		}
	}
	return merged
}
