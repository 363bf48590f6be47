package respondd

import "testing"

func TestMergeNodes_CombinesKindsPerNode(t *testing.T) {
	t.Parallel()

	byKind := map[string][]Record{
		"nodeinfo": {
			NodeInfo{NodeID: "aabbccddeeff", Hostname: "gw1"},
			NodeInfo{NodeID: "112233445566", Hostname: "gw2"},
		},
		"statistics": {
			StatisticsInfo{NodeID: "aabbccddeeff", Uptime: 60},
		},
	}

	merged := mergeNodes(byKind)
	if len(merged) != 2 {
		t.Fatalf("nodes=%d", len(merged))
	}

	both := merged["aabbccddeeff"]
	if len(both) != 2 {
		t.Fatalf("expected both kinds, got %v", both)
	}
	if _, ok := both["nodeinfo"].(NodeInfo); !ok {
		t.Fatalf("nodeinfo entry: %T", both["nodeinfo"])
	}
	if _, ok := both["statistics"].(StatisticsInfo); !ok {
		t.Fatalf("statistics entry: %T", both["statistics"])
	}

	// gw2 has no statistics record but must not be dropped.
	only := merged["112233445566"]
	if len(only) != 1 {
		t.Fatalf("expected one kind, got %v", only)
	}
	if _, ok := only["nodeinfo"]; !ok {
		t.Fatalf("nodeinfo missing: %v", only)
	}
}

func TestMergeNodes_EmptyKindContributesNothing(t *testing.T) {
	t.Parallel()

	byKind := map[string][]Record{
		"nodeinfo":   {NodeInfo{NodeID: "aabbccddeeff"}},
		"statistics": {},
	}
	merged := mergeNodes(byKind)
	if len(merged) != 1 {
		t.Fatalf("nodes=%d", len(merged))
	}
	if len(merged["aabbccddeeff"]) != 1 {
		t.Fatalf("kinds=%v", merged["aabbccddeeff"])
	}
}

func TestMergeNodes_Empty(t *testing.T) {
	t.Parallel()

	if got := mergeNodes(nil); len(got) != 0 {
		t.Fatalf("expected empty merge, got %v", got)
	}
}
