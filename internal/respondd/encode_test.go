package respondd

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"testing"

	"github.com/klauspost/compress/flate"
)

func testNode() map[string]Record {
	return map[string]Record{
		"nodeinfo": NodeInfo{
			Firmware: FirmwareInfo{Base: "6.6.77"},
			Hostname: "gw1",
			NodeID:   "aabbccddeeff",
			Location: LocationInfo{Latitude: 52.02, Longitude: 8.54},
			Hardware: HardwareInfo{Model: "U7PG2"},
			Owner:    OwnerInfo{Contact: "noc@example.org"},
		},
		"statistics": StatisticsInfo{
			Clients: ClientInfo{Total: 12, Wifi: 12},
			Uptime:  86400,
			NodeID:  "aabbccddeeff",
			LoadAvg: 0.52,
			Memory:  MemoryInfo{Total: 256000, Free: 128000, Buffers: 1024},
		},
	}
}

func TestEncodeNode_UncompressedFieldNames(t *testing.T) {
	t.Parallel()

	payload, err := encodeNode(testNode(), false)
	if err != nil {
		t.Fatalf("encodeNode: %v", err)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}

	info := doc["nodeinfo"]
	if info == nil {
		t.Fatalf("nodeinfo missing: %s", payload)
	}
	for _, field := range []string{"firmware", "hostname", "node_id", "location", "hardware", "owner"} {
		if _, ok := info[field]; !ok {
			t.Fatalf("nodeinfo field %q missing: %s", field, payload)
		}
	}
	if info["node_id"] != "aabbccddeeff" || info["hostname"] != "gw1" {
		t.Fatalf("nodeinfo values: %v", info)
	}

	stats := doc["statistics"]
	if stats == nil {
		t.Fatalf("statistics missing: %s", payload)
	}
	for _, field := range []string{"clients", "uptime", "node_id", "loadavg", "memory"} {
		if _, ok := stats[field]; !ok {
			t.Fatalf("statistics field %q missing: %s", field, payload)
		}
	}
	memory, ok := stats["memory"].(map[string]any)
	if !ok {
		t.Fatalf("memory not nested: %v", stats["memory"])
	}
	if memory["total"] != float64(256000) || memory["buffers"] != float64(1024) {
		t.Fatalf("memory values: %v", memory)
	}
}

func TestEncodeNode_CompressedRoundTrip(t *testing.T) {
	t.Parallel()

	plain, err := encodeNode(testNode(), false)
	if err != nil {
		t.Fatalf("encodeNode plain: %v", err)
	}
	compressed, err := encodeNode(testNode(), true)
	if err != nil {
		t.Fatalf("encodeNode compressed: %v", err)
	}
	if bytes.Equal(plain, compressed) {
		t.Fatalf("compressed payload equals plain payload")
	}

	// The stream must be headerless deflate, i.e. readable with window
	// bits -15 semantics.
	r := flate.NewReader(bytes.NewReader(compressed))
	inflated, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !bytes.Equal(inflated, plain) {
		t.Fatalf("round trip mismatch:\n%s\n%s", inflated, plain)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(inflated, &doc); err != nil {
		t.Fatalf("inflated reply is not JSON: %v", err)
	}
	if len(doc) != 2 {
		t.Fatalf("kinds=%d", len(doc))
	}
}

func TestEncodeNode_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := encodeNode(testNode(), false)
	if err != nil {
		t.Fatalf("encodeNode: %v", err)
	}
	second, err := encodeNode(testNode(), false)
	if err != nil {
		t.Fatalf("encodeNode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("payloads differ:\n%s\n%s", first, second)
	}
}

func TestEncodeNode_ValuesSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	payload, err := encodeNode(testNode(), true)
	if err != nil {
		t.Fatalf("encodeNode: %v", err)
	}
	r := flate.NewReader(bytes.NewReader(payload))
	inflated, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}

	var doc struct {
		NodeInfo   NodeInfo       `json:"nodeinfo"`
		Statistics StatisticsInfo `json:"statistics"`
	}
	if err := json.Unmarshal(inflated, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := testNode()
	if !reflect.DeepEqual(doc.NodeInfo, want["nodeinfo"]) {
		t.Fatalf("nodeinfo changed: %+v", doc.NodeInfo)
	}
	if !reflect.DeepEqual(doc.Statistics, want["statistics"]) {
		t.Fatalf("statistics changed: %+v", doc.Statistics)
	}
}
