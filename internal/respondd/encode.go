package respondd

import (
	"bytes"
	"encoding/json"

	"github.com/klauspost/compress/flate"
)

// encodeNode serializes one node's composite record to JSON, optionally
// wrapped in a raw deflate stream.
func encodeNode(node map[string]Record, compress bool) ([]byte, error) {
	payload, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	if !compress {
		return payload, nil
	}
	return deflate(payload)
}

// deflate produces a headerless stream, the format mesh-map collectors
// inflate with window bits -15.
func deflate(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
