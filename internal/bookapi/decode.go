package bookapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList decodes a JSON array response. The remote occasionally answers
// list endpoints with a null or an object-shaped body; per the client
// contract those yield an empty list rather than an error, so pages always
// have something renderable.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
