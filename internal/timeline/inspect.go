package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Summary describes the structure of an export without fully normalizing it
type Summary struct {
	TotalSegments    int            `json:"totalSegments"`
	VisitSegments    int            `json:"visitSegments"`
	ActivitySegments int            `json:"activitySegments"`
	EmptySegments    int            `json:"emptySegments"`
	VisitShapes      map[string]int `json:"visitShapes"`
	ActivityShapes   map[string]int `json:"activityShapes"`
}

// Inspect scans an export and reports segment counts plus the distinct key
// shapes of visit and activity payloads. Useful for eyeballing a new export
// before running the full pipeline.
func Inspect(r io.Reader) (*Summary, error) {
	dec := json.NewDecoder(r)
	if err := seekSegments(dec); err != nil {
		return nil, err
	}

	sum := &Summary{
		VisitShapes:    make(map[string]int),
		ActivityShapes: make(map[string]int),
	}

	for dec.More() {
		var seg map[string]json.RawMessage
		if err := dec.Decode(&seg); err != nil {
			return nil, fmt.Errorf("failed to decode segment %d: %w", sum.TotalSegments, err)
		}
		sum.TotalSegments++

		if raw, ok := seg["visit"]; ok {
			sum.VisitSegments++
			sum.VisitShapes[payloadShape(raw)]++
		} else if raw, ok := seg["activity"]; ok {
			sum.ActivitySegments++
			sum.ActivityShapes[payloadShape(raw)]++
		} else {
			sum.EmptySegments++
		}
	}

	return sum, nil
}

// payloadShape returns the sorted key list of a payload object, e.g. "probability,topCandidate"
func payloadShape(raw json.RawMessage) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "<non-object>"
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
