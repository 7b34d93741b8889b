package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/leomancini/street-metrics/internal/schema"
)

// ErrSchema marks a payload that was delivered through the structured
// channel but does not satisfy the scene analysis schema.
var ErrSchema = errors.New("analysis payload violates scene schema")

// Integer fields with an explicit range beyond plain non-negativity,
// keyed by dotted path into the record.
var intRanges = map[string][2]int{
	"building_occupancy.residential_windows_lit_pct": {0, 100},
	"building_occupancy.office_windows_lit_pct":      {0, 100},
	"urban_vibe.hustle_score":                        {1, 10},
	"urban_vibe.cozy_factor":                         {1, 10},
}

// Decode parses a structured payload into a SceneAnalysisRecord and
// validates it against the scene_analysis schema: every required field
// must be present, every enum value must belong to its closed set, counts
// must be non-negative integers and scored fields must be in range.
// Violations are collected and returned wrapped in ErrSchema.
func Decode(payload []byte) (*SceneAnalysisRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrSchema, err)
	}

	var violations []string
	checkObject(schema.Definition(), raw, "", &violations)

	if len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(violations, "; "))
	}

	var record SceneAnalysisRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return &record, nil
}

// checkObject verifies required keys of an object node and recurses into
// its property values.
func checkObject(node *schema.Property, raw map[string]json.RawMessage, path string, violations *[]string) {
	for _, key := range node.Required {
		value, ok := raw[key]
		if !ok || string(value) == "null" {
			*violations = append(*violations, joinPath(path, key)+": required field missing")
			continue
		}
		checkValue(node.Properties[key], value, joinPath(path, key), violations)
	}
}

// checkValue verifies a single value against a schema node.
func checkValue(node *schema.Property, value json.RawMessage, path string, violations *[]string) {
	if node == nil {
		return
	}

	switch node.Type {
	case "object":
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(value, &nested); err != nil {
			*violations = append(*violations, path+": expected an object")
			return
		}
		checkObject(node, nested, path, violations)

	case "string":
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			*violations = append(*violations, path+": expected a string")
			return
		}
		if len(node.Enum) > 0 && !contains(node.Enum, s) {
			*violations = append(*violations, fmt.Sprintf("%s: %q is not one of %v", path, s, node.Enum))
		} else if len(node.Enum) == 0 && s == "" {
			*violations = append(*violations, path+": must not be empty")
		}

	case "integer":
		var n float64
		if err := json.Unmarshal(value, &n); err != nil || n != math.Trunc(n) {
			*violations = append(*violations, path+": expected an integer")
			return
		}
		v := int(n)
		lo, hi := 0, math.MaxInt
		if r, ok := intRanges[path]; ok {
			lo, hi = r[0], r[1]
		}
		if v < lo || v > hi {
			*violations = append(*violations, fmt.Sprintf("%s: %d is out of range [%d, %d]", path, v, lo, hi))
		}

	case "number":
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			*violations = append(*violations, path+": expected a number")
			return
		}
		if n < 0 {
			*violations = append(*violations, fmt.Sprintf("%s: %g must not be negative", path, n))
		}

	case "boolean":
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			*violations = append(*violations, path+": expected a boolean")
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
