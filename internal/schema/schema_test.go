package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDefinition_Deterministic(t *testing.T) {
	first, err := json.Marshal(Definition())
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	second, err := json.Marshal(Definition())
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}

	if string(first) != string(second) {
		t.Error("Definition is not structurally identical across invocations")
	}
	if !reflect.DeepEqual(Definition(), Definition()) {
		t.Error("Definition values differ across invocations")
	}
}

func TestDefinition_RequiredGroups(t *testing.T) {
	def := Definition()

	expected := []string{"timestamp", "day_of_week", "daylight", "activity", "atmosphere", "building_occupancy", "street_features", "seasonal", "urban_vibe"}
	if !reflect.DeepEqual(def.Required, expected) {
		t.Errorf("Top-level required = %v, expected %v", def.Required, expected)
	}

	for _, key := range expected {
		if def.Properties[key] == nil {
			t.Errorf("Missing property definition for %q", key)
		}
	}
}

func TestDefinition_EveryRequiredKeyHasProperty(t *testing.T) {
	var walk func(t *testing.T, node *Property, path string)
	walk = func(t *testing.T, node *Property, path string) {
		for _, key := range node.Required {
			child, ok := node.Properties[key]
			if !ok {
				t.Errorf("%s: required key %q has no property definition", path, key)
				continue
			}
			if child.Type == "object" {
				walk(t, child, path+"."+key)
			}
		}
	}
	walk(t, Definition(), "root")
}

func TestDefinition_ClosedEnums(t *testing.T) {
	def := Definition()

	tests := []struct {
		path []string
		size int
	}{
		{[]string{"day_of_week"}, 7},
		{[]string{"daylight"}, 6},
		{[]string{"atmosphere", "precipitation"}, 7},
		{[]string{"atmosphere", "road_condition"}, 6},
		{[]string{"atmosphere", "sky_condition"}, 5},
		{[]string{"seasonal", "tree_foliage"}, 5},
		{[]string{"seasonal", "season_estimate"}, 4},
		{[]string{"urban_vibe", "activity_level"}, 5},
	}

	for _, tt := range tests {
		node := def
		for _, key := range tt.path {
			node = node.Properties[key]
			if node == nil {
				t.Fatalf("Missing property at path %v", tt.path)
			}
		}
		if len(node.Enum) != tt.size {
			t.Errorf("Enum at %v has %d values, expected %d", tt.path, len(node.Enum), tt.size)
		}
	}
}

func TestDefinition_OmitsEmptyFieldsInJSON(t *testing.T) {
	data, err := json.Marshal(Definition())
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Schema does not round-trip through JSON: %v", err)
	}
	if _, ok := decoded["enum"]; ok {
		t.Error("Top-level object should not carry an enum field")
	}
}
