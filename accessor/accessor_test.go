package accessor

import (
	"testing"
)

var testJSON = `{"id":4,"name":"Ada","age":36,"isActive":true,"children":[{"column":"team","value":"core"}]}`

func TestJSONAccessorSet(t *testing.T) {
	t.Parallel()

	json := testJSON
	acc := NewJSONAccessor(&json)

	if err := acc.Set("name", "Grace"); err != nil {
		t.Fatal(err)
	}
	if err := acc.Set("age", 45); err != nil {
		t.Fatal(err)
	}
	if err := acc.Set("isActive", false); err != nil {
		t.Fatal(err)
	}

	name, ok := acc.GetString("name")
	if !ok || name != "Grace" {
		t.Errorf("unexpected name: %s", name)
	}
	age, ok := acc.GetInt("age")
	if !ok || age != 45 {
		t.Errorf("unexpected age: %d", age)
	}
	active, ok := acc.GetBool("isActive")
	if !ok || active {
		t.Errorf("unexpected isActive: %v", active)
	}

	// type mismatches are rejected
	if err := acc.Set("name", 5); err == nil {
		t.Error("expected type error for name")
	}
	if err := acc.Set("age", "old"); err == nil {
		t.Error("expected type error for age")
	}
	if err := acc.Set("isActive", "yes"); err == nil {
		t.Error("expected type error for isActive")
	}
}

func TestJSONAccessorStructured(t *testing.T) {
	t.Parallel()

	json := testJSON
	acc := NewJSONAccessor(&json)

	err := acc.Set("children", []map[string]string{
		{"column": "floor", "value": "3"},
	})
	if err != nil {
		t.Fatal(err)
	}

	value, ok := acc.GetString("children.0.column")
	if !ok || value != "floor" {
		t.Errorf("unexpected children: %s", json)
	}
	if acc.Exists("children.1") {
		t.Errorf("stale child left behind: %s", json)
	}
}
