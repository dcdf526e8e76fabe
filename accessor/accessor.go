// Package accessor provides field-level access to a JSON-serialized record.
// The store uses it to apply partial updates without knowing which fields a
// patch carries.
package accessor

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONAccessor is a json string with get and set functions.
type JSONAccessor struct {
	json *string
}

// NewJSONAccessor wraps a JSON string.
func NewJSONAccessor(json *string) *JSONAccessor {
	return &JSONAccessor{
		json: json,
	}
}

// Set sets the value identified by key. Setting a value of a mismatched type
// on an existing field fails.
func (ja *JSONAccessor) Set(key string, value interface{}) error {
	result := gjson.Get(*ja.json, key)
	if result.Exists() {
		switch value.(type) {
		case string:
			if result.Type != gjson.String {
				return fmt.Errorf("tried to set field %s (%s) to a %T value", key, result.Type.String(), value)
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			if result.Type != gjson.Number {
				return fmt.Errorf("tried to set field %s (%s) to a %T value", key, result.Type.String(), value)
			}
		case bool:
			if result.Type != gjson.True && result.Type != gjson.False {
				return fmt.Errorf("tried to set field %s (%s) to a %T value", key, result.Type.String(), value)
			}
		}
	}

	updated, err := sjson.Set(*ja.json, key, value)
	if err != nil {
		return err
	}
	*ja.json = updated
	return nil
}

// GetString returns the string found by the given key and whether it could
// be extracted.
func (ja *JSONAccessor) GetString(key string) (value string, ok bool) {
	result := gjson.Get(*ja.json, key)
	if !result.Exists() || result.Type != gjson.String {
		return "", false
	}
	return result.String(), true
}

// GetInt returns the int found by the given key and whether it could be
// extracted.
func (ja *JSONAccessor) GetInt(key string) (value int64, ok bool) {
	result := gjson.Get(*ja.json, key)
	if !result.Exists() || result.Type != gjson.Number {
		return 0, false
	}
	return result.Int(), true
}

// GetBool returns the bool found by the given key and whether it could be
// extracted.
func (ja *JSONAccessor) GetBool(key string) (value bool, ok bool) {
	result := gjson.Get(*ja.json, key)
	switch {
	case !result.Exists():
		return false, false
	case result.Type == gjson.True:
		return true, true
	case result.Type == gjson.False:
		return false, true
	default:
		return false, false
	}
}

// Exists returns whether the given key exists.
func (ja *JSONAccessor) Exists(key string) bool {
	return gjson.Get(*ja.json, key).Exists()
}
