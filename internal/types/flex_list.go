package types

import (
	"encoding/json"
)

// FlexList is a slice that can be unmarshaled from either a single JSON object
// or a JSON array. Mobile clients send "media_urls": "https://..." for a single
// attachment and an array for several.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexList[T](slice)
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*f = FlexList[T]{item}
	return nil
}

// Slice converts FlexList[T] back to []T.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}
