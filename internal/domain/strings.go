package domain

import (
	"encoding/json/v2"
	"fmt"
)

// StringOrSlice decodes a JSON field that curators write either as a bare
// string or as a list of strings. A bare string becomes a one-element slice.
type StringOrSlice []string

// UnmarshalJSON implements json unmarshaling for both shapes.
func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrSlice{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("source must be a string or a list of strings: %w", err)
	}
	*s = StringOrSlice(many)
	return nil
}
