package common

import (
	"bytes"
	"encoding/json"
)

// OptionalNullableString tells apart an absent field, an explicit null and a value.
type OptionalNullableString struct {
	Set   bool
	Value *string
}

func (o *OptionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// Cleared reports an explicit null.
func (o OptionalNullableString) Cleared() bool {
	return o.Set && o.Value == nil
}

type OptionalNullableInt struct {
	Set   bool
	Value *int
}

func (o *OptionalNullableInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

func (o OptionalNullableInt) Cleared() bool {
	return o.Set && o.Value == nil
}
