package common

import (
	"encoding/json"
	"testing"
)

func TestOptionalNullableStringStates(t *testing.T) {
	var req struct {
		Description OptionalNullableString `json:"description"`
		Notes       OptionalNullableString `json:"notes"`
		Base        OptionalNullableString `json:"baseSize"`
	}
	if err := json.Unmarshal([]byte(`{"description":null,"notes":"primed"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !req.Description.Cleared() {
		t.Fatalf("expected explicit null to clear")
	}
	if !req.Notes.Set || req.Notes.Value == nil || *req.Notes.Value != "primed" || req.Notes.Cleared() {
		t.Fatalf("unexpected notes %+v", req.Notes)
	}
	if req.Base.Set || req.Base.Cleared() {
		t.Fatalf("expected absent field untouched, got %+v", req.Base)
	}
}

func TestOptionalNullableIntRejectsStrings(t *testing.T) {
	var req struct {
		Points OptionalNullableInt `json:"pointsValue"`
	}
	if err := json.Unmarshal([]byte(`{"pointsValue":"ten"}`), &req); err == nil {
		t.Fatalf("expected error for non-integer")
	}
	if err := json.Unmarshal([]byte(`{"pointsValue":25}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Points.Value == nil || *req.Points.Value != 25 {
		t.Fatalf("unexpected points %+v", req.Points)
	}
}
