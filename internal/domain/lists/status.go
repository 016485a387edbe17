package lists

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type AssemblyStatus uint8

const (
	AssemblyNotStarted AssemblyStatus = iota
	AssemblyInProgress
	AssemblyAssembled

	assemblyStatusCount = iota
)

var assemblyStatusNames = [assemblyStatusCount]string{
	"Not Started",
	"In Progress",
	"Assembled",
}

type PaintingStatus uint8

const (
	PaintingUnpainted PaintingStatus = iota
	PaintingPrimed
	PaintingBaseCoated
	PaintingDetailed
	PaintingFinished

	paintingStatusCount = iota
)

var paintingStatusNames = [paintingStatusCount]string{
	"Unpainted",
	"Primed",
	"Base Coated",
	"Detailed",
	"Finished",
}

// AssemblyStatuses returns every assembly status in canonical order.
func AssemblyStatuses() []AssemblyStatus {
	out := make([]AssemblyStatus, assemblyStatusCount)
	for i := range out {
		out[i] = AssemblyStatus(i)
	}
	return out
}

// PaintingStatuses returns every painting status in canonical order.
func PaintingStatuses() []PaintingStatus {
	out := make([]PaintingStatus, paintingStatusCount)
	for i := range out {
		out[i] = PaintingStatus(i)
	}
	return out
}

func (s AssemblyStatus) String() string {
	if int(s) < len(assemblyStatusNames) {
		return assemblyStatusNames[s]
	}
	return fmt.Sprintf("AssemblyStatus(%d)", uint8(s))
}

func (s AssemblyStatus) Valid() bool {
	return int(s) < assemblyStatusCount
}

func ParseAssemblyStatus(value string) (AssemblyStatus, error) {
	for i, name := range assemblyStatusNames {
		if name == value {
			return AssemblyStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown assembly status %q", value)
}

func (s AssemblyStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid assembly status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *AssemblyStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseAssemblyStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (AssemblyStatus) GormDataType() string {
	return "string"
}

func (s AssemblyStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid assembly status %d", uint8(s))
	}
	return s.String(), nil
}

func (s *AssemblyStatus) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan assembly status: %w", err)
	}
	return s.UnmarshalText([]byte(text))
}

func (s PaintingStatus) String() string {
	if int(s) < len(paintingStatusNames) {
		return paintingStatusNames[s]
	}
	return fmt.Sprintf("PaintingStatus(%d)", uint8(s))
}

func (s PaintingStatus) Valid() bool {
	return int(s) < paintingStatusCount
}

func ParsePaintingStatus(value string) (PaintingStatus, error) {
	for i, name := range paintingStatusNames {
		if name == value {
			return PaintingStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown painting status %q", value)
}

func (s PaintingStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid painting status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *PaintingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePaintingStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (PaintingStatus) GormDataType() string {
	return "string"
}

func (s PaintingStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid painting status %d", uint8(s))
	}
	return s.String(), nil
}

func (s *PaintingStatus) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan painting status: %w", err)
	}
	return s.UnmarshalText([]byte(text))
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}

// AssemblyProgress counts quantity per assembly status.
type AssemblyProgress [assemblyStatusCount]int

// MarshalJSON writes every status key in canonical order, zeros included.
func (p AssemblyProgress) MarshalJSON() ([]byte, error) {
	return marshalHistogram(assemblyStatusNames[:], p[:])
}

// PaintingProgress counts quantity per painting status.
type PaintingProgress [paintingStatusCount]int

func (p PaintingProgress) MarshalJSON() ([]byte, error) {
	return marshalHistogram(paintingStatusNames[:], p[:])
}

func marshalHistogram(names []string, counts []int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", counts[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
