package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StudentID is the integer-like identifier of a student. It may arrive as a
// JSON number or as a numeric string; both decode to the same value.
type StudentID string

// Normalize trims whitespace and drops leading zeros from all-digit ids so
// that "007", "7" and 7 refer to the same student.
func (id StudentID) Normalize() StudentID {
	s := strings.TrimSpace(string(id))
	if isDigits(s) {
		s = strings.TrimLeft(s, "0")
		if s == "" {
			s = "0"
		}
	}
	return StudentID(s)
}

// Float parses the id as a number. Non-numeric ids yield NaN.
func (id StudentID) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(id)), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Equal compares ids by value rather than by representation. All-digit ids
// are compared exactly, so ids beyond float64 precision stay distinct.
func (id StudentID) Equal(other StudentID) bool {
	a, b := id.Normalize(), other.Normalize()
	if a == b {
		return true
	}
	if isDigits(string(a)) && isDigits(string(b)) {
		return false
	}
	fa, fb := a.Float(), b.Float()
	return !math.IsNaN(fa) && fa == fb
}

// CompareIDs orders ids numerically when both are numbers. Numeric ids sort
// before non-numeric ones, which fall back to string order. All-digit ids
// compare by length and then digit by digit, never through float64.
func CompareIDs(a, b StudentID) int {
	a, b = a.Normalize(), b.Normalize()
	if isDigits(string(a)) && isDigits(string(b)) {
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
		return strings.Compare(string(a), string(b))
	}

	fa, fb := a.Float(), b.Float()
	na, nb := !math.IsNaN(fa), !math.IsNaN(fb)
	switch {
	case na && nb:
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
		return 0
	case na:
		return -1
	case nb:
		return 1
	}
	return strings.Compare(string(a), string(b))
}

func (id StudentID) String() string {
	return string(id)
}

func (id StudentID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if isDigits(s) && (s == "0" || s[0] != '0') {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StudentID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("student id: %w", err)
	}
	*id = StudentID(n.String())
	return nil
}

// Record is a single student row. The JSON shape matches the persisted
// collection: {id, name, major, gpa, email}.
type Record struct {
	ID    StudentID `json:"id"`
	Name  string    `json:"name"`
	Major string    `json:"major"`
	Score float64   `json:"gpa"`
	Email string    `json:"email,omitempty"`
}

// String 输出 "id - name | major | GPA: x.xx"，方便调试打印
func (r Record) String() string {
	return fmt.Sprintf("%s - %s | %s | GPA: %.2f", r.ID, r.Name, r.Major, r.Score)
}

// CloneRecords returns a shallow copy of records.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
