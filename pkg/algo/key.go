package algo

import (
	"fmt"
	"strconv"
	"strings"

	"studentdb/pkg/common"
)

// Key selects the record field used for comparison.
type Key string

const (
	KeyID    Key = "id"
	KeyName  Key = "name"
	KeyScore Key = "score"
	KeyMajor Key = "major"
)

// ParseKey accepts the field names exposed to users. "gpa" is the persisted
// name of the score field and is accepted as an alias.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id", "nim":
		return KeyID, nil
	case "name":
		return KeyName, nil
	case "score", "gpa", "ipk":
		return KeyScore, nil
	case "major":
		return KeyMajor, nil
	}
	return "", fmt.Errorf("unknown key %q (want id, name, score or major)", s)
}

func (k Key) Valid() bool {
	switch k {
	case KeyID, KeyName, KeyScore, KeyMajor:
		return true
	}
	return false
}

// Numeric reports whether values for k compare as numbers.
func (k Key) Numeric() bool {
	return k == KeyID || k == KeyScore
}

type Order int

const (
	Ascending Order = iota
	Descending
)

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown order %q (want asc or desc)", s)
}

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Value is a comparable key value: a float for numeric keys, a lower-cased
// string otherwise. NaN keeps IEEE-754 semantics and is neither less nor
// greater than anything.
type Value struct {
	Num     float64
	Str     string
	Numeric bool
}

func (v Value) Less(o Value) bool {
	if v.Numeric {
		return v.Num < o.Num
	}
	return v.Str < o.Str
}

func (v Value) Greater(o Value) bool {
	if v.Numeric {
		return v.Num > o.Num
	}
	return v.Str > o.Str
}

// Extract maps a record field to its comparable value.
func Extract(r common.Record, key Key) Value {
	switch key {
	case KeyID:
		return Value{Num: r.ID.Float(), Numeric: true}
	case KeyScore:
		return Value{Num: r.Score, Numeric: true}
	case KeyName:
		return Value{Str: strings.ToLower(r.Name)}
	case KeyMajor:
		return Value{Str: strings.ToLower(r.Major)}
	}
	return Value{}
}

// text renders the field as the lower-cased string linear search matches on.
func text(r common.Record, key Key) string {
	switch key {
	case KeyID:
		return strings.ToLower(string(r.ID))
	case KeyScore:
		return strconv.FormatFloat(r.Score, 'f', -1, 64)
	case KeyName:
		return strings.ToLower(r.Name)
	case KeyMajor:
		return strings.ToLower(r.Major)
	}
	return ""
}

// ShouldSwap is the single ordering rule shared by every sort: ascending
// swaps when a > b, descending when a < b.
func ShouldSwap(a, b Value, order Order) bool {
	if order == Descending {
		return a.Less(b)
	}
	return a.Greater(b)
}
