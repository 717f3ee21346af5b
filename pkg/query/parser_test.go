package query

import (
	"testing"

	"studentdb/pkg/algo"
	"studentdb/pkg/common"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		q     string
		key   algo.Key
		order algo.Order
		alg   algo.SortAlgorithm
		limit int
		err   bool
	}{
		{"SORT BY name", algo.KeyName, algo.Ascending, algo.Merge, -1, false},
		{"sort by gpa desc", algo.KeyScore, algo.Descending, algo.Merge, -1, false},
		{"SORT BY id ASC USING bubble;", algo.KeyID, algo.Ascending, algo.Bubble, -1, false},
		{"  SORT BY score DESC USING shell LIMIT 2  ", algo.KeyScore, algo.Descending, algo.Shell, 2, false},
		{"SORT BY major USING insertion", algo.KeyMajor, algo.Ascending, algo.Insertion, -1, false},
		{"SORT BY email", "", 0, 0, 0, true},
		{"SORT BY id USING quick", "", 0, 0, 0, true},
		{"SORT name", "", 0, 0, 0, true},
		{"", "", 0, 0, 0, true},
	}
	for _, tt := range tests {
		stmt, err := Parse(tt.q)
		if tt.err {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.q)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.q, err)
			continue
		}
		if stmt.Kind != KindSort || stmt.Key != tt.key || stmt.Order != tt.order || stmt.SortAlgo != tt.alg || stmt.Limit != tt.limit {
			t.Errorf("Parse(%q) = %+v", tt.q, stmt)
		}
	}
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		q     string
		key   algo.Key
		text  string
		alg   algo.SearchAlgorithm
		limit int
		err   bool
	}{
		{"SEARCH name FOR andi", algo.KeyName, "andi", algo.Linear, -1, false},
		{"search name for 'andi pratama' using binary", algo.KeyName, "andi pratama", algo.Binary, -1, false},
		{`SEARCH id FOR "10115" USING linear LIMIT 1`, algo.KeyID, "10115", algo.Linear, 1, false},
		{"SEARCH major FOR inf USING sequential", algo.KeyMajor, "inf", algo.Linear, -1, false},
		{"SEARCH name FOR ''", "", "", 0, 0, true},
		{"SEARCH name FOR x USING jump", "", "", 0, 0, true},
		{"SEARCH name", "", "", 0, 0, true},
	}
	for _, tt := range tests {
		stmt, err := Parse(tt.q)
		if tt.err {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.q)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.q, err)
			continue
		}
		if stmt.Kind != KindSearch || stmt.Key != tt.key || stmt.Query != tt.text || stmt.SearchAlgo != tt.alg || stmt.Limit != tt.limit {
			t.Errorf("Parse(%q) = %+v", tt.q, stmt)
		}
	}
}

func TestTruncateAndString(t *testing.T) {
	stmt, err := Parse("SEARCH name FOR an USING binary LIMIT 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	recs := []common.Record{{ID: "1"}, {ID: "2"}}
	if got := stmt.Truncate(recs); len(got) != 1 {
		t.Fatalf("truncate: %v", got)
	}
	if got := stmt.String(); got != "SEARCH name FOR 'an' USING binary LIMIT 1" {
		t.Fatalf("String() = %q", got)
	}

	all, _ := Parse("SORT BY id DESC")
	if got := all.Truncate(recs); len(got) != 2 {
		t.Fatalf("no-limit truncate: %v", got)
	}
	if got := all.String(); got != "SORT BY id DESC USING merge" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseLimitRange(t *testing.T) {
	stmt, err := Parse("SORT BY id LIMIT 2147483647")
	if err != nil {
		t.Fatalf("large limit: %v", err)
	}
	if stmt.Limit != 2147483647 {
		t.Fatalf("limit wrapped: %d", stmt.Limit)
	}

	for _, q := range []string{
		"SORT BY id LIMIT 9223372036854775808",
		"SORT BY id LIMIT 99999999999999999999999",
		"SEARCH name FOR andi LIMIT 18446744073709551617",
	} {
		if _, err := Parse(q); err == nil {
			t.Errorf("Parse(%q): expected range error", q)
		}
	}
}
