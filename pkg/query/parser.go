package query

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"studentdb/pkg/algo"
	"studentdb/pkg/common"
)

type Kind int

const (
	KindSort Kind = iota
	KindSearch
)

// Statement is a parsed SORT or SEARCH command.
type Statement struct {
	Kind       Kind
	Key        algo.Key
	Order      algo.Order
	SortAlgo   algo.SortAlgorithm
	SearchAlgo algo.SearchAlgorithm
	Query      string
	Limit      int
}

var (
	sortRe   = regexp.MustCompile(`(?i)^SORT\s+BY\s+([a-zA-Z_]+)(?:\s+(ASC|DESC))?(?:\s+USING\s+([a-zA-Z_]+))?(?:\s+LIMIT\s+(\d+))?$`)
	searchRe = regexp.MustCompile(`(?i)^SEARCH\s+([a-zA-Z_]+)\s+FOR\s+(?:'([^']*)'|"([^"]*)"|(\S+))(?:\s+USING\s+([a-zA-Z_]+))?(?:\s+LIMIT\s+(\d+))?$`)
)

// Parse parses:
// "SORT BY name"
// "SORT BY score DESC USING bubble"
// "SEARCH name FOR 'andi' USING binary LIMIT 5"
// Sorts default to ascending merge sort, searches to linear search.
func Parse(s string) (*Statement, error) {
	orig := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	if orig == "" {
		return nil, errors.New("empty query")
	}

	if m := sortRe.FindStringSubmatch(orig); m != nil {
		return parseSort(m)
	}
	if m := searchRe.FindStringSubmatch(orig); m != nil {
		return parseSearch(m)
	}
	return nil, errors.New("syntax: expected SORT BY <key> [ASC|DESC] [USING <algo>] [LIMIT <n>] or SEARCH <key> FOR <text> [USING <algo>] [LIMIT <n>]")
}

func parseSort(m []string) (*Statement, error) {
	key, err := algo.ParseKey(m[1])
	if err != nil {
		return nil, err
	}
	order, err := algo.ParseOrder(m[2])
	if err != nil {
		return nil, err
	}
	stmt := &Statement{Kind: KindSort, Key: key, Order: order, SortAlgo: algo.Merge, Limit: -1}
	if m[3] != "" {
		if stmt.SortAlgo, err = algo.ParseSortAlgorithm(m[3]); err != nil {
			return nil, err
		}
	}
	if stmt.Limit, err = parseLimit(m[4]); err != nil {
		return nil, err
	}
	return stmt, nil
}

func parseSearch(m []string) (*Statement, error) {
	key, err := algo.ParseKey(m[1])
	if err != nil {
		return nil, err
	}
	text := m[2] + m[3] + m[4]
	if text == "" {
		return nil, errors.New("empty search text")
	}
	stmt := &Statement{Kind: KindSearch, Key: key, Query: text, SearchAlgo: algo.Linear, Limit: -1}
	if m[5] != "" {
		if stmt.SearchAlgo, err = algo.ParseSearchAlgorithm(m[5]); err != nil {
			return nil, err
		}
	}
	if stmt.Limit, err = parseLimit(m[6]); err != nil {
		return nil, err
	}
	return stmt, nil
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := parseInt64(s)
	if err != nil || n < 0 || n > math.MaxInt {
		return 0, fmt.Errorf("invalid LIMIT value %q", s)
	}
	return int(n), nil
}

// Truncate applies the statement's LIMIT to records.
func (stmt *Statement) Truncate(records []common.Record) []common.Record {
	if stmt.Limit < 0 || len(records) <= stmt.Limit {
		return records
	}
	return records[:stmt.Limit]
}

func (stmt *Statement) String() string {
	var b strings.Builder
	if stmt.Kind == KindSort {
		fmt.Fprintf(&b, "SORT BY %s %s USING %s", stmt.Key, strings.ToUpper(stmt.Order.String()), stmt.SortAlgo)
	} else {
		fmt.Fprintf(&b, "SEARCH %s FOR '%s' USING %s", stmt.Key, stmt.Query, stmt.SearchAlgo)
	}
	if stmt.Limit >= 0 {
		fmt.Fprintf(&b, " LIMIT %d", stmt.Limit)
	}
	return b.String()
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty int")
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, errors.New("invalid int")
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
