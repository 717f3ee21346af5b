package algo

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"studentdb/pkg/common"
)

var names = []string{"Andi", "budi", "Citra", "dewi", "Eka", "andrew", "Bella", "citra"}

func randomRecords(seed int64, n int) []common.Record {
	rng := rand.New(rand.NewSource(seed))
	out := make([]common.Record, n)
	for i := range out {
		out[i] = common.Record{
			ID:    common.StudentID(fmt.Sprintf("%d", 10115000+rng.Intn(n*3+1))),
			Name:  names[rng.Intn(len(names))],
			Major: "TI",
			Score: float64(rng.Intn(401)) / 100,
		}
	}
	return out
}

func idMultiset(records []common.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, fmt.Sprintf("%s|%s|%v", r.ID, r.Name, r.Score))
	}
	sort.Strings(ids)
	return ids
}

func assertOrdered(t *testing.T, records []common.Record, key Key, order Order) {
	t.Helper()
	for i := 0; i+1 < len(records); i++ {
		a, b := Extract(records[i], key), Extract(records[i+1], key)
		if ShouldSwap(a, b, order) {
			t.Fatalf("position %d out of order for key=%s order=%s: %v then %v", i, key, order, records[i], records[i+1])
		}
	}
}

func TestSortAlgorithmsPermuteAndOrder(t *testing.T) {
	for _, alg := range SortAlgorithms() {
		for _, key := range []Key{KeyID, KeyName, KeyScore, KeyMajor} {
			for _, order := range []Order{Ascending, Descending} {
				for _, n := range []int{0, 1, 2, 7, 64} {
					input := randomRecords(int64(n)+int64(alg)*31, n)
					before := common.CloneRecords(input)

					res, err := Sort(alg, input, key, order)
					if err != nil {
						t.Fatalf("%s: %v", alg, err)
					}
					if len(res.Records) != n {
						t.Fatalf("%s n=%d: got %d records", alg, n, len(res.Records))
					}
					if fmt.Sprint(idMultiset(res.Records)) != fmt.Sprint(idMultiset(input)) {
						t.Fatalf("%s n=%d: output is not a permutation of input", alg, n)
					}
					assertOrdered(t, res.Records, key, order)
					for i := range input {
						if input[i] != before[i] {
							t.Fatalf("%s mutated the caller's slice at %d", alg, i)
						}
					}
					if res.Complexity != alg.Complexity() {
						t.Fatalf("%s: complexity %q, want %q", alg, res.Complexity, alg.Complexity())
					}
				}
			}
		}
	}
}

func TestSortComplexityLabels(t *testing.T) {
	want := map[SortAlgorithm]string{
		Bubble:    "O(n²)",
		Selection: "O(n²)",
		Insertion: "O(n²)",
		Merge:     "O(n log n)",
		Shell:     "O(n (log n)²)",
	}
	for alg, label := range want {
		res, _ := Sort(alg, nil, KeyID, Ascending)
		if res.Complexity != label {
			t.Errorf("%s: got %q, want %q", alg, res.Complexity, label)
		}
	}
}

func TestMergeSortTieTakesRight(t *testing.T) {
	input := []common.Record{
		{ID: "1", Name: "X", Score: 3},
		{ID: "2", Name: "Y", Score: 3},
		{ID: "3", Name: "Z", Score: 3},
	}
	for _, order := range []Order{Ascending, Descending} {
		res := MergeSort(input, KeyScore, order)
		got := []common.StudentID{res.Records[0].ID, res.Records[1].ID, res.Records[2].ID}
		if fmt.Sprint(got) != "[3 2 1]" {
			t.Fatalf("order=%s: got %v, want [3 2 1]", order, got)
		}
	}

	// Equal keys meeting across halves also yield the right-hand record first.
	mixed := []common.Record{
		{ID: "A", Score: 2}, {ID: "B", Score: 1},
		{ID: "C", Score: 2}, {ID: "D", Score: 1},
	}
	res := MergeSort(mixed, KeyScore, Ascending)
	var got []common.StudentID
	for _, r := range res.Records {
		got = append(got, r.ID)
	}
	if fmt.Sprint(got) != "[D B C A]" {
		t.Fatalf("got %v, want [D B C A]", got)
	}
}

func TestSortNameIsCaseInsensitive(t *testing.T) {
	input := []common.Record{{ID: "1", Name: "bob"}, {ID: "2", Name: "Alice"}, {ID: "3", Name: "carol"}}
	for _, alg := range SortAlgorithms() {
		res, _ := Sort(alg, input, KeyName, Ascending)
		if res.Records[0].Name != "Alice" || res.Records[2].Name != "carol" {
			t.Fatalf("%s: got %v", alg, res.Records)
		}
	}
}

func TestSortToleratesNaNKeys(t *testing.T) {
	input := []common.Record{{ID: "12"}, {ID: "x"}, {ID: "3"}, {ID: "7"}}
	for _, alg := range SortAlgorithms() {
		res, err := Sort(alg, input, KeyID, Ascending)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if len(res.Records) != len(input) {
			t.Fatalf("%s: dropped records: %v", alg, res.Records)
		}
	}
}

func TestDescendingFlipsEveryAlgorithm(t *testing.T) {
	input := []common.Record{{ID: "2"}, {ID: "10"}, {ID: "1"}, {ID: "7"}}
	for _, alg := range SortAlgorithms() {
		res, _ := Sort(alg, input, KeyID, Descending)
		var got []common.StudentID
		for _, r := range res.Records {
			got = append(got, r.ID)
		}
		if fmt.Sprint(got) != "[10 7 2 1]" {
			t.Fatalf("%s: got %v", alg, got)
		}
	}
}

func TestSortRejectsUnknownInputs(t *testing.T) {
	if _, err := Sort(SortAlgorithm(42), nil, KeyID, Ascending); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, err := Sort(Merge, nil, Key("email"), Ascending); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseNames(t *testing.T) {
	for _, alg := range SortAlgorithms() {
		got, err := ParseSortAlgorithm(alg.String())
		if err != nil || got != alg {
			t.Fatalf("ParseSortAlgorithm(%q) = %v, %v", alg.String(), got, err)
		}
	}
	if got, err := ParseSortAlgorithm("MergeSort"); err != nil || got != Merge {
		t.Fatalf("ParseSortAlgorithm(MergeSort) = %v, %v", got, err)
	}
	if _, err := ParseSortAlgorithm("quick"); err == nil {
		t.Fatal("expected error for quick")
	}
	if got, err := ParseSearchAlgorithm("sequential"); err != nil || got != Linear {
		t.Fatalf("ParseSearchAlgorithm(sequential) = %v, %v", got, err)
	}
	if k, err := ParseKey("GPA"); err != nil || k != KeyScore {
		t.Fatalf("ParseKey(GPA) = %v, %v", k, err)
	}
	if o, err := ParseOrder("desc"); err != nil || o != Descending {
		t.Fatalf("ParseOrder(desc) = %v, %v", o, err)
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Fatal("expected error for unknown order")
	}
}
