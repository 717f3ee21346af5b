package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"studentdb/pkg/algo"
	"studentdb/pkg/bench"
	"studentdb/pkg/common"

	"github.com/dustin/go-humanize"
)

var (
	firstNames = []string{"Andi", "Budi", "Citra", "Dewi", "Eka", "Fajar", "Gita", "Hadi", "Indah", "Joko"}
	lastNames  = []string{"Pratama", "Santoso", "Lestari", "Wijaya", "Putri", "Saputra", "Hidayat"}
	majors     = []string{"Teknik Informatika", "Sistem Informasi", "Desain Komunikasi Visual", "Teknik Elektro"}
)

func main() {
	sizesFlag := flag.String("n", "100,500,1000", "Comma-separated roster sizes")
	iterations := flag.Int("iterations", bench.DefaultIterations, "Benchmark iterations per algorithm")
	seed := flag.Int64("seed", 1, "Random seed for generated rosters")
	keyFlag := flag.String("key", "id", "Sort key (id, name, gpa, major)")
	flag.Parse()

	key, err := algo.ParseKey(*keyFlag)
	if err != nil {
		log.Fatal(err)
	}
	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("studentdb Algorithm Benchmark (iterations=%s, key=%s)\n", humanize.Comma(int64(*iterations)), key)
	fmt.Println("---------------------------------------------------")

	rng := rand.New(rand.NewSource(*seed))
	for _, n := range sizes {
		records := generate(rng, n)
		fmt.Printf(">> Roster of %s students\n", humanize.Comma(int64(n)))

		for _, a := range algo.SortAlgorithms() {
			b, err := bench.Sort(a, records, key, algo.Ascending, *iterations)
			if err != nil {
				log.Fatalf("sort %s: %v", a, err)
			}
			fmt.Printf("   %-10s %-15s %12s ms\n", a, b.ComplexityLabel, b.ElapsedTimeMs)
		}

		target := records[rng.Intn(len(records))]
		queries := []struct {
			key   algo.Key
			query string
		}{
			{algo.KeyID, string(target.ID)},
			{algo.KeyName, strings.Fields(target.Name)[0]},
		}
		for _, q := range queries {
			for _, a := range algo.SearchAlgorithms() {
				b, err := bench.Search(a, records, q.key, q.query, *iterations)
				if err != nil {
					log.Fatalf("search %s: %v", a, err)
				}
				fmt.Printf("   %-10s %-15s %12s ms  (%s=%q, %d hit(s))\n", a, b.ComplexityLabel, b.ElapsedTimeMs, q.key, q.query, len(b.Data))
			}
		}
		fmt.Println()
	}
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid roster size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func generate(rng *rand.Rand, n int) []common.Record {
	out := make([]common.Record, n)
	perm := rng.Perm(n)
	for i := range out {
		out[i] = common.Record{
			ID:    common.StudentID(strconv.Itoa(10115000 + perm[i])),
			Name:  firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			Major: majors[rng.Intn(len(majors))],
			Score: float64(rng.Intn(401)) / 100,
		}
	}
	return out
}
