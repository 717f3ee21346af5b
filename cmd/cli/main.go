package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"studentdb/pkg/client"
	"studentdb/pkg/common"
)

const Prompt = "students> "

func main() {
	serverAddr := flag.String("addr", "localhost:8080", "studentdb HTTP server address")
	flag.Parse()

	fmt.Printf("studentdb CLI (Target: %s)\n", *serverAddr)
	fmt.Println("Connecting...")

	cli, err := client.Dial(*serverAddr)
	if err != nil {
		fmt.Printf("Connection failed: %v\n", err)
		fmt.Println("Tip: Ensure the server is running (e.g. go run ./cmd/server).")
		return
	}
	defer cli.Close()
	fmt.Println("Connected! Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "list", "ls":
			handleList(cli)
		case "get":
			handleGet(cli, parts)
		case "add":
			handleAdd(cli, line)
		case "del", "rm":
			handleDel(cli, parts)
		case "sort", "search":
			handleQuery(cli, line)
		case "stats":
			handleStats(cli)
		case "help":
			printHelp()
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: '%s'. Type 'help'.\n", cmd)
		}
	}
}

func printRecords(records []common.Record) {
	count := 0
	for _, rec := range records {
		if count >= 20 {
			fmt.Printf("... and %d more\n", len(records)-20)
			break
		}
		fmt.Printf("  %s\n", rec)
		count++
	}
}

func handleList(cli *client.Client) {
	start := time.Now()
	records, err := cli.List()
	duration := time.Since(start)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%d students (%v):\n", len(records), duration)
	printRecords(records)
}

func handleGet(cli *client.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: get <id>")
		return
	}
	rec, err := cli.Get(parts[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("  %s\n", rec)
}

// add <id> | <name> | <major> | <gpa> [| <email>]
func handleAdd(cli *client.Client, line string) {
	fields := strings.Split(strings.TrimSpace(line[len("add"):]), "|")
	if len(fields) < 4 {
		fmt.Println("Usage: add <id> | <name> | <major> | <gpa> [| <email>]")
		return
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	gpa, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		fmt.Println("Error: gpa must be a number (e.g., 3.75)")
		return
	}
	rec := common.Record{ID: common.StudentID(fields[0]), Name: fields[1], Major: fields[2], Score: gpa}
	if len(fields) > 4 {
		rec.Email = fields[4]
	}

	if err := cli.Add(rec); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("OK")
}

func handleDel(cli *client.Client, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: del <id>")
		return
	}
	if err := cli.Delete(parts[1]); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Deleted")
}

func handleQuery(cli *client.Client, line string) {
	res, err := cli.Query(line)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%s\n", res.Statement)
	if res.FellBack {
		fmt.Println("  (binary search supports id or name only; ran linear search)")
	}
	fmt.Printf("  Complexity: %s | Avg time: %s ms over %d runs\n", res.ComplexityLabel, res.ElapsedTimeMs, res.Iterations)
	if strings.HasPrefix(strings.ToLower(line), "search") && !res.Found {
		fmt.Println("  No student found")
		return
	}
	printRecords(res.Data)
}

func handleStats(cli *client.Client) {
	stats, err := cli.Stats()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for k, v := range stats {
		fmt.Printf("  %s: %v\n", k, v)
	}
}

func printHelp() {
	fmt.Println(`
Commands:
  list                                         List all students
  get <id>                                     Show one student
  add <id> | <name> | <major> | <gpa> [| <email>]
  del <id>                                     Delete student
  sort by <key> [asc|desc] [using <algo>] [limit <n>]
                                               key: id, name, gpa, major
                                               algo: bubble, selection, insertion, merge, shell
  search <key> for <text> [using <algo>] [limit <n>]
                                               algo: linear, binary
  stats                                        Workload counters
  exit                                         Exit CLI
	`)
}
