// seed generates a SQL script with sample catalog data (branches, books and
// copies) for local development.
//
// Usage: go run ./cmd/seed [--books N] [--copies N] [--out FILE]
// By default it writes internal/infrastructure/postgres/migrations/002_seed_catalog.sql.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const defaultOut = "internal/infrastructure/postgres/migrations/002_seed_catalog.sql"

var branches = []string{"Central Library", "Riverside Branch", "North End Branch"}

var titles = []struct {
	title    string
	author   string
	category string
	year     int
	bookType string
}{
	{"The Go Programming Language", "Alan Donovan", "Programming", 2015, "TRADITIONAL"},
	{"Designing Data-Intensive Applications", "Martin Kleppmann", "Programming", 2017, "TRADITIONAL"},
	{"A Short History of Nearly Everything", "Bill Bryson", "Science", 2003, "TRADITIONAL"},
	{"The Pragmatic Programmer", "Andrew Hunt", "Programming", 1999, "MODERN"},
	{"Project Hail Mary", "Andy Weir", "Fiction", 2021, "MODERN"},
	{"Klara and the Sun", "Kazuo Ishiguro", "Fiction", 2021, "MODERN"},
}

func main() {
	var books, copies int
	var out string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a SQL script with sample branches, books and copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(books, copies, out)
		},
	}
	cmd.Flags().IntVar(&books, "books", len(titles), "number of books to seed (capped at the built-in list)")
	cmd.Flags().IntVar(&copies, "copies", 2, "copies per book per branch")
	cmd.Flags().StringVar(&out, "out", defaultOut, "output SQL file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(books, copies int, out string) error {
	if books <= 0 || books > len(titles) {
		books = len(titles)
	}
	if copies <= 0 {
		copies = 1
	}

	var b strings.Builder
	b.WriteString("-- Sample catalog data for local development. Generated by cmd/seed.\n\n")

	branchIDs := make([]string, len(branches))
	b.WriteString("INSERT INTO libraries (id, name, address) VALUES\n")
	for i, name := range branches {
		branchIDs[i] = uuid.NewString()
		sep := ","
		if i == len(branches)-1 {
			sep = ";"
		}
		fmt.Fprintf(&b, "    ('%s', '%s', '%d Main Street')%s\n", branchIDs[i], sqlEscape(name), 100+i, sep)
	}
	b.WriteString("\n")

	bookIDs := make([]string, books)
	b.WriteString("INSERT INTO books (id, title, author, category, published_year, book_type) VALUES\n")
	for i := 0; i < books; i++ {
		t := titles[i]
		bookIDs[i] = uuid.NewString()
		sep := ","
		if i == books-1 {
			sep = ";"
		}
		fmt.Fprintf(&b, "    ('%s', '%s', '%s', '%s', %d, '%s')%s\n",
			bookIDs[i], sqlEscape(t.title), sqlEscape(t.author), t.category, t.year, t.bookType, sep)
	}
	b.WriteString("\n")

	b.WriteString("INSERT INTO book_copies (id, book_id, library_id, copy_number, status) VALUES\n")
	total := books * len(branchIDs) * copies
	n := 0
	for i := 0; i < books; i++ {
		for _, branchID := range branchIDs {
			for c := 1; c <= copies; c++ {
				n++
				sep := ","
				if n == total {
					sep = ";"
				}
				fmt.Fprintf(&b, "    ('%s', '%s', '%s', %d, 'AVAILABLE')%s\n",
					uuid.NewString(), bookIDs[i], branchID, c, sep)
			}
		}
	}

	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("wrote %s: %d branches, %d books, %d copies\n", out, len(branchIDs), books, total)
	return nil
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
