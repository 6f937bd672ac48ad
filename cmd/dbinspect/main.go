// Package main provides a read-only inspector for the badger catalog database.
// It counts records and index keys per collection and lists references that
// no longer resolve.
//
// Usage:
//
//	go run ./cmd/dbinspect --db ~/LocalLibrary/data/db
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"

	"github.com/agentraghav/local-library/internal/domain"
)

// Collections in key order.
var prefixes = []string{"author:", "genre:", "book:", "copy:"}

type collectionStats struct {
	Documents int
	IndexKeys int
}

type report struct {
	Collections    map[string]*collectionStats
	CopiesByStatus map[domain.CopyStatus]int
	// Dangling references as "<record id> -> <missing id>".
	DanglingAuthors []string
	DanglingGenres  []string
	DanglingBooks   []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:          "dbinspect",
		Short:        "Summarize the badger catalog database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dbPath = filepath.Join(home, "LocalLibrary", "data", "db")
			}

			db, err := badger.Open(badger.DefaultOptions(dbPath).
				WithReadOnly(true).
				WithLogger(nil))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			r, err := inspect(db)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), dbPath, r)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the badger directory (default: ~/LocalLibrary/data/db)")

	return cmd
}

func inspect(db *badger.DB) (*report, error) {
	r := &report{
		Collections:    make(map[string]*collectionStats, len(prefixes)),
		CopiesByStatus: make(map[domain.CopyStatus]int),
	}
	ids := make(map[string]bool)
	var books []domain.Book
	var copies []domain.BookCopy

	err := db.View(func(txn *badger.Txn) error {
		for _, prefix := range prefixes {
			stats := &collectionStats{}
			r.Collections[prefix] = stats

			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(prefix)
			it := txn.NewIterator(opts)

			for it.Rewind(); it.Valid(); it.Next() {
				item := it.Item()
				rest := strings.TrimPrefix(string(item.Key()), prefix)
				if strings.HasPrefix(rest, "idx:") || strings.HasPrefix(rest, "ref:") {
					stats.IndexKeys++
					continue
				}
				stats.Documents++
				ids[rest] = true

				var err error
				switch prefix {
				case "book:":
					err = item.Value(func(val []byte) error {
						var b domain.Book
						if err := json.Unmarshal(val, &b); err != nil {
							return err
						}
						books = append(books, b)
						return nil
					})
				case "copy:":
					err = item.Value(func(val []byte) error {
						var c domain.BookCopy
						if err := json.Unmarshal(val, &c); err != nil {
							return err
						}
						copies = append(copies, c)
						return nil
					})
				}
				if err != nil {
					it.Close()
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
			}
			it.Close()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, b := range books {
		if b.AuthorID != "" && !ids[b.AuthorID] {
			r.DanglingAuthors = append(r.DanglingAuthors, b.ID+" -> "+b.AuthorID)
		}
		for _, g := range b.GenreIDs {
			if !ids[g] {
				r.DanglingGenres = append(r.DanglingGenres, b.ID+" -> "+g)
			}
		}
	}
	for _, c := range copies {
		r.CopiesByStatus[c.Status]++
		if c.BookID != "" && !ids[c.BookID] {
			r.DanglingBooks = append(r.DanglingBooks, c.ID+" -> "+c.BookID)
		}
	}

	sort.Strings(r.DanglingAuthors)
	sort.Strings(r.DanglingGenres)
	sort.Strings(r.DanglingBooks)

	return r, nil
}

func printReport(w io.Writer, path string, r *report) {
	fmt.Fprintf(w, "=== Catalog Inspection: %s ===\n\n", path)

	for _, prefix := range prefixes {
		s := r.Collections[prefix]
		fmt.Fprintf(w, "%-8s %5d records %5d index keys\n", strings.TrimSuffix(prefix, ":"), s.Documents, s.IndexKeys)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copies by status:")
	for _, status := range domain.CopyStatuses {
		fmt.Fprintf(w, "  %-12s %d\n", status, r.CopiesByStatus[status])
	}

	printDangling(w, "Books with a missing author", r.DanglingAuthors)
	printDangling(w, "Books with a missing genre", r.DanglingGenres)
	printDangling(w, "Copies with a missing book", r.DanglingBooks)
}

func printDangling(w io.Writer, title string, refs []string) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(refs))
	for _, ref := range refs {
		fmt.Fprintf(w, "  %s\n", ref)
	}
}
