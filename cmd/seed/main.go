// Package main provides a tool to seed the catalog with sample authors,
// genres, books and copies.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/LocalLibrary/data
//	go run ./cmd/seed --storage-driver sqlite --force
//
// The server rebuilds the search index on its next start when the index is empty.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/di/providers"
	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/store"
)

var errNotEmpty = errors.New("catalog already has records (use --force to add the sample data anyway)")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataPath string
		driver   string
		force    bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Populate the catalog with sample records",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := logger.New(logger.Config{Writer: cmd.ErrOrStderr(), Level: level})

			if dataPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dataPath = filepath.Join(home, "LocalLibrary", "data")
			}
			if err := os.MkdirAll(dataPath, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			st, path, err := providers.OpenStore(driver, dataPath, log)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Seeding %s database at %s\n", driver, path)

			summary, err := seedCatalog(cmd.Context(), st, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d authors, %d genres, %d books, %d copies\n",
				summary.Authors, summary.Genres, summary.Books, summary.Copies)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data-path", os.Getenv("DATA_PATH"), "Directory holding the catalog database")
	cmd.Flags().StringVar(&driver, "storage-driver", config.DriverBadger, "Storage backend: badger or sqlite")
	cmd.Flags().BoolVar(&force, "force", false, "Seed even when the catalog is not empty")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log store operations")

	return cmd
}

type summary struct {
	Authors, Genres, Books, Copies int
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

type sampleBook struct {
	title, summary, isbn string
	author               int
	genres               []int
	copies               []domain.BookCopy
}

func sample() ([]*domain.Author, []*domain.Genre, []sampleBook) {
	authors := []*domain.Author{
		{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date("1973-06-06")},
		{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date("1932-11-08")},
		{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date("1920-01-02"), DateOfDeath: date("1992-04-06")},
		{FirstName: "Bob", FamilyName: "Billings"},
		{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: date("1971-12-16")},
	}

	genres := []*domain.Genre{
		{Name: "Fantasy"},
		{Name: "Science Fiction"},
		{Name: "French Poetry"},
	}

	available := func(imprint string) domain.BookCopy {
		return domain.BookCopy{Imprint: imprint, Status: domain.StatusAvailable}
	}

	books := []sampleBook{
		{
			title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
			summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
			isbn:    "9781473211896",
			author:  0,
			genres:  []int{0},
			copies:  []domain.BookCopy{available("London Gollancz, 2014.")},
		},
		{
			title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			isbn:    "9788401352836",
			author:  0,
			genres:  []int{0},
			copies:  []domain.BookCopy{{Imprint: "Gollancz, 2011.", Status: domain.StatusLoaned, DueBack: date("2030-01-15")}},
		},
		{
			title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
			summary: "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
			isbn:    "9780756411336",
			author:  0,
			genres:  []int{0},
			copies:  []domain.BookCopy{available("Gollancz, 2015.")},
		},
		{
			title:   "Apes and Angels",
			summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			isbn:    "9780765379528",
			author:  1,
			genres:  []int{1},
			copies: []domain.BookCopy{
				available("New York Tom Doherty Associates, 2016."),
				available("New York Tom Doherty Associates, 2016."),
			},
		},
		{
			title:   "Death Wave",
			summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
			isbn:    "9780765379504",
			author:  1,
			genres:  []int{1},
			copies: []domain.BookCopy{
				available("New York, NY Tom Doherty Associates, LLC, 2015."),
				{Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: domain.StatusMaintenance},
				{Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: domain.StatusLoaned, DueBack: date("2030-02-01")},
			},
		},
		{
			title:   "Test Book 1",
			summary: "Summary of test book 1",
			isbn:    "ISBN111111",
			author:  3,
			genres:  []int{0, 1},
			copies: []domain.BookCopy{
				{Imprint: "Imprint XXX2", Status: domain.StatusMaintenance},
				{Imprint: "Imprint XXX3", Status: domain.StatusReserved, DueBack: date("2030-03-01")},
			},
		},
		{
			title:   "Test Book 2",
			summary: "Summary of test book 2",
			isbn:    "ISBN222222",
			author:  3,
		},
	}

	return authors, genres, books
}

// seedCatalog writes the sample catalog. It refuses to touch a non-empty
// catalog unless force is set.
func seedCatalog(ctx context.Context, st store.Store, force bool) (summary, error) {
	var sum summary

	if !force {
		n, err := st.CountBooks(ctx)
		if err != nil {
			return sum, err
		}
		m, err := st.CountAuthors(ctx)
		if err != nil {
			return sum, err
		}
		if n+m > 0 {
			return sum, errNotEmpty
		}
	}

	authors, genres, books := sample()

	for _, a := range authors {
		if err := st.CreateAuthor(ctx, a); err != nil {
			return sum, fmt.Errorf("create author %s: %w", a.Name(), err)
		}
		sum.Authors++
	}

	for i, g := range genres {
		existing, err := st.GetGenreByName(ctx, g.Name)
		if err == nil {
			genres[i] = existing
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return sum, err
		}
		if err := st.CreateGenre(ctx, g); err != nil {
			return sum, fmt.Errorf("create genre %s: %w", g.Name, err)
		}
		sum.Genres++
	}

	for _, sb := range books {
		b := &domain.Book{
			Title:    sb.title,
			Summary:  sb.summary,
			ISBN:     sb.isbn,
			AuthorID: authors[sb.author].ID,
		}
		for _, gi := range sb.genres {
			b.GenreIDs = append(b.GenreIDs, genres[gi].ID)
		}
		if err := st.CreateBook(ctx, b); err != nil {
			return sum, fmt.Errorf("create book %q: %w", b.Title, err)
		}
		sum.Books++

		for _, c := range sb.copies {
			c.BookID = b.ID
			if err := st.CreateBookCopy(ctx, &c); err != nil {
				return sum, fmt.Errorf("create copy of %q: %w", b.Title, err)
			}
			sum.Copies++
		}
	}

	return sum, nil
}
