// Package repository defines the rating table store interface and
// errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/ripper/internal/domain/rating"
)

// Entry is one ranked table row.
type Entry = rating.Entry

// Table is one algorithm's ranked output for a computation run.
// Tables are immutable snapshots: a new run replaces the previous
// table wholesale.
type Table struct {
	Algorithm  string
	RunID      string
	ComputedAt time.Time
	Entries    []Entry
}

// Store provides read/write access to the latest table per algorithm.
type Store interface {
	// PutTable replaces the stored table for t.Algorithm.
	PutTable(ctx context.Context, t Table) error

	// Table returns up to limit ranked entries for an algorithm.
	// limit < 1 means all. Returns ErrUnknownAlgorithm when no table
	// has been stored under that name.
	Table(ctx context.Context, algorithm string, limit int) ([]Entry, error)

	// Rank returns one team's entry within an algorithm's table.
	// Returns ErrTeamNotFound if the team is not in the table.
	Rank(ctx context.Context, algorithm, team string) (Entry, error)

	// Algorithms lists the algorithms with stored tables, sorted.
	Algorithms(ctx context.Context) []string

	// Count returns the number of teams in an algorithm's table, or 0
	// when the algorithm is unknown.
	Count(ctx context.Context, algorithm string) int
}
