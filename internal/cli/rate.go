package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/ripper/internal/adapters/csvio"
	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
	"github.com/okian/ripper/internal/domain/rating/colley"
	"github.com/okian/ripper/internal/domain/rating/elo"
	"github.com/okian/ripper/internal/domain/rating/record"
	"github.com/okian/ripper/internal/domain/rating/rpi"
)

// runRate reads a match CSV, runs one calculator (or the combined
// statistics sheet), and writes the ranked table as CSV.
func runRate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rate", flag.ContinueOnError)
	var (
		in        = fs.String("in", "matches.csv", "Input match CSV file")
		algorithm = fs.String("algorithm", "rpi", "Algorithm: record, rpi, elo, colley")
		out       = fs.String("out", "", "Output CSV file (default stdout)")
		stats     = fs.Bool("stats", false, "Write the combined record and RPI statistics sheet")
		draws     = fs.Bool("draws", true, "Accept drawn matches")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("rate: open input: %w", err)
	}
	matches, err := csvio.ReadMatches(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("rate: read matches: %w", err)
	}
	matches = model.Finished(matches)
	if err := model.ValidateAll(matches, *draws); err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		of, err := os.OpenFile(*out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outFilePermission)
		if err != nil {
			return fmt.Errorf("rate: open output: %w", err)
		}
		defer of.Close()
		w = of
	}

	if *stats {
		return writeStatistics(ctx, w, matches, *draws)
	}

	calc, err := calculatorFor(*algorithm, *draws)
	if err != nil {
		return err
	}
	entries, err := calc.Calculate(ctx, matches)
	if err != nil {
		return fmt.Errorf("rate: %s: %w", calc.Name(), err)
	}
	if err := csvio.WriteTable(w, rating.Rank(entries)); err != nil {
		return fmt.Errorf("rate: write table: %w", err)
	}
	return nil
}

func writeStatistics(ctx context.Context, w io.Writer, matches []model.Match, draws bool) error {
	recordEntries, err := record.New(record.WithDrawsAllowed(draws)).Calculate(ctx, matches)
	if err != nil {
		return fmt.Errorf("rate: record: %w", err)
	}
	rpiEntries, err := rpi.New(rpi.WithDrawsAllowed(draws)).Calculate(ctx, matches)
	if err != nil {
		return fmt.Errorf("rate: rpi: %w", err)
	}
	if err := csvio.WriteStatistics(w, rating.Rank(recordEntries), rating.Rank(rpiEntries)); err != nil {
		return fmt.Errorf("rate: write statistics: %w", err)
	}
	return nil
}

func calculatorFor(name string, draws bool) (rating.Calculator, error) {
	switch name {
	case "record":
		return record.New(record.WithDrawsAllowed(draws)), nil
	case "rpi":
		return rpi.New(rpi.WithDrawsAllowed(draws)), nil
	case "elo":
		return elo.New(elo.WithDrawsAllowed(draws)), nil
	case "colley":
		return colley.New(colley.WithDrawsAllowed(draws)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
}
