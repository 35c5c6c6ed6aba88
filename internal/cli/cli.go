// Package cli implements the ripperctl subcommands for fetching match
// data, computing rating tables offline, and publishing results.
package cli

import (
	"context"
	"os"

	"github.com/okian/ripper/pkg/logger"
)

const dateLayout = "2006-01-02"

// Run dispatches a subcommand. args excludes the program name.
func Run(ctx context.Context, args []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		ShowHelp()
		return ErrUsage
	}
	switch args[0] {
	case "fetch":
		return runFetch(ctx, args[1:])
	case "rate":
		return runRate(ctx, args[1:])
	case "publish":
		return runPublish(ctx, args[1:])
	case "help", "-h", "--help":
		ShowHelp()
		return nil
	default:
		ShowHelp()
		return ErrUsage
	}
}

// ShowHelp prints usage information for the control tool.
func ShowHelp() {
	os.Stdout.WriteString(`Ripper Ratings Control Tool
===========================

Fetch match results, compute rating tables, and publish them as gists.

Usage:
  ripperctl <command> [options]

Commands:
  fetch     Walk the scoreboard feed and write matches to CSV
  rate      Compute a rating table from a match CSV
  publish   Upload a file to a named GitHub gist
  help      Show this help message

Examples:
  # Fetch a women's D1 season to matches.csv
  ripperctl fetch -gender women -division d1 -from 2024-08-14 -out matches.csv

  # Compute the RPI table
  ripperctl rate -in matches.csv -algorithm rpi -out rpi.csv

  # Compute the combined statistics sheet
  ripperctl rate -in matches.csv -stats -out statistics.csv

  # Publish the table (token from -token or RIPPER_GIST_TOKEN)
  ripperctl publish -file rpi.csv -name ncaa-soccer-rpi
`)
}
