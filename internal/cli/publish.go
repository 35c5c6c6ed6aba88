package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/okian/ripper/internal/adapters/gist"
	"github.com/okian/ripper/pkg/logger"
)

// tokenEnvVar names the environment variable holding the GitHub token.
// A .env file in the working directory is loaded first when present.
const tokenEnvVar = "RIPPER_GIST_TOKEN"

// runPublish uploads a file to a named gist, creating or updating it.
func runPublish(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	var (
		file        = fs.String("file", "", "File to upload")
		name        = fs.String("name", "", "Gist name used to find an existing gist")
		description = fs.String("description", "", "Gist description (default: the gist name)")
		token       = fs.String("token", "", "GitHub token (default: "+tokenEnvVar+" from env or .env)")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	if *file == "" || *name == "" {
		return fmt.Errorf("publish: -file and -name are required: %w", ErrUsage)
	}

	tok := *token
	if tok == "" {
		_ = godotenv.Load()
		tok = os.Getenv(tokenEnvVar)
	}
	client, err := gist.New(tok)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("publish: read file: %w", err)
	}
	desc := *description
	if desc == "" {
		desc = *name
	}

	url, err := client.Publish(ctx, *name, desc, map[string]string{
		filepath.Base(*file): string(content),
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	logger.Named("publish").Info(ctx, "gist published",
		logger.String("name", *name),
		logger.String("url", url))
	fmt.Fprintln(os.Stdout, url)
	return nil
}
