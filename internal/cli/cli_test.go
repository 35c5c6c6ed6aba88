package cli_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/ripper/internal/cli"
)

const matchCSV = `home_team,away_team,home_score,away_score,date,neutral_site
A,B,2,0,2024-09-01,false
B,C,3,1,2024-09-02,false
A,C,1,0,2024-09-03,false
C,D,2,1,2024-09-04,true
`

func writeMatches(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(matchCSV), 0o600))
	return path
}

func TestRunDispatch(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, cli.Run(ctx, nil), cli.ErrUsage)
	assert.ErrorIs(t, cli.Run(ctx, []string{"bogus"}), cli.ErrUsage)
	assert.NoError(t, cli.Run(ctx, []string{"help"}))
}

func TestRateWritesTable(t *testing.T) {
	in := writeMatches(t)
	out := filepath.Join(t.TempDir(), "rpi.csv")

	err := cli.Run(context.Background(), []string{"rate", "-in", in, "-algorithm", "rpi", "-out", out})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "rank,team,value,oowp,owp,wp", lines[0])
	// The undefeated team ranks first.
	assert.True(t, strings.HasPrefix(lines[1], "1,A,"))
}

func TestRateWritesStatistics(t *testing.T) {
	in := writeMatches(t)
	out := filepath.Join(t.TempDir(), "statistics.csv")

	err := cli.Run(context.Background(), []string{"rate", "-in", in, "-stats", "-out", out})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "team,wins,losses,draws,wp,owp,oowp,rpi", lines[0])
}

func TestRateRejectsUnknownAlgorithm(t *testing.T) {
	in := writeMatches(t)

	err := cli.Run(context.Background(), []string{"rate", "-in", in, "-algorithm", "glicko"})
	assert.ErrorIs(t, err, cli.ErrUnknownAlgorithm)
}

func TestRateMissingInput(t *testing.T) {
	err := cli.Run(context.Background(), []string{"rate", "-in", "/nonexistent/matches.csv"})
	assert.Error(t, err)
}

func TestPublishRequiresArgsAndToken(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, cli.Run(ctx, []string{"publish"}), cli.ErrUsage)

	// With args but no token anywhere, the gist client refuses.
	t.Setenv("RIPPER_GIST_TOKEN", "")
	in := writeMatches(t)
	err := cli.Run(ctx, []string{"publish", "-file", in, "-name", "x"})
	assert.Error(t, err)
}

func TestFetchRequiresFromDate(t *testing.T) {
	err := cli.Run(context.Background(), []string{"fetch", "-from", "not-a-date"})
	assert.Error(t, err)
}

func TestFetchWritesOnlyFinalMatches(t *testing.T) {
	// A mid-day fetch sees finished, live, and not-yet-started games.
	// Only finals may reach the CSV; a live 0-0 written out would read
	// back as a final draw.
	payload := `{
	  "games": [
	    {"game": {"gameID": "1", "gameState": "final", "startDate": "09/01/2024",
	      "home": {"score": "2", "names": {"full": "A"}},
	      "away": {"score": "0", "names": {"full": "B"}}}},
	    {"game": {"gameID": "2", "gameState": "live", "startDate": "09/01/2024",
	      "home": {"score": "0", "names": {"full": "C"}},
	      "away": {"score": "0", "names": {"full": "D"}}}},
	    {"game": {"gameID": "3", "gameState": "pre", "startDate": "09/01/2024",
	      "home": {"score": "", "names": {"full": "E"}},
	      "away": {"score": "", "names": {"full": "F"}}}}
	  ]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("division") != "" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "matches.csv")
	err := cli.Run(context.Background(), []string{"fetch",
		"-base-url", srv.URL,
		"-directory-url", srv.URL,
		"-from", "2024-09-01", "-to", "2024-09-01",
		"-rate", "1000",
		"-out", out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "home_team,away_team,home_score,away_score,date,neutral_site", lines[0])
	assert.Equal(t, "A,B,2,0,2024-09-01,false", lines[1])
	assert.NotContains(t, string(data), "C,D")
}
