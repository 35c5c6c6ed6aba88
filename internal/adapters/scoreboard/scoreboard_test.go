package scoreboard_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/ripper/internal/adapters/scoreboard"
	"github.com/okian/ripper/internal/domain/model"
)

const dayPayload = `{
  "games": [
    {"game": {
      "gameID": "1",
      "gameState": "final",
      "startDate": "09/01/2024",
      "home": {"score": "2", "names": {"full": "North Carolina"}},
      "away": {"score": "1", "names": {"full": "Duke"}}
    }},
    {"game": {
      "gameID": "2",
      "gameState": "live",
      "startDate": "09/01/2024",
      "home": {"score": "0", "names": {"full": "Stanford"}},
      "away": {"score": "0", "names": {"full": "UCLA"}}
    }},
    {"game": {
      "gameID": "3",
      "gameState": "pre",
      "startDate": "09/01/2024",
      "home": {"score": "", "names": {"full": "Auburn"}},
      "away": {"score": "", "names": {"full": "Georgia"}}
    }}
  ]
}`

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newClient(serverURL string, opts ...scoreboard.Option) *scoreboard.Client {
	base := []scoreboard.Option{
		scoreboard.WithBaseURL(serverURL),
		scoreboard.WithRateLimit(1000),
		scoreboard.WithRetries(1),
		scoreboard.WithRetryWait(time.Millisecond),
	}
	return scoreboard.New(append(base, opts...)...)
}

func TestMatchesOn(t *testing.T) {
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		fmt.Fprint(w, dayPayload)
	}))
	defer srv.Close()

	c := newClient(srv.URL, scoreboard.WithGender("women"), scoreboard.WithDivision("d1"))
	matches, err := c.MatchesOn(context.Background(), day("2024-09-01"))
	require.NoError(t, err)

	assert.Equal(t, "/soccer-women/d1/2024/09/01/scoreboard.json", gotPath.Load())
	require.Len(t, matches, 3)
	assert.Equal(t, "North Carolina", matches[0].HomeTeam)
	assert.Equal(t, 2, matches[0].HomeScore)
	assert.Equal(t, model.StateFinal, matches[0].State)
	assert.Equal(t, model.StateLive, matches[1].State)
	assert.Equal(t, model.StatePre, matches[2].State)
	assert.Equal(t, day("2024-09-01"), matches[0].Date)
}

func TestMatchesOnMissingDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	matches, err := c.MatchesOn(context.Background(), day("2024-06-15"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchesOnServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(srv.URL, scoreboard.WithRetries(3))
	_, err := c.MatchesOn(context.Background(), day("2024-09-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, scoreboard.ErrBadStatus)
	assert.EqualValues(t, 3, calls.Load())
}

func TestMatchesOnCrossDivisionFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dayPayload)
	}))
	defer srv.Close()

	c := newClient(srv.URL, scoreboard.WithRegistry(model.Registry{
		"North Carolina": {Name: "North Carolina", Division: "DI"},
		"Duke":           {Name: "Duke", Division: "DI"},
		"Stanford":       {Name: "Stanford", Division: "DI"},
		// UCLA absent: treated as out-of-directory, so the
		// Stanford game crosses divisions.
		"Auburn":  {Name: "Auburn", Division: "DI"},
		"Georgia": {Name: "Georgia", Division: "DI"},
	}))
	matches, err := c.MatchesOn(context.Background(), day("2024-09-01"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.NotEqual(t, "Stanford", m.HomeTeam)
	}
}

func TestMatchesFrom(t *testing.T) {
	// Serve the same scoreboard for three days; games duplicated across
	// days within one walk collapse to a single copy.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/soccer-women/d1/2024/09/02/scoreboard.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, dayPayload)
	}))
	defer srv.Close()

	c := newClient(srv.URL, scoreboard.WithWorkers(2))
	matches, err := c.MatchesFrom(context.Background(), day("2024-09-01"), day("2024-09-03"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())

	// Day 1 and day 3 serve identical games with the same startDate,
	// so the walk yields exactly one copy of each.
	require.Len(t, matches, 3)
	assert.True(t, matches[0].HomeTeam < matches[1].HomeTeam)
}

func TestMatchesFromRepeatedWalks(t *testing.T) {
	// A periodic refresh walks the same season window through one
	// client over and over. Every walk must return the full match set;
	// dedupe state never leaks across walks.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dayPayload)
	}))
	defer srv.Close()

	c := newClient(srv.URL, scoreboard.WithWorkers(2), scoreboard.WithDedupeSize(64))
	first, err := c.MatchesFrom(context.Background(), day("2024-09-01"), day("2024-09-02"))
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := c.MatchesFrom(context.Background(), day("2024-09-01"), day("2024-09-02"))
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, first, second)
}

func TestMatchesFromEmptyWindow(t *testing.T) {
	c := newClient("http://127.0.0.1:0")
	matches, err := c.MatchesFrom(context.Background(), day("2024-09-02"), day("2024-09-01"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLoadDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("division") {
		case "I":
			fmt.Fprint(w, `[{"nameOfficial": "North Carolina", "conferenceName": "ACC"}, {"nameOfficial": "Duke", "conferenceName": "ACC"}]`)
		case "II":
			fmt.Fprint(w, `[{"nameOfficial": "Barry"}, {"nameOfficial": "Duke"}]`)
		default:
			fmt.Fprint(w, `[{"nameOfficial": "Amherst"}, {"nameOfficial": ""}]`)
		}
	}))
	defer srv.Close()

	c := newClient("http://unused", scoreboard.WithDirectoryURL(srv.URL))
	require.NoError(t, c.LoadDirectory(context.Background()))

	registry := c.Registry()
	assert.Equal(t, "DI", registry.Division("North Carolina"))
	assert.Equal(t, "ACC", registry.Conference("North Carolina"))
	// A school in two lists keeps the higher-priority division.
	assert.Equal(t, "DI", registry.Division("Duke"))
	assert.Equal(t, "DII", registry.Division("Barry"))
	assert.Equal(t, "DIII", registry.Division("Amherst"))
	assert.Len(t, registry, 4)
}
