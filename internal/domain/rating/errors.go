package rating

import "errors"

// Sentinel kinds for computation errors. These are structural
// impossibilities, not transient failures: the same input always
// produces the same error.
var (
	// ErrIsolatedTeam marks a team whose opponent set leaves OWP/OOWP
	// undefined. Wrapped errors name the team.
	ErrIsolatedTeam = errors.New("isolated team")

	// ErrZeroGames marks a team explicitly requested but holding no
	// completed games in the input.
	ErrZeroGames = errors.New("team has no completed games")

	// ErrSingularSystem marks a rating linear system with no unique
	// solution.
	ErrSingularSystem = errors.New("singular rating system")
)
