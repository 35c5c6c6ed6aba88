package scoreboard

import (
	"context"
	"fmt"

	"github.com/okian/ripper/internal/domain/model"
)

// Directory divisions in lookup priority; a school listed in more than
// one keeps the first.
var directoryDivisions = []struct {
	name  string
	query string
}{
	{"DI", "?type=12&division=I"},
	{"DII", "?type=12&division=II"},
	{"DIII", "?type=12&division=III"},
}

// directoryEntry mirrors one school row of the member list endpoint.
type directoryEntry struct {
	NameOfficial   string `json:"nameOfficial"`
	ConferenceName string `json:"conferenceName"`
}

// LoadDirectory fetches the school directory and installs the team
// registry used for cross-division filtering.
func (c *Client) LoadDirectory(ctx context.Context) error {
	registry := make(model.Registry)
	for _, d := range directoryDivisions {
		var entries []directoryEntry
		ok, err := c.getJSON(ctx, c.directoryURL+d.query, &entries)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDirectory, d.name, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s: no member list", ErrDirectory, d.name)
		}
		for _, e := range entries {
			if e.NameOfficial == "" {
				continue
			}
			if _, exists := registry[e.NameOfficial]; !exists {
				registry[e.NameOfficial] = model.Team{
					Name:       e.NameOfficial,
					Conference: e.ConferenceName,
					Division:   d.name,
				}
			}
		}
	}
	c.registry = registry
	return nil
}

// Registry returns the installed team registry.
func (c *Client) Registry() model.Registry {
	return c.registry
}
