package model

// Team carries optional metadata for a team identifier. Teams are
// implicitly defined by appearing in matches; a registry is only needed
// to attach conference/division information to output.
type Team struct {
	Name       string
	Conference string
	Division   string
}

// Registry maps exact team names to metadata. Lookups are by exact
// value; no fuzzy matching happens anywhere in the engine.
type Registry map[string]Team

// Conference returns the registered conference for name, or "".
func (r Registry) Conference(name string) string {
	return r[name].Conference
}

// Division returns the registered division for name, or "".
func (r Registry) Division(name string) string {
	return r[name].Division
}
