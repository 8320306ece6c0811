package domain

import "fmt"

// Role classifies who is searching. The search service decides what it means.
type Role string

const (
	RoleGamer     Role = "gamer"
	RoleDeveloper Role = "developer"
)

// Roles lists every role in selector order
var Roles = []Role{RoleGamer, RoleDeveloper}

// ParseRole converts an external string (config file, flag) into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGamer, RoleDeveloper:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q: must be %q or %q", s, RoleGamer, RoleDeveloper)
	}
}

// Next returns the other role
func (r Role) Next() Role {
	if r == RoleDeveloper {
		return RoleGamer
	}
	return RoleDeveloper
}

// Label is the display name used by the role selector
func (r Role) Label() string {
	switch r {
	case RoleDeveloper:
		return "Developer"
	default:
		return "Gamer"
	}
}

// SearchRequest is the snapshot sent for one submission
type SearchRequest struct {
	Query string `json:"query"`
	Role  Role   `json:"role"`
}

// SearchResult is a single entry returned by the search service
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Summary string `json:"summary"`
}

// ResultSet keeps the order the service returned
type ResultSet []SearchResult
