package domain

// Participant is one row of the participant roster. FullName and ID are
// derived at load time; after role resolution completes the record is
// read-only.
type Participant struct {
	Prefix    string `json:"prefix"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Staff     bool   `json:"staff"`
	Faculty   bool   `json:"faculty"`
	Email     string `json:"email"`

	// FullName is the trimmed "Prefix First Last" concatenation and ID is
	// its slug. IDs must be unique across the roster.
	FullName string `json:"full_name"`
	ID       string `json:"id"`

	// TeamMemberRoles holds the review-team role labels assigned to this
	// participant, either from the roster's own column or appended by the
	// meetings-matrix resolver.
	TeamMemberRoles []string `json:"team_member_roles"`
}

// IsTeamMember reports whether the participant is on the visiting review
// team (holds at least one team role).
func (p *Participant) IsTeamMember() bool {
	return len(p.TeamMemberRoles) > 0
}

func (p *Participant) HasRole(role string) bool {
	for _, r := range p.TeamMemberRoles {
		if r == role {
			return true
		}
	}
	return false
}
