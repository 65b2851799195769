package domain

// TeamMemberDefinition ties one meeting role flag to the role label used on
// participants and in the meetings sheet's column headers.
type TeamMemberDefinition struct {
	Role string
	Get  func(m *ProposedMeeting) bool
	Set  func(m *ProposedMeeting, v bool)
}

// TeamMemberDefinitions is the single source of truth for the eight team
// role categories. Participant role strings and meeting role flags must
// only ever be related through this list.
var TeamMemberDefinitions = []TeamMemberDefinition{
	{
		Role: "Team Chair",
		Get:  func(m *ProposedMeeting) bool { return m.TeamChair },
		Set:  func(m *ProposedMeeting, v bool) { m.TeamChair = v },
	},
	{
		Role: "SI",
		Get:  func(m *ProposedMeeting) bool { return m.Standard1TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard1TeamMember = v },
	},
	{
		Role: "SII",
		Get:  func(m *ProposedMeeting) bool { return m.Standard2TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard2TeamMember = v },
	},
	{
		Role: "SIII",
		Get:  func(m *ProposedMeeting) bool { return m.Standard3TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard3TeamMember = v },
	},
	{
		Role: "SIV",
		Get:  func(m *ProposedMeeting) bool { return m.Standard4TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard4TeamMember = v },
	},
	{
		Role: "SV",
		Get:  func(m *ProposedMeeting) bool { return m.Standard5TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard5TeamMember = v },
	},
	{
		Role: "SVI",
		Get:  func(m *ProposedMeeting) bool { return m.Standard6TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard6TeamMember = v },
	},
	{
		Role: "SVII",
		Get:  func(m *ProposedMeeting) bool { return m.Standard7TeamMember },
		Set:  func(m *ProposedMeeting, v bool) { m.Standard7TeamMember = v },
	},
}

// TeamMemberDefinitionByRole returns the definition for a role label.
func TeamMemberDefinitionByRole(role string) (TeamMemberDefinition, bool) {
	for _, d := range TeamMemberDefinitions {
		if d.Role == role {
			return d, true
		}
	}
	return TeamMemberDefinition{}, false
}
