package domain

import "fmt"

// ZoomRoomOption is the tri-state zoom participation flag of a meeting.
type ZoomRoomOption string

const (
	ZoomRoomNone     ZoomRoomOption = "none"
	ZoomRoomOptional ZoomRoomOption = "optional"
	ZoomRoomPrimary  ZoomRoomOption = "primary"
)

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour24 int `json:"hour24"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour24*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour24, t.Minute)
}

// Individual is a named attendee referenced from a meeting row: the display
// name as written in the cell plus its slug for roster lookup.
type Individual struct {
	DisplayName string `json:"display_name"`
	ID          string `json:"id"`
}

// ProposedMeeting is one dated row of the meetings sheet. Immutable after
// construction.
type ProposedMeeting struct {
	// Date is the raw date label. The load pipeline treats it as an opaque
	// grouping key; only the database importer attempts to parse it.
	Date string `json:"date"`

	// Time is the raw time label; StartTime/EndTime are derived from it and
	// are each optional. When both are set, StartTime <= EndTime in 24-hour
	// terms (ranges never cross midnight).
	Time      string     `json:"time"`
	StartTime *TimeOfDay `json:"start_time"`
	EndTime   *TimeOfDay `json:"end_time"`

	MeetingLocation      string         `json:"meeting_location"`
	ZoomRoomOptionType   ZoomRoomOption `json:"zoom_room_option_type"`
	ZoomRoomName         string         `json:"zoom_room_name"`
	InterviewAssignments string         `json:"interview_assignments"`

	TeamChair           bool `json:"team_chair"`
	Standard1TeamMember bool `json:"standard1_team_member"`
	Standard2TeamMember bool `json:"standard2_team_member"`
	Standard3TeamMember bool `json:"standard3_team_member"`
	Standard4TeamMember bool `json:"standard4_team_member"`
	Standard5TeamMember bool `json:"standard5_team_member"`
	Standard6TeamMember bool `json:"standard6_team_member"`
	Standard7TeamMember bool `json:"standard7_team_member"`

	Individuals []Individual `json:"individuals"`
	HideNames   bool         `json:"hide_names"`

	// RoleInfoRaw is the optional role-annotation cell in simple-markup
	// form. It is parsed on demand by renderers, which fall back to the raw
	// text when the markup is malformed.
	RoleInfoRaw string `json:"role_info_raw"`
}

func (m *ProposedMeeting) ShouldShowZoomRoom() bool {
	return m.ZoomRoomOptionType == ZoomRoomOptional || m.ZoomRoomOptionType == ZoomRoomPrimary
}

func (m *ProposedMeeting) IsZoomRoomPrimary() bool {
	return m.ZoomRoomOptionType == ZoomRoomPrimary
}

// IncludesParticipant reports whether the participant's team roles select
// them for this meeting via the meeting's role flags.
func (m *ProposedMeeting) IncludesParticipant(p *Participant) bool {
	for _, d := range TeamMemberDefinitions {
		if d.Get(m) && p.HasRole(d.Role) {
			return true
		}
	}
	return false
}
