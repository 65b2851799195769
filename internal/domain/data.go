package domain

// TextRun is a contiguous span of annotation text with one accumulated
// formatting style.
type TextRun struct {
	Bold      bool   `json:"bold,omitempty"`
	Italics   bool   `json:"italics,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Text      string `json:"text"`
}

// ZoomRoom is one row of the zoom room directory. A blank link is a valid,
// warned-about state.
type ZoomRoom struct {
	ZoomRoomName string `json:"zoom_room_name"`
	Link         string `json:"link"`
}

// Data is the canonical bundle produced by the load pipeline. It is owned
// by the loader and must be treated as immutable once returned: role
// resolution, the only permitted mutation, completes before the bundle is
// exposed to any reader.
type Data struct {
	ProposedMeetings []*ProposedMeeting
	Participants     []*Participant
	ZoomRooms        []ZoomRoom
	ZoomRoomsByName  map[string]ZoomRoom
}

// ParticipantByID returns the roster entry with the given slug.
func (d *Data) ParticipantByID(id string) (*Participant, bool) {
	for _, p := range d.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// TeamMembers returns the roster entries holding at least one team role,
// in roster order.
func (d *Data) TeamMembers() []*Participant {
	var members []*Participant
	for _, p := range d.Participants {
		if p.IsTeamMember() {
			members = append(members, p)
		}
	}
	return members
}
