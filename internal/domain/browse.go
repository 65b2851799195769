package domain

import "time"

// MeetingRecord is a persisted meeting row. StartTime and EndTime are only
// set when both the date label and the time label could be resolved to
// concrete instants at import time.
type MeetingRecord struct {
	ID         int        `json:"id"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	ZoomRoomID *int       `json:"zoom_room_id,omitempty"`
	RoleInfo   []TextRun  `json:"role_info,omitempty"`
}

type MeetingSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ParticipantRecord struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	IsTeamMember bool   `json:"is_team_member"`
}

type ZoomRoomRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// MeetingDetails is the full browse view of one meeting.
type MeetingDetails struct {
	Meeting            MeetingRecord       `json:"meeting"`
	TeamMembers        []ParticipantRecord `json:"team_members"`
	Representatives    []ParticipantRecord `json:"representatives"`
	ZoomRoom           *ZoomRoomRecord     `json:"zoom_room,omitempty"`
	TimeInterpretation string              `json:"time_interpretation,omitempty"`
}

// LiveMeeting is one entry of the live view: a meeting that is ongoing or
// still ahead, with a human-readable reading of where it stands.
type LiveMeeting struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	TimeInterpretation string `json:"time_interpretation,omitempty"`
}
