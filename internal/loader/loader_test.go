package loader

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/report"
	"github.com/doublemix/msche-team-visit/internal/workbook"
)

func testCollector() *report.Collector {
	return report.NewCollector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func meetingHeaders() []string {
	return []string{"Date", "Time", "Interview Assignments", "Meeting Location",
		"Zoom Room Option", "Zoom Link", "Team Chair", "SI", "SII", "SIII",
		"SIV", "SV", "SVI", "SVII", "Individuals", "Hide Names", "Team Roles"}
}

func headerCol(t *testing.T, header string) int {
	t.Helper()
	for i, h := range meetingHeaders() {
		if h == header {
			return i
		}
	}
	t.Fatalf("no meetings header %q", header)
	return -1
}

// meetingCells builds one meetings-sheet grid row with the named columns
// set and every other cell blank.
func meetingCells(values map[string]string) []string {
	headers := meetingHeaders()
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = values[h]
	}
	return row
}

func testOptions() Options {
	return Options{
		MeetingRange: 2,
		TeamRoleSource: TeamRoleSource{
			Type:      RoleSourceMeetingsTable,
			NameRow:   0,
			HeaderRow: 2,
		},
	}
}

// testWorkbook is a small but complete workbook: a two-meeting schedule
// with a role matrix naming Smith under the SI column, a two-person
// roster, and a two-room directory.
func testWorkbook(t *testing.T) workbook.Static {
	meetings := workbook.NewSheet(DefaultMeetingsSheet, [][]string{
		meetingCells(map[string]string{"SI": "Smith"}),
		{},
		meetingHeaders(),
		meetingCells(map[string]string{
			"Date":                  "March 23, 2025",
			"Time":                  "9:00-10:00 a.m.",
			"Interview Assignments": "Opening Session",
			"Meeting Location":      "Library",
			"Zoom Room Option":      "Yes",
			"Zoom Link":             "Room A",
			"SI":                    "x",
			"Individuals":           "Bob Jones",
		}),
		meetingCells(map[string]string{"Interview Assignments": "spacing row, no date"}),
		meetingCells(map[string]string{
			"Date":                  "March 24, 2025",
			"Time":                  "Up to 2:30 p.m.",
			"Interview Assignments": "Exit Interview",
			"Zoom Room Option":      "No",
			"Team Chair":            "x",
			"Hide Names":            "x",
		}),
	})

	participants := workbook.NewSheet(DefaultParticipantsSheet, [][]string{
		{"PFX", "First Name", "Last Name", "Title /Involvement", "Staff", "Faculty", "Email", "Team Member"},
		{"Dr.", "Jane", "Smith", "Provost Emerita", "", "x", "jane@example.edu", ""},
		{"", "Bob", "Jones", "Registrar", "x", "", "bob@example.edu", ""},
	})

	zoomRooms := workbook.NewSheet(DefaultZoomRoomsSheet, [][]string{
		{"Zoom Room Name", "Link"},
		{"Room A", "https://zoom.example/a"},
		{"Room B", ""},
	})

	return workbook.Static{
		DefaultMeetingsSheet:     meetings,
		DefaultParticipantsSheet: participants,
		DefaultZoomRoomsSheet:    zoomRooms,
	}
}

func TestLoad(t *testing.T) {
	data, err := Load(testWorkbook(t), testOptions(), testCollector())
	require.NoError(t, err)

	t.Run("undated rows are dropped", func(t *testing.T) {
		require.Len(t, data.ProposedMeetings, 2)
	})

	t.Run("first meeting", func(t *testing.T) {
		m := data.ProposedMeetings[0]
		assert.Equal(t, "March 23, 2025", m.Date)
		assert.Equal(t, "Opening Session", m.InterviewAssignments)
		assert.Equal(t, "Library", m.MeetingLocation)
		assert.Equal(t, "9:00-10:00 a.m.", m.Time)
		require.NotNil(t, m.StartTime)
		require.NotNil(t, m.EndTime)
		assert.Equal(t, domain.TimeOfDay{Hour24: 9}, *m.StartTime)
		assert.Equal(t, domain.TimeOfDay{Hour24: 10}, *m.EndTime)
		assert.Equal(t, domain.ZoomRoomOptional, m.ZoomRoomOptionType)
		assert.True(t, m.ShouldShowZoomRoom())
		assert.False(t, m.IsZoomRoomPrimary())
		assert.Equal(t, "Room A", m.ZoomRoomName)
		assert.True(t, m.Standard1TeamMember)
		assert.False(t, m.TeamChair)
		assert.Equal(t, []domain.Individual{{DisplayName: "Bob Jones", ID: "bob-jones"}}, m.Individuals)
		assert.False(t, m.HideNames)
	})

	t.Run("second meeting", func(t *testing.T) {
		m := data.ProposedMeetings[1]
		assert.Nil(t, m.StartTime)
		require.NotNil(t, m.EndTime)
		assert.Equal(t, domain.TimeOfDay{Hour24: 14, Minute: 30}, *m.EndTime)
		assert.Equal(t, domain.ZoomRoomNone, m.ZoomRoomOptionType)
		assert.False(t, m.ShouldShowZoomRoom())
		assert.True(t, m.HideNames)
		assert.Empty(t, m.Individuals)
	})

	t.Run("roster", func(t *testing.T) {
		require.Len(t, data.Participants, 2)
		jane := data.Participants[0]
		assert.Equal(t, "Dr. Jane Smith", jane.FullName)
		assert.Equal(t, "dr-jane-smith", jane.ID)
		assert.True(t, jane.Faculty)
		assert.False(t, jane.Staff)

		byID, ok := data.ParticipantByID("bob-jones")
		require.True(t, ok)
		assert.Equal(t, "Registrar", byID.Title)
	})

	t.Run("matrix roles resolve by last name", func(t *testing.T) {
		jane := data.Participants[0]
		assert.Equal(t, []string{"SI"}, jane.TeamMemberRoles)
		assert.True(t, jane.IsTeamMember())

		bob := data.Participants[1]
		assert.False(t, bob.IsTeamMember())

		assert.Equal(t, []*domain.Participant{jane}, data.TeamMembers())
	})

	t.Run("zoom room directory", func(t *testing.T) {
		require.Len(t, data.ZoomRooms, 2)
		room, ok := data.ZoomRoomsByName["Room A"]
		require.True(t, ok)
		assert.Equal(t, "https://zoom.example/a", room.Link)
	})

	t.Run("role flags select team members", func(t *testing.T) {
		jane := data.Participants[0]
		assert.True(t, data.ProposedMeetings[0].IncludesParticipant(jane))
		assert.False(t, data.ProposedMeetings[1].IncludesParticipant(jane))
	})
}

func TestLoadRoleAnnotations(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultMeetingsSheet)
	require.NoError(t, err)
	sheet.SetRichText(3, headerCol(t, "Team Roles"), "<r><rPr><b/></rPr><t>SI: Budget</t></r>")
	sheet.Grid[5][headerCol(t, "Team Roles")] = "SI: Governance"

	data, err := Load(src, testOptions(), testCollector())
	require.NoError(t, err)

	assert.Equal(t, "<r><rPr><b/></rPr><t>SI: Budget</t></r>", data.ProposedMeetings[0].RoleInfoRaw)
	assert.Equal(t, "<t>SI: Governance</t>", data.ProposedMeetings[1].RoleInfoRaw)
}

func TestLoadRolesFromParticipantsTable(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultParticipantsSheet)
	require.NoError(t, err)
	sheet.Grid[1][7] = "SI, SII"

	opts := testOptions()
	opts.TeamRoleSource = TeamRoleSource{Type: RoleSourceParticipantsTable}

	data, err := Load(src, opts, testCollector())
	require.NoError(t, err)
	assert.Equal(t, []string{"SI", "SII"}, data.Participants[0].TeamMemberRoles)
}

func TestLoadRoleMatrixErrors(t *testing.T) {
	t.Run("no roster match", func(t *testing.T) {
		src := testWorkbook(t)
		sheet, err := src.Sheet(DefaultMeetingsSheet)
		require.NoError(t, err)
		sheet.Grid[0][headerCol(t, "SI")] = "Nobody"

		_, err = Load(src, testOptions(), testCollector())
		var noCandidate *domain.NoCandidateError
		require.ErrorAs(t, err, &noCandidate)
		assert.Equal(t, "Nobody", noCandidate.LastName)
	})

	t.Run("ambiguous roster match", func(t *testing.T) {
		src := testWorkbook(t)
		sheet, err := src.Sheet(DefaultParticipantsSheet)
		require.NoError(t, err)
		sheet.Grid = append(sheet.Grid, []string{"", "John", "Smith", "Dean", "x", "", "john@example.edu", ""})

		_, err = Load(src, testOptions(), testCollector())
		var ambiguous *domain.AmbiguousCandidateError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "Smith", ambiguous.LastName)
	})
}

func TestLoadSkipsBlankRosterRows(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultParticipantsSheet)
	require.NoError(t, err)
	// Spacer rows between roster sections carry no name at all.
	blank := make([]string, 8)
	sheet.Grid = append(sheet.Grid[:2], append([][]string{blank, blank}, sheet.Grid[2:]...)...)

	data, err := Load(src, testOptions(), testCollector())
	require.NoError(t, err)
	require.Len(t, data.Participants, 2)
	assert.Equal(t, "dr-jane-smith", data.Participants[0].ID)
	assert.Equal(t, "bob-jones", data.Participants[1].ID)
}

func TestLoadDuplicateIDs(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultParticipantsSheet)
	require.NoError(t, err)
	// Differs only in case and spacing, so the slug collides.
	sheet.Grid = append(sheet.Grid, []string{"", "BOB", "  jones ", "Dean", "", "", "bob2@example.edu", ""})

	_, err = Load(src, testOptions(), testCollector())
	var duplicate *domain.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "bob-jones", duplicate.Key)
}

func TestLoadMissingZoomRoom(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultMeetingsSheet)
	require.NoError(t, err)
	sheet.Grid[3][headerCol(t, "Zoom Link")] = "Room Z"

	_, err = Load(src, testOptions(), testCollector())
	var missing *domain.MissingZoomRoomError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Room Z", missing.Name)
	assert.True(t, domain.IsUserError(err))
}

func TestLoadMissingSheet(t *testing.T) {
	src := testWorkbook(t)
	delete(src, DefaultZoomRoomsSheet)

	_, err := Load(src, testOptions(), testCollector())
	var notFound *domain.SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, DefaultZoomRoomsSheet, notFound.Name)
}

func TestLoadUnmappedZoomOption(t *testing.T) {
	src := testWorkbook(t)
	sheet, err := src.Sheet(DefaultMeetingsSheet)
	require.NoError(t, err)
	// Grid row 5 is the table's third data row; the undated spacer above it
	// must not shift the reported row.
	sheet.Grid[5][headerCol(t, "Zoom Room Option")] = "Maybe"

	_, err = Load(src, testOptions(), testCollector())
	var mapErr *domain.MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, 2, mapErr.Row)
	var unmapped *domain.UnmappedValueError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "Maybe", unmapped.Value)
}

// Minimal bundle: one dated meeting, one roster entry, no zoom rooms, no
// zoom participation. No room lookup should be required.
func TestLoadMinimalWorkbook(t *testing.T) {
	src := workbook.Static{
		DefaultMeetingsSheet: workbook.NewSheet(DefaultMeetingsSheet, [][]string{
			{},
			{},
			meetingHeaders(),
			meetingCells(map[string]string{
				"Date":                  "March 23, 2025",
				"Interview Assignments": "Kickoff",
				"Zoom Room Option":      "N/A",
			}),
		}),
		DefaultParticipantsSheet: workbook.NewSheet(DefaultParticipantsSheet, [][]string{
			{"PFX", "First Name", "Last Name", "Title /Involvement", "Staff", "Faculty", "Email", "Team Member"},
			{"", "Ann", "Lee", "President", "", "", "ann@example.edu", ""},
		}),
		DefaultZoomRoomsSheet: workbook.NewSheet(DefaultZoomRoomsSheet, [][]string{
			{"Zoom Room Name", "Link"},
		}),
	}

	data, err := Load(src, testOptions(), testCollector())
	require.NoError(t, err)
	require.Len(t, data.ProposedMeetings, 1)

	m := data.ProposedMeetings[0]
	assert.False(t, m.ShouldShowZoomRoom())
	assert.Nil(t, m.StartTime)
	assert.Nil(t, m.EndTime)
	assert.Empty(t, data.ZoomRooms)
}
