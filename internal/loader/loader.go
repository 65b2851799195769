// Package loader is the load pipeline: it reads the three worksheets,
// maps them into the canonical data bundle, resolves team role
// assignments, and validates cross references. The bundle it returns is
// read-only to every downstream consumer.
package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/mapper"
	"github.com/doublemix/msche-team-visit/internal/parse"
	"github.com/doublemix/msche-team-visit/internal/report"
	"github.com/doublemix/msche-team-visit/internal/workbook"
)

const (
	DefaultMeetingsSheet     = "Proposed Meetings-MSCHE Team"
	DefaultParticipantsSheet = "Participant List"
	DefaultZoomRoomsSheet    = "Zoom Rooms"
)

// RoleSourceType selects where team role assignments come from.
type RoleSourceType string

const (
	// RoleSourceMeetingsTable resolves roles from the name/role header
	// matrix embedded above the meetings sheet's header row.
	RoleSourceMeetingsTable RoleSourceType = "meetingsTable"
	// RoleSourceParticipantsTable reads roles from the roster's own
	// "Team Member" column.
	RoleSourceParticipantsTable RoleSourceType = "participantsTable"
)

// TeamRoleSource configures role assignment. NameRow and HeaderRow are
// zero-based grid rows of the meetings sheet and only apply to the
// meetings-table source.
type TeamRoleSource struct {
	Type      RoleSourceType
	NameRow   int
	HeaderRow int
}

// Options configures a load. The zero value reads the conventional sheet
// names with the header row at the top and roster-column role sourcing.
type Options struct {
	MeetingsSheet     string
	ParticipantsSheet string
	ZoomRoomsSheet    string

	// MeetingRange is the zero-based grid row holding the meetings sheet's
	// column headers. Rows above it belong to the role matrix.
	MeetingRange int

	TeamRoleSource TeamRoleSource
}

func (o Options) withDefaults() Options {
	if o.MeetingsSheet == "" {
		o.MeetingsSheet = DefaultMeetingsSheet
	}
	if o.ParticipantsSheet == "" {
		o.ParticipantsSheet = DefaultParticipantsSheet
	}
	if o.ZoomRoomsSheet == "" {
		o.ZoomRoomsSheet = DefaultZoomRoomsSheet
	}
	if o.TeamRoleSource.Type == "" {
		o.TeamRoleSource.Type = RoleSourceParticipantsTable
	}
	return o
}

// Load reads the workbook into the canonical data bundle. It is a single
// synchronous pass; any mapping or validation failure aborts the load with
// no partial bundle.
func Load(src workbook.Source, opts Options, rep *report.Collector) (*domain.Data, error) {
	opts = opts.withDefaults()

	meetingsSheet, err := src.Sheet(opts.MeetingsSheet)
	if err != nil {
		return nil, err
	}
	participantsSheet, err := src.Sheet(opts.ParticipantsSheet)
	if err != nil {
		return nil, err
	}
	zoomRoomsSheet, err := src.Sheet(opts.ZoomRoomsSheet)
	if err != nil {
		return nil, err
	}

	participants, err := loadParticipants(participantsSheet, opts.TeamRoleSource.Type)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", opts.ParticipantsSheet, err)
	}

	zoomRooms, zoomRoomsByName, err := loadZoomRooms(zoomRoomsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", opts.ZoomRoomsSheet, err)
	}

	meetings, err := loadMeetings(meetingsSheet, opts.MeetingRange)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", opts.MeetingsSheet, err)
	}

	for _, m := range meetings {
		if !m.ShouldShowZoomRoom() || m.ZoomRoomName == "" {
			continue
		}
		if _, ok := zoomRoomsByName[m.ZoomRoomName]; !ok {
			return nil, &domain.MissingZoomRoomError{Name: m.ZoomRoomName}
		}
	}

	if opts.TeamRoleSource.Type == RoleSourceMeetingsTable {
		if err := resolveRolesFromMatrix(meetingsSheet, opts, participants); err != nil {
			return nil, err
		}
	}

	rep.Info("loaded %d meetings, %d participants, %d zoom rooms",
		len(meetings), len(participants), len(zoomRooms))

	return &domain.Data{
		ProposedMeetings: meetings,
		Participants:     participants,
		ZoomRooms:        zoomRooms,
		ZoomRoomsByName:  zoomRoomsByName,
	}, nil
}

func participantSpec(roleSource RoleSourceType) mapper.Object {
	spec := mapper.Object{
		"prefix":    mapper.Column("PFX"),
		"firstName": mapper.Column("First Name"),
		"lastName":  mapper.Column("Last Name"),
		"title":     mapper.Column("Title /Involvement"),
		"staff":     mapper.Pipeline{mapper.Column("Staff"), parse.FlagTransform()},
		"faculty":   mapper.Pipeline{mapper.Column("Faculty"), parse.FlagTransform()},
		"email":     mapper.Column("Email"),
		"fullName": mapper.Computed(func(rec mapper.Record) (any, error) {
			joined := fmt.Sprintf("%s %s %s", rec["prefix"], rec["firstName"], rec["lastName"])
			return strings.Join(strings.Fields(joined), " "), nil
		}),
		"id": mapper.Computed(func(rec mapper.Record) (any, error) {
			fullName, err := mapper.As[string](rec, "fullName")
			if err != nil {
				return nil, err
			}
			return parse.Slug(fullName), nil
		}),
	}
	if roleSource == RoleSourceParticipantsTable {
		spec["teamMemberRoles"] = mapper.Pipeline{mapper.Column("Team Member"), parse.ListTransform()}
	}
	return spec
}

func loadParticipants(sheet *workbook.Sheet, roleSource RoleSourceType) ([]*domain.Participant, error) {
	table, err := sheet.Table(0)
	if err != nil {
		return nil, err
	}
	records, err := mapper.MapRows(table.Rows, participantSpec(roleSource))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	participants := make([]*domain.Participant, 0, len(records))
	for _, rec := range records {
		p, err := participantFromRecord(rec, roleSource)
		if err != nil {
			return nil, err
		}
		// A row with no name parts is a spacer, not a person.
		if p.FullName == "" {
			continue
		}
		if seen[p.ID] {
			return nil, &domain.DuplicateKeyError{Key: p.ID}
		}
		seen[p.ID] = true
		participants = append(participants, p)
	}
	return participants, nil
}

func participantFromRecord(rec mapper.Record, roleSource RoleSourceType) (*domain.Participant, error) {
	p := &domain.Participant{}
	var err error
	if p.Prefix, err = mapper.As[string](rec, "prefix"); err != nil {
		return nil, err
	}
	if p.FirstName, err = mapper.As[string](rec, "firstName"); err != nil {
		return nil, err
	}
	if p.LastName, err = mapper.As[string](rec, "lastName"); err != nil {
		return nil, err
	}
	if p.Title, err = mapper.As[string](rec, "title"); err != nil {
		return nil, err
	}
	if p.Staff, err = mapper.As[bool](rec, "staff"); err != nil {
		return nil, err
	}
	if p.Faculty, err = mapper.As[bool](rec, "faculty"); err != nil {
		return nil, err
	}
	if p.Email, err = mapper.As[string](rec, "email"); err != nil {
		return nil, err
	}
	if p.FullName, err = mapper.As[string](rec, "fullName"); err != nil {
		return nil, err
	}
	if p.ID, err = mapper.As[string](rec, "id"); err != nil {
		return nil, err
	}
	if roleSource == RoleSourceParticipantsTable {
		if p.TeamMemberRoles, err = mapper.As[[]string](rec, "teamMemberRoles"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func loadZoomRooms(sheet *workbook.Sheet) ([]domain.ZoomRoom, map[string]domain.ZoomRoom, error) {
	table, err := sheet.Table(0)
	if err != nil {
		return nil, nil, err
	}
	records, err := mapper.MapRows(table.Rows, mapper.Object{
		"zoomRoomName": mapper.Column("Zoom Room Name"),
		"link":         mapper.Column("Link"),
	})
	if err != nil {
		return nil, nil, err
	}

	rooms := make([]domain.ZoomRoom, 0, len(records))
	byName := make(map[string]domain.ZoomRoom, len(records))
	for _, rec := range records {
		var room domain.ZoomRoom
		if room.ZoomRoomName, err = mapper.As[string](rec, "zoomRoomName"); err != nil {
			return nil, nil, err
		}
		if room.Link, err = mapper.As[string](rec, "link"); err != nil {
			return nil, nil, err
		}
		if room.ZoomRoomName == "" {
			continue
		}
		rooms = append(rooms, room)
		byName[room.ZoomRoomName] = room
	}
	return rooms, byName, nil
}

var zoomRoomOption = parse.MapInput([]parse.Mapping[domain.ZoomRoomOption]{
	{Matcher: parse.Exact("Primary Room"), Output: domain.ZoomRoomPrimary},
	{Matcher: parse.Exact("Yes"), Output: domain.ZoomRoomOptional},
	{Matcher: parse.AnyOf("No", "N/A", ""), Output: domain.ZoomRoomNone},
})

func meetingSpec() mapper.Object {
	return mapper.Object{
		"date": mapper.Column("Date"),
		// One raw time label populates three sibling fields.
		"$time": mapper.FromRow(func(row mapper.Row) (any, error) {
			label, err := mapper.Field(row, "Time")
			if err != nil {
				return nil, err
			}
			rec := mapper.Record{
				"time":      label,
				"startTime": (*domain.TimeOfDay)(nil),
				"endTime":   (*domain.TimeOfDay)(nil),
			}
			if label == "" {
				return rec, nil
			}
			start, end, err := parse.TimeRange(label)
			if err != nil {
				return nil, err
			}
			rec["startTime"] = start
			rec["endTime"] = end
			return rec, nil
		}),
		"meetingLocation": mapper.Column("Meeting Location"),
		"zoomRoomOptionType": mapper.Pipeline{
			mapper.Column("Zoom Room Option"),
			parse.StringTransform(func(s string) (any, error) {
				return zoomRoomOption(s)
			}),
		},
		"zoomRoomName":         mapper.Match("^Zoom Link"),
		"interviewAssignments": mapper.Column("Interview Assignments"),
		"teamChair":            mapper.Pipeline{mapper.Column("Team Chair"), parse.FlagTransform()},
		"standard1TeamMember":  mapper.Pipeline{mapper.Column("SI"), parse.FlagTransform()},
		"standard2TeamMember":  mapper.Pipeline{mapper.Column("SII"), parse.FlagTransform()},
		"standard3TeamMember":  mapper.Pipeline{mapper.Column("SIII"), parse.FlagTransform()},
		"standard4TeamMember":  mapper.Pipeline{mapper.Column("SIV"), parse.FlagTransform()},
		"standard5TeamMember":  mapper.Pipeline{mapper.Column("SV"), parse.FlagTransform()},
		"standard6TeamMember":  mapper.Pipeline{mapper.Column("SVI"), parse.FlagTransform()},
		"standard7TeamMember": mapper.Pipeline{mapper.Column("SVII"), parse.FlagTransform()},
		"individuals": mapper.Pipeline{
			mapper.Column("Individuals"),
			parse.ListTransform(),
			parse.IndividualsTransform(),
		},
		"hideNames": mapper.Pipeline{mapper.Column("Hide Names"), parse.FlagTransform()},
	}
}

const teamRolesColumn = "Team Roles"

func loadMeetings(sheet *workbook.Sheet, headerRow int) ([]*domain.ProposedMeeting, error) {
	table, err := sheet.Table(headerRow)
	if err != nil {
		return nil, err
	}

	// Rows without a date are spacing or matrix leftovers, not meetings.
	// Keep the original data-row index so rich-text lookups still line up.
	var rows []mapper.Row
	var dataRows []int
	for i, row := range table.Rows {
		if strings.TrimSpace(row["Date"]) == "" {
			continue
		}
		rows = append(rows, row)
		dataRows = append(dataRows, i)
	}

	records, err := mapper.MapRows(rows, meetingSpec())
	if err != nil {
		// Row identity from the mapper counts only dated rows; translate it
		// back to the table's data-row position.
		var mapErr *domain.MappingError
		if errors.As(err, &mapErr) && mapErr.Row < len(dataRows) {
			mapErr.Row = dataRows[mapErr.Row]
		}
		return nil, err
	}

	meetings := make([]*domain.ProposedMeeting, 0, len(records))
	for i, rec := range records {
		m, err := meetingFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if table.HasColumn(teamRolesColumn) {
			m.RoleInfoRaw = table.RichText(dataRows[i], teamRolesColumn)
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}

func meetingFromRecord(rec mapper.Record) (*domain.ProposedMeeting, error) {
	m := &domain.ProposedMeeting{}
	var err error
	if m.Date, err = mapper.As[string](rec, "date"); err != nil {
		return nil, err
	}
	if m.Time, err = mapper.As[string](rec, "time"); err != nil {
		return nil, err
	}
	if m.StartTime, err = mapper.As[*domain.TimeOfDay](rec, "startTime"); err != nil {
		return nil, err
	}
	if m.EndTime, err = mapper.As[*domain.TimeOfDay](rec, "endTime"); err != nil {
		return nil, err
	}
	if m.MeetingLocation, err = mapper.As[string](rec, "meetingLocation"); err != nil {
		return nil, err
	}
	if m.ZoomRoomOptionType, err = mapper.As[domain.ZoomRoomOption](rec, "zoomRoomOptionType"); err != nil {
		return nil, err
	}
	if m.ZoomRoomName, err = mapper.As[string](rec, "zoomRoomName"); err != nil {
		return nil, err
	}
	if m.InterviewAssignments, err = mapper.As[string](rec, "interviewAssignments"); err != nil {
		return nil, err
	}
	flagFields := []struct {
		key string
		set func(*domain.ProposedMeeting, bool)
	}{
		{"teamChair", func(m *domain.ProposedMeeting, v bool) { m.TeamChair = v }},
		{"standard1TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard1TeamMember = v }},
		{"standard2TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard2TeamMember = v }},
		{"standard3TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard3TeamMember = v }},
		{"standard4TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard4TeamMember = v }},
		{"standard5TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard5TeamMember = v }},
		{"standard6TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard6TeamMember = v }},
		{"standard7TeamMember", func(m *domain.ProposedMeeting, v bool) { m.Standard7TeamMember = v }},
	}
	for _, f := range flagFields {
		v, err := mapper.As[bool](rec, f.key)
		if err != nil {
			return nil, err
		}
		f.set(m, v)
	}
	if m.Individuals, err = mapper.As[[]domain.Individual](rec, "individuals"); err != nil {
		return nil, err
	}
	if m.HideNames, err = mapper.As[bool](rec, "hideNames"); err != nil {
		return nil, err
	}
	return m, nil
}

// resolveRolesFromMatrix scans the name/role matrix embedded above the
// meetings sheet's header row and appends the matched role labels to the
// roster. This is the only post-construction mutation of the bundle and
// completes before Load returns.
func resolveRolesFromMatrix(sheet *workbook.Sheet, opts Options, participants []*domain.Participant) error {
	nameRow := opts.TeamRoleSource.NameRow
	headerRow := opts.TeamRoleSource.HeaderRow
	if nameRow >= len(sheet.Grid) {
		return nil
	}

	for col := range sheet.Grid[nameRow] {
		lastName := strings.TrimSpace(sheet.Cell(nameRow, col))
		if lastName == "" {
			continue
		}
		role := strings.TrimSpace(sheet.Cell(headerRow, col))

		var matched *domain.Participant
		for _, p := range participants {
			if p.LastName != lastName {
				continue
			}
			if matched != nil {
				return &domain.AmbiguousCandidateError{LastName: lastName}
			}
			matched = p
		}
		if matched == nil {
			return &domain.NoCandidateError{LastName: lastName}
		}
		matched.TeamMemberRoles = append(matched.TeamMemberRoles, role)
	}
	return nil
}
