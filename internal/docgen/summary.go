package docgen

import (
	"github.com/fumiama/go-docx"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/report"
)

// SummaryItinerary renders the whole visit as one grid per day. Meetings
// sharing a time label show the time once, on the first row of the run.
// With includeRoles set, each meeting carries its role annotation under
// the meeting name.
func SummaryItinerary(data *domain.Data, includeRoles bool, rep *report.Collector) (*docx.Docx, error) {
	w := newDocument("Summary Itinerary and Key Contacts")

	for _, group := range groupByDate(data.ProposedMeetings) {
		addDateHeading(w, group.Date)

		tbl := w.AddTable(len(group.Meetings)+1, 3, tableWidth, nil)
		addScheduleHeaderRow(tbl.TableRows[0])

		previousTime := ""
		for i, meeting := range group.Meetings {
			cells := tbl.TableRows[i+1].TableCells

			timePara := cells[0].AddParagraph()
			timePara.Justification("right")
			if i == 0 || meeting.Time != previousTime {
				timePara.AddText(meeting.Time)
			}
			previousTime = meeting.Time

			meetingCell := cells[1]
			meetingCell.AddParagraph().AddText(meeting.InterviewAssignments)
			if includeRoles && meeting.RoleInfoRaw != "" {
				addRoleInfo(meetingCell.AddParagraph(), meeting, rep)
			}

			cells[2].AddParagraph().AddText(meeting.MeetingLocation)
			if meeting.ShouldShowZoomRoom() {
				if err := addZoomRoom(cells[2].AddParagraph(), meeting.ZoomRoomName, data.ZoomRoomsByName, rep); err != nil {
					return nil, err
				}
			}
		}

		w.AddParagraph()
	}

	return w, nil
}
