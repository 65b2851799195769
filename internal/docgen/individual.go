package docgen

import (
	"github.com/fumiama/go-docx"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/report"
)

const tableWidth = 10800 // 7.5in in twips

// IndividualItineraries renders one schedule per visiting team member,
// each covering only the meetings that member's roles select.
func IndividualItineraries(data *domain.Data, rep *report.Collector) (*docx.Docx, error) {
	w := newDocument("Team Member Itinerary")

	for i, member := range data.TeamMembers() {
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}
		if err := addIndividualItinerary(w, member, data, rep); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func addIndividualItinerary(w *docx.Docx, member *domain.Participant, data *domain.Data, rep *report.Collector) error {
	namePara := w.AddParagraph()
	namePara.Justification("center")
	namePara.AddText(member.FullName).Size(sizeName).Bold()

	titlePara := w.AddParagraph()
	titlePara.Justification("center")
	titlePara.AddText(member.Title + " Itinerary").Size(sizeSubtitle).Bold()

	var meetings []*domain.ProposedMeeting
	for _, m := range data.ProposedMeetings {
		if m.IncludesParticipant(member) {
			meetings = append(meetings, m)
		}
	}

	for _, group := range groupByDate(meetings) {
		addDateHeading(w, group.Date)

		tbl := w.AddTable(len(group.Meetings)+1, 3, tableWidth, nil)
		addScheduleHeaderRow(tbl.TableRows[0])

		for i, meeting := range group.Meetings {
			cells := tbl.TableRows[i+1].TableCells

			timePara := cells[0].AddParagraph()
			timePara.Justification("right")
			timePara.AddText(meeting.Time)

			cells[1].AddParagraph().AddText(meeting.InterviewAssignments)

			cells[2].AddParagraph().AddText(meeting.MeetingLocation)
			if meeting.IsZoomRoomPrimary() {
				if err := addZoomRoom(cells[2].AddParagraph(), meeting.ZoomRoomName, data.ZoomRoomsByName, rep); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func addDateHeading(w *docx.Docx, date string) {
	p := w.AddParagraph()
	p.Justification("center")
	p.AddText(date).Bold().Shade("clear", "auto", headerFill)
}

func addScheduleHeaderRow(row *docx.WTableRow) {
	for i, label := range []string{"Time", "Meeting", "Location"} {
		p := row.TableCells[i].AddParagraph()
		p.Justification("center")
		p.AddText(label).Bold().Shade("clear", "auto", headerFill)
	}
}
