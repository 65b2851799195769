package docgen

import (
	"github.com/fumiama/go-docx"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/report"
)

// FullItinerary renders the detailed day-by-day schedule: every meeting
// under its date heading, with time, location, zoom room, and the people
// in the room.
func FullItinerary(data *domain.Data, rep *report.Collector) (*docx.Docx, error) {
	w := newDocument("Detailed Itinerary")

	allTeamMembers := data.TeamMembers()

	for _, group := range groupByDate(data.ProposedMeetings) {
		w.AddParagraph().AddText(group.Date).Size(sizeTitle).Bold().Underline("single")

		for _, meeting := range group.Meetings {
			if err := addMeetingLine(w, meeting, data.ZoomRoomsByName, rep); err != nil {
				return nil, err
			}
			if meeting.HideNames {
				continue
			}
			addTeamMembers(w, meeting, allTeamMembers)
			addIndividuals(w, meeting, data, rep)
		}
	}

	return w, nil
}

// addMeetingLine writes the one-line meeting summary: bold title, then
// time, location, and zoom room separated by commas. Blank segments are
// skipped rather than leaving dangling separators.
func addMeetingLine(w *docx.Docx, meeting *domain.ProposedMeeting, byName map[string]domain.ZoomRoom, rep *report.Collector) error {
	p := w.AddParagraph()
	p.AddText(meeting.InterviewAssignments).Bold()

	first := true
	separate := func() {
		if first {
			p.AddText(", ").Bold()
		} else {
			p.AddText(", ")
		}
		first = false
	}

	if meeting.Time != "" {
		separate()
		p.AddText(meeting.Time).Color(timeColor)
	}
	if meeting.MeetingLocation != "" {
		separate()
		p.AddText(meeting.MeetingLocation)
	}
	if meeting.ShouldShowZoomRoom() {
		separate()
		if err := addZoomRoom(p, meeting.ZoomRoomName, byName, rep); err != nil {
			return err
		}
	}
	return nil
}

func addTeamMembers(w *docx.Docx, meeting *domain.ProposedMeeting, allTeamMembers []*domain.Participant) {
	var attending []*domain.Participant
	for _, p := range allTeamMembers {
		if meeting.IncludesParticipant(p) {
			attending = append(attending, p)
		}
	}
	if len(attending) == 0 {
		return
	}

	w.AddParagraph().AddText("MSCHE Team Member(s)").Bold()
	if len(attending) == len(allTeamMembers) {
		w.AddParagraph().AddText("All Team Members")
		return
	}
	for _, p := range attending {
		addParticipantLine(w, p)
	}
}

// addIndividuals lists the named campus attendees. An id missing from the
// roster is reported and skipped; it never aborts the document.
func addIndividuals(w *docx.Docx, meeting *domain.ProposedMeeting, data *domain.Data, rep *report.Collector) {
	var attending []*domain.Participant
	for _, individual := range meeting.Individuals {
		p, ok := data.ParticipantByID(individual.ID)
		if !ok {
			rep.Error("missing individual in %s: %s", meeting.InterviewAssignments, individual.ID)
			continue
		}
		attending = append(attending, p)
	}
	if len(attending) == 0 {
		return
	}

	w.AddParagraph().AddText("CU Representative(s)").Bold()
	for _, p := range attending {
		addParticipantLine(w, p)
	}
}

func addParticipantLine(w *docx.Docx, p *domain.Participant) {
	para := w.AddParagraph()
	if p.Title == "" {
		para.AddText(p.FullName).Bold()
		return
	}
	para.AddText(p.FullName + ", ").Bold()
	para.AddText(p.Title)
}
