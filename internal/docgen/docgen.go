// Package docgen renders the canonical data bundle into docx itineraries:
// a detailed day-by-day schedule, per-person schedules for the visiting
// team, and a summary grid with optional role annotations. Generators only
// read the bundle, so independent documents can be produced concurrently.
package docgen

import (
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/markup"
	"github.com/doublemix/msche-team-visit/internal/report"
)

const (
	mainTitle  = "MSCHE Team Visit"
	schoolName = "Commonwealth University"
	visitDates = "March 23-26, 2025"

	accentColor = "92002E"
	mutedColor  = "54585A"
	timeColor   = "C00000"
	headerFill  = "DDDDDD"
)

// Font sizes are in half points.
const (
	sizeSchool   = "36"
	sizeTitle    = "28"
	sizeName     = "40"
	sizeSubtitle = "32"
)

type dateGroup struct {
	Date     string
	Meetings []*domain.ProposedMeeting
}

// groupByDate buckets meetings under their date label, preserving first
// appearance order of both dates and meetings.
func groupByDate(meetings []*domain.ProposedMeeting) []dateGroup {
	index := make(map[string]int)
	var groups []dateGroup
	for _, m := range meetings {
		i, ok := index[m.Date]
		if !ok {
			i = len(groups)
			index[m.Date] = i
			groups = append(groups, dateGroup{Date: m.Date})
		}
		groups[i].Meetings = append(groups[i].Meetings, m)
	}
	return groups
}

func newDocument(subtitle string) *docx.Docx {
	w := docx.New().WithDefaultTheme()

	addTitleLine(w, schoolName).Size(sizeSchool).Color(accentColor)
	addTitleLine(w, mainTitle).Color(mutedColor)
	addTitleLine(w, subtitle).Color(mutedColor)
	addTitleLine(w, visitDates).Color(mutedColor)
	w.AddParagraph()

	return w
}

func addTitleLine(w *docx.Docx, text string) *docx.Run {
	p := w.AddParagraph()
	p.Justification("center")
	return p.AddText(text).Bold()
}

// addZoomRoom renders the meeting's zoom room into the paragraph, as a
// hyperlink when the directory has a link and plain text otherwise. The
// room itself is guaranteed present: the loader rejects dangling names.
func addZoomRoom(p *docx.Paragraph, name string, byName map[string]domain.ZoomRoom, rep *report.Collector) error {
	room, ok := byName[name]
	if !ok {
		return fmt.Errorf("docgen: zoom room %q vanished from the directory", name)
	}
	if room.Link == "" {
		rep.Warn("zoom room without link: %s", name)
		p.AddText(room.ZoomRoomName)
		return nil
	}
	p.AddLink(room.ZoomRoomName, room.Link)
	return nil
}

// addRoleInfo renders a meeting's role-annotation markup. Malformed markup
// falls back to the raw cell text with a warning; it never fails the
// document.
func addRoleInfo(p *docx.Paragraph, m *domain.ProposedMeeting, rep *report.Collector) {
	runs, err := markup.Parse(m.RoleInfoRaw)
	if err != nil {
		rep.Warn("bad role annotation in %q: %v", m.InterviewAssignments, err)
		p.AddText(m.RoleInfoRaw)
		return
	}
	addRuns(p, runs)
}

func addRuns(p *docx.Paragraph, runs []domain.TextRun) {
	for _, run := range runs {
		r := p.AddText(run.Text)
		if run.Bold {
			r.Bold()
		}
		if run.Italics {
			r.Italic()
		}
		if run.Underline {
			r.Underline("single")
		}
	}
}
