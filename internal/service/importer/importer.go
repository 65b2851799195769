// Package importer replaces the database contents with a freshly loaded
// data bundle, in a single transaction.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/markup"
	"github.com/doublemix/msche-team-visit/internal/report"
	"github.com/doublemix/msche-team-visit/internal/repository"
	"github.com/doublemix/msche-team-visit/pkg/database"
)

type ZoomRoomRepository interface {
	Insert(ctx context.Context, room domain.ZoomRoom) (int, error)
	DeleteAll(ctx context.Context) error
}

type MeetingRepository interface {
	Insert(ctx context.Context, params repository.InsertMeetingParams) (int, error)
	DeleteAll(ctx context.Context) error
}

type ParticipantRepository interface {
	Insert(ctx context.Context, name, title string, isTeamMember bool) (int, error)
	InsertParticipation(ctx context.Context, meetingID, participantID int) error
	DeleteAll(ctx context.Context) error
}

type ImporterService struct {
	zoomRoomRepo    ZoomRoomRepository
	meetingRepo     MeetingRepository
	participantRepo ParticipantRepository
	txManager       database.TransactionManagerInterface
	lg              *slog.Logger
}

func NewImporterService(zoomRoomRepo ZoomRoomRepository,
	meetingRepo MeetingRepository,
	participantRepo ParticipantRepository,
	txManager database.TransactionManagerInterface,
	lg *slog.Logger) *ImporterService {
	return &ImporterService{
		zoomRoomRepo:    zoomRoomRepo,
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		txManager:       txManager,
		lg:              lg,
	}
}

// visitZone anchors start and end instants. Date labels in the workbook
// carry no zone, and the visit takes place in US Eastern daylight time.
var visitZone = time.FixedZone("EDT", -4*60*60)

var dateLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

// Import wipes the existing tables and writes the bundle. Everything runs
// in one transaction so readers never observe a half-imported schedule.
func (s *ImporterService) Import(ctx context.Context, data *domain.Data, rep *report.Collector) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Clear in dependency order: participation and participants first,
		// then meetings, then the zoom room directory they reference.
		if err := s.participantRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		if err := s.meetingRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		if err := s.zoomRoomRepo.DeleteAll(txCtx); err != nil {
			return err
		}

		zoomRoomIDs := make(map[string]int, len(data.ZoomRooms))
		for _, room := range data.ZoomRooms {
			id, err := s.zoomRoomRepo.Insert(txCtx, room)
			if err != nil {
				return err
			}
			zoomRoomIDs[room.ZoomRoomName] = id
		}

		meetingIDs := make([]int, len(data.ProposedMeetings))
		for i, meeting := range data.ProposedMeetings {
			params, err := s.meetingParams(meeting, zoomRoomIDs, rep)
			if err != nil {
				return err
			}
			id, err := s.meetingRepo.Insert(txCtx, *params)
			if err != nil {
				return err
			}
			meetingIDs[i] = id
		}

		participantIDs := make(map[string]int, len(data.Participants))
		for _, p := range data.Participants {
			id, err := s.participantRepo.Insert(txCtx, p.FullName, p.Title, p.IsTeamMember())
			if err != nil {
				return err
			}
			participantIDs[p.ID] = id
		}

		teamMembers := data.TeamMembers()
		for i, meeting := range data.ProposedMeetings {
			meetingID := meetingIDs[i]
			seen := make(map[int]bool)

			for _, individual := range meeting.Individuals {
				participantID, ok := participantIDs[individual.ID]
				if !ok {
					rep.Error("missing individual in %s: %s", meeting.InterviewAssignments, individual.ID)
					continue
				}
				if seen[participantID] {
					continue
				}
				seen[participantID] = true
				if err := s.participantRepo.InsertParticipation(txCtx, meetingID, participantID); err != nil {
					return err
				}
			}

			for _, member := range teamMembers {
				if !meeting.IncludesParticipant(member) {
					continue
				}
				participantID := participantIDs[member.ID]
				if seen[participantID] {
					continue
				}
				seen[participantID] = true
				if err := s.participantRepo.InsertParticipation(txCtx, meetingID, participantID); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}

	s.lg.Info("database populated",
		slog.Int("meetings", len(data.ProposedMeetings)),
		slog.Int("participants", len(data.Participants)),
		slog.Int("zoom_rooms", len(data.ZoomRooms)))
	return nil
}

func (s *ImporterService) meetingParams(meeting *domain.ProposedMeeting, zoomRoomIDs map[string]int, rep *report.Collector) (*repository.InsertMeetingParams, error) {
	params := &repository.InsertMeetingParams{
		Date:     meeting.Date,
		Time:     meeting.Time,
		Name:     meeting.InterviewAssignments,
		Location: meeting.MeetingLocation,
	}

	if meeting.ShouldShowZoomRoom() && meeting.ZoomRoomName != "" {
		id, ok := zoomRoomIDs[meeting.ZoomRoomName]
		if !ok {
			return nil, &domain.MissingZoomRoomError{Name: meeting.ZoomRoomName}
		}
		params.ZoomRoomID = &id
	}

	if date, ok := parseDateLabel(meeting.Date); ok {
		params.StartTime = timestamp(date, meeting.StartTime)
		params.EndTime = timestamp(date, meeting.EndTime)
	} else {
		rep.Warn("date label %q is not a calendar date, storing without timestamps", meeting.Date)
	}

	if meeting.RoleInfoRaw != "" {
		runs, err := markup.Parse(meeting.RoleInfoRaw)
		if err != nil {
			rep.Warn("bad role annotation in %q: %v", meeting.InterviewAssignments, err)
			runs = []domain.TextRun{{Text: meeting.RoleInfoRaw}}
		}
		params.RoleInfo = runs
	}

	return params, nil
}

// parseDateLabel tries the known date label layouts. Labels are grouping
// keys first and calendar dates second, so failure is not an error.
func parseDateLabel(label string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, label, visitZone); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

func timestamp(date time.Time, tod *domain.TimeOfDay) *time.Time {
	if tod == nil {
		return nil
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour24, tod.Minute, 0, 0, visitZone)
	return &t
}
