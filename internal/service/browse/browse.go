// Package browse serves the read-only web view of the imported schedule.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/repository"
)

type MeetingRepository interface {
	List(ctx context.Context) ([]domain.MeetingSummary, error)
	GetByID(ctx context.Context, id int) (*domain.MeetingRecord, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.MeetingRecord, error)
}

type ParticipantRepository interface {
	GetByMeeting(ctx context.Context, meetingID int) ([]domain.ParticipantRecord, error)
}

type ZoomRoomRepository interface {
	GetByID(ctx context.Context, id int) (*domain.ZoomRoomRecord, error)
}

type BrowseService struct {
	meetingRepo     MeetingRepository
	participantRepo ParticipantRepository
	zoomRoomRepo    ZoomRoomRepository
	lg              *slog.Logger
}

func NewBrowseService(meetingRepo MeetingRepository,
	participantRepo ParticipantRepository,
	zoomRoomRepo ZoomRoomRepository,
	lg *slog.Logger) *BrowseService {
	return &BrowseService{
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		zoomRoomRepo:    zoomRoomRepo,
		lg:              lg,
	}
}

func (s *BrowseService) ListMeetings(ctx context.Context) ([]domain.MeetingSummary, error) {
	meetings, err := s.meetingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

func (s *BrowseService) GetMeeting(ctx context.Context, id int, now time.Time) (*domain.MeetingDetails, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	participants, err := s.participantRepo.GetByMeeting(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting participants: %w", err)
	}

	details := &domain.MeetingDetails{
		Meeting:            *meeting,
		TimeInterpretation: Interpretation(now, meeting.StartTime, meeting.EndTime),
	}
	for _, p := range participants {
		if p.IsTeamMember {
			details.TeamMembers = append(details.TeamMembers, p)
		} else {
			details.Representatives = append(details.Representatives, p)
		}
	}

	if meeting.ZoomRoomID != nil {
		room, err := s.zoomRoomRepo.GetByID(ctx, *meeting.ZoomRoomID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get zoom room: %w", err)
		}
		details.ZoomRoom = room
	}

	return details, nil
}

// LiveMeetings returns the meetings ongoing at the given instant plus the
// next upcoming block, the meetings sharing the earliest future start. Each
// entry carries its time reading.
func (s *BrowseService) LiveMeetings(ctx context.Context, now time.Time) ([]domain.LiveMeeting, error) {
	meetings, err := s.meetingRepo.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list live meetings: %w", err)
	}

	var nextStart *time.Time
	for _, m := range meetings {
		if m.StartTime == nil || !m.StartTime.After(now) {
			continue
		}
		if nextStart == nil || m.StartTime.Before(*nextStart) {
			nextStart = m.StartTime
		}
	}

	live := make([]domain.LiveMeeting, 0, len(meetings))
	for _, m := range meetings {
		// Future meetings outside the next block wait their turn; rows
		// without a start time read as ongoing until their end passes.
		if m.StartTime != nil && m.StartTime.After(now) && !m.StartTime.Equal(*nextStart) {
			continue
		}
		live = append(live, domain.LiveMeeting{
			ID:                 m.ID,
			Name:               m.Name,
			Date:               m.Date,
			Time:               m.Time,
			TimeInterpretation: Interpretation(now, m.StartTime, m.EndTime),
		})
	}
	return live, nil
}
