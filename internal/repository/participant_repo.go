package repository

import (
	"context"
	"fmt"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/pkg/database"
)

type ParticipantRepository struct {
	db *database.DB
}

func NewParticipantRepository(db *database.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Insert(ctx context.Context, name, title string, isTeamMember bool) (int, error) {
	conn := r.db.Conn(ctx)

	var id int
	err := conn.QueryRowContext(ctx, `
		INSERT INTO participants (name, title, is_team_member)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, title, isTeamMember).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert participant %s: %w", name, err)
	}

	return id, nil
}

func (r *ParticipantRepository) GetByMeeting(ctx context.Context, meetingID int) ([]domain.ParticipantRecord, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT p.id, p.name, p.title, p.is_team_member
		FROM meeting_participation mp
		JOIN participants p ON mp.participant_id = p.id
		WHERE mp.meeting_id = $1
		ORDER BY p.id
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.ParticipantRecord
	for rows.Next() {
		var p domain.ParticipantRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.IsTeamMember); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (r *ParticipantRepository) InsertParticipation(ctx context.Context, meetingID, participantID int) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, `
		INSERT INTO meeting_participation (meeting_id, participant_id)
		VALUES ($1, $2)
	`, meetingID, participantID)
	if err != nil {
		return fmt.Errorf("failed to insert participation: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) DeleteAll(ctx context.Context) error {
	conn := r.db.Conn(ctx)

	if _, err := conn.ExecContext(ctx, `DELETE FROM meeting_participation`); err != nil {
		return fmt.Errorf("failed to clear participation: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	return nil
}
