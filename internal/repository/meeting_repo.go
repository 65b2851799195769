package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/pkg/database"
)

type MeetingRepository struct {
	db *database.DB
}

func NewMeetingRepository(db *database.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// InsertMeetingParams carries one meeting row for insertion. RoleInfo is
// the already-parsed annotation runs, nil when the meeting has none.
type InsertMeetingParams struct {
	Date       string
	Time       string
	StartTime  *time.Time
	EndTime    *time.Time
	Name       string
	Location   string
	ZoomRoomID *int
	RoleInfo   []domain.TextRun
}

func (r *MeetingRepository) Insert(ctx context.Context, params InsertMeetingParams) (int, error) {
	conn := r.db.Conn(ctx)

	var roleInfo any
	if params.RoleInfo != nil {
		encoded, err := json.Marshal(params.RoleInfo)
		if err != nil {
			return 0, fmt.Errorf("failed to encode role info: %w", err)
		}
		roleInfo = encoded
	}

	var id int
	err := conn.QueryRowContext(ctx, `
		INSERT INTO meetings (date_label, time_label, start_time, end_time, name, location, zoom_room_id, role_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, params.Date, params.Time, params.StartTime, params.EndTime,
		params.Name, params.Location, params.ZoomRoomID, roleInfo).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meeting %s: %w", params.Name, err)
	}

	return id, nil
}

func (r *MeetingRepository) List(ctx context.Context) ([]domain.MeetingSummary, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name
		FROM meetings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.MeetingSummary
	for rows.Next() {
		var m domain.MeetingSummary
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}

func (r *MeetingRepository) GetByID(ctx context.Context, id int) (*domain.MeetingRecord, error) {
	conn := r.db.Conn(ctx)

	row := conn.QueryRowContext(ctx, `
		SELECT id, date_label, time_label, start_time, end_time, name, location, zoom_room_id, role_info
		FROM meetings
		WHERE id = $1
	`, id)

	meeting, err := scanMeeting(row)
	if err != nil {
		return nil, HandleNoRowsError(err)
	}
	return meeting, nil
}

// ListUpcoming returns meetings that have not ended as of the given
// instant, soonest first. Meetings with no resolvable times are excluded.
func (r *MeetingRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.MeetingRecord, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT id, date_label, time_label, start_time, end_time, name, location, zoom_room_id, role_info
		FROM meetings
		WHERE end_time >= $1 OR (end_time IS NULL AND start_time >= $1)
		ORDER BY COALESCE(start_time, end_time), id
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.MeetingRecord
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, *meeting)
	}

	return meetings, rows.Err()
}

func (r *MeetingRepository) DeleteAll(ctx context.Context) error {
	conn := r.db.Conn(ctx)

	if _, err := conn.ExecContext(ctx, `DELETE FROM meetings`); err != nil {
		return fmt.Errorf("failed to clear meetings: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*domain.MeetingRecord, error) {
	var m domain.MeetingRecord
	var startTime, endTime sql.NullTime
	var zoomRoomID sql.NullInt64
	var roleInfo []byte

	err := row.Scan(&m.ID, &m.Date, &m.Time, &startTime, &endTime,
		&m.Name, &m.Location, &zoomRoomID, &roleInfo)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		m.StartTime = &startTime.Time
	}
	if endTime.Valid {
		m.EndTime = &endTime.Time
	}
	if zoomRoomID.Valid {
		id := int(zoomRoomID.Int64)
		m.ZoomRoomID = &id
	}
	if len(roleInfo) > 0 {
		if err := json.Unmarshal(roleInfo, &m.RoleInfo); err != nil {
			return nil, fmt.Errorf("failed to decode role info: %w", err)
		}
	}

	return &m, nil
}
