package repository

import (
	"context"
	"fmt"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/pkg/database"
)

type ZoomRoomRepository struct {
	db *database.DB
}

func NewZoomRoomRepository(db *database.DB) *ZoomRoomRepository {
	return &ZoomRoomRepository{db: db}
}

func (r *ZoomRoomRepository) Insert(ctx context.Context, room domain.ZoomRoom) (int, error) {
	conn := r.db.Conn(ctx)

	var id int
	err := conn.QueryRowContext(ctx, `
		INSERT INTO zoom_rooms (name, link)
		VALUES ($1, $2)
		RETURNING id
	`, room.ZoomRoomName, room.Link).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert zoom room %s: %w", room.ZoomRoomName, err)
	}

	return id, nil
}

func (r *ZoomRoomRepository) GetByID(ctx context.Context, id int) (*domain.ZoomRoomRecord, error) {
	conn := r.db.Conn(ctx)

	var room domain.ZoomRoomRecord
	err := conn.QueryRowContext(ctx, `
		SELECT id, name, link
		FROM zoom_rooms
		WHERE id = $1
	`, id).Scan(&room.ID, &room.Name, &room.Link)
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	return &room, nil
}

func (r *ZoomRoomRepository) DeleteAll(ctx context.Context) error {
	conn := r.db.Conn(ctx)

	if _, err := conn.ExecContext(ctx, `DELETE FROM zoom_rooms`); err != nil {
		return fmt.Errorf("failed to clear zoom rooms: %w", err)
	}
	return nil
}
