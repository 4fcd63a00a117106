package branchconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/pkg/psqlbuilder"
	"github.com/mymy770/activelaser/pkg/txmanager"
)

// Repository persists per-branch scheduling configuration: the slot grid in
// branch_schedule_configs, the bookable rooms in branch_rooms.
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a branch configuration repository.
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetByBranchID loads the configuration of one branch, rooms included.
// Returns ErrConfigNotFound when the branch was never configured; callers
// fall back to domain.DefaultBranchScheduleConfig.
func (r *Repository) GetByBranchID(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"total_slots",
		"players_per_slot",
		"created_at",
		"updated_at",
	).
		From("branch_schedule_configs").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchID - build select: %v", ErrBuildQuery, err)
	}

	var cfg domain.BranchScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.BranchID,
		&cfg.TotalSlots,
		&cfg.PlayersPerSlot,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchID - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	rooms, err := r.getRooms(ctx, executor, branchID)
	if err != nil {
		return nil, err
	}
	cfg.Rooms = rooms

	return &cfg, nil
}

func (r *Repository) getRooms(ctx context.Context, executor txmanager.Executor, branchID int64) ([]domain.Room, error) {
	query, args, err := psqlbuilder.Select("room_id", "name", "max_capacity").
		From("branch_rooms").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRooms - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRooms - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.MaxCapacity); err != nil {
			return nil, fmt.Errorf("%w: getRooms - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRooms - iterate rows: %v", ErrExecQuery, err)
	}

	return rooms, nil
}

// Upsert stores a branch configuration, replacing the room list atomically
// with the grid settings. Meant to run inside a transaction.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branch_schedule_configs").
		Columns("branch_id", "total_slots", "players_per_slot").
		Values(cfg.BranchID, cfg.TotalSlots, cfg.PlayersPerSlot).
		Suffix(`ON CONFLICT (branch_id) DO UPDATE
			SET total_slots = EXCLUDED.total_slots,
			    players_per_slot = EXCLUDED.players_per_slot,
			    updated_at = now()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("branch_rooms").
		Where(squirrel.Eq{"branch_id": cfg.BranchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build room delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - delete rooms: %v", ErrExecQuery, err)
	}

	for _, room := range cfg.Rooms {
		insertQuery, insertArgs, err := psqlbuilder.Insert("branch_rooms").
			Columns("branch_id", "room_id", "name", "max_capacity").
			Values(cfg.BranchID, room.ID, room.Name, room.MaxCapacity).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - build room insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return nil, fmt.Errorf("%w: Upsert - insert room: %v", ErrExecQuery, err)
		}
	}

	return cfg, nil
}
