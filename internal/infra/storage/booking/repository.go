package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
	"github.com/mymy770/activelaser/pkg/psqlbuilder"
	"github.com/mymy770/activelaser/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"branch_id",
	"booking_date",
	"event_type",
	"start_hour",
	"start_minute",
	"duration_minutes",
	"game_duration_minutes",
	"participants",
	"assigned_slots",
	"assigned_room",
	"status",
	"surbooked",
	"surbooked_participants",
	"room_overcap",
	"room_overcap_participants",
	"customer_first_name",
	"customer_last_name",
	"customer_phone",
	"customer_email",
	"customer_notes",
	"color",
	"created_at",
	"updated_at",
}

// Repository persists bookings in the bookings table.
type Repository struct {
	db Executor
}

// NewRepository creates a booking repository.
func NewRepository(db Executor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking. Runs on the transaction carried by ctx when
// the caller allocated inside one, which is how slot/room uniqueness survives
// concurrent staff sessions.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"branch_id",
			"booking_date",
			"event_type",
			"start_hour",
			"start_minute",
			"duration_minutes",
			"game_duration_minutes",
			"participants",
			"assigned_slots",
			"assigned_room",
			"status",
			"surbooked",
			"surbooked_participants",
			"room_overcap",
			"room_overcap_participants",
			"customer_first_name",
			"customer_last_name",
			"customer_phone",
			"customer_email",
			"customer_notes",
			"color",
		).
		Values(
			b.ID,
			b.BranchID,
			b.Date,
			string(b.Type),
			b.Hour,
			b.Minute,
			b.DurationMinutes,
			b.GameDurationMinutes,
			b.Participants,
			slotsArray(b.AssignedSlots),
			b.AssignedRoom,
			b.Status,
			b.Surbooked,
			b.SurbookedParticipants,
			b.RoomOvercap,
			b.RoomOvercapParticipants,
			b.CustomerFirstName,
			b.CustomerLastName,
			b.CustomerPhone,
			b.CustomerEmail,
			b.CustomerNotes,
			b.Color,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID fetches one booking.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// GetByBranchAndDate fetches every booking of one branch on one date,
// ordered by start time. Cancelled bookings are included only on request;
// the occupancy builders want them excluded so their resources read free.
func (r *Repository) GetByBranchAndDate(ctx context.Context, branchID int64, date string, includeCancelled bool) ([]*domain.Booking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"branch_id": branchID, "booking_date": date}).
		OrderBy("start_hour", "start_minute", "id")

	if !includeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDate - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBranchAndDate - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDate - iterate rows: %v", ErrExecQuery, err)
	}

	return bookings, nil
}

// Update rewrites the mutable fields of a booking, allocation included.
func (r *Repository) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", b.Date).
		Set("event_type", string(b.Type)).
		Set("start_hour", b.Hour).
		Set("start_minute", b.Minute).
		Set("duration_minutes", b.DurationMinutes).
		Set("game_duration_minutes", b.GameDurationMinutes).
		Set("participants", b.Participants).
		Set("assigned_slots", slotsArray(b.AssignedSlots)).
		Set("assigned_room", b.AssignedRoom).
		Set("status", b.Status).
		Set("surbooked", b.Surbooked).
		Set("surbooked_participants", b.SurbookedParticipants).
		Set("room_overcap", b.RoomOvercap).
		Set("room_overcap_participants", b.RoomOvercapParticipants).
		Set("customer_first_name", b.CustomerFirstName).
		Set("customer_last_name", b.CustomerLastName).
		Set("customer_phone", b.CustomerPhone).
		Set("customer_email", b.CustomerEmail).
		Set("customer_notes", b.CustomerNotes).
		Set("color", b.Color).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// UpdateStatus moves a booking to a new lifecycle state.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		bookingDate time.Time
		eventType   sql.NullString
		slots       pq.Int64Array
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BranchID,
		&bookingDate,
		&eventType,
		&b.Hour,
		&b.Minute,
		&b.DurationMinutes,
		&b.GameDurationMinutes,
		&b.Participants,
		&slots,
		&b.AssignedRoom,
		&b.Status,
		&b.Surbooked,
		&b.SurbookedParticipants,
		&b.RoomOvercap,
		&b.RoomOvercapParticipants,
		&b.CustomerFirstName,
		&b.CustomerLastName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&b.CustomerNotes,
		&b.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = bookingDate.Format(domain.DateFormat)

	// The event_type column is loose legacy data; the classification rule
	// decides the booking type, and games never surface a room.
	var rawType *string
	if eventType.Valid {
		rawType = &eventType.String
	}
	b.Type = domain.ClassifyEventType(rawType)
	if b.Type == scheduler.BookingTypeGame {
		b.AssignedRoom = nil
	}

	if len(slots) > 0 {
		b.AssignedSlots = make([]int, len(slots))
		for i, s := range slots {
			b.AssignedSlots[i] = int(s)
		}
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func slotsArray(slots []int) interface{} {
	if len(slots) == 0 {
		return nil
	}
	arr := make(pq.Int64Array, len(slots))
	for i, s := range slots {
		arr[i] = int64(s)
	}
	return arr
}
