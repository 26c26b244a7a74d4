package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a new pending booking and its synthetic "created"
	// history entry in one transaction.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateFields rewrites the editable fields of a booking that is still
	// pending. A booking whose status moved on concurrently is not touched.
	UpdateFields(ctx context.Context, b *Booking) error
	// UpdateStatus applies a decided transition with a compare-and-set write
	// keyed on the status the caller read, appending the history entry in
	// the same transaction. ErrStaleState is returned when the persisted
	// status no longer matches.
	UpdateStatus(ctx context.Context, id int64, from Status, entry *HistoryEntry) error
	// Delete soft-deletes a booking that is still pending.
	Delete(ctx context.Context, id int64) error
	// ListHistory returns the audit trail, oldest first.
	ListHistory(ctx context.Context, bookingID int64) ([]*HistoryEntry, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.room_id", "r.name", "r.code",
	"b.borrower_name", "b.borrower_email", "b.borrower_phone",
	"b.start_time", "b.end_time", "b.purpose", "b.status",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.RoomID, &b.RoomName, &b.RoomCode,
		&b.BorrowerName, &b.BorrowerEmail, &b.BorrowerPhone,
		&b.StartTime, &b.EndTime, &b.Purpose, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("room_id", "borrower_name", "borrower_email", "borrower_phone",
			"start_time", "end_time", "purpose", "status").
		Values(b.RoomID, b.BorrowerName, b.BorrowerEmail, b.BorrowerPhone,
			b.StartTime, b.EndTime, b.Purpose, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	// Synthetic created entry: old_status NULL marks it in the audit trail.
	if err := appendHistory(ctx, tx, &HistoryEntry{
		BookingID: b.ID,
		OldStatus: nil,
		NewStatus: b.Status,
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.id": id, "b.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

// sortColumns whitelists the sortable fields so the order-by clause is never
// built from raw client input.
var sortColumns = map[string]string{
	"startTime":    "b.start_time",
	"endTime":      "b.end_time",
	"createdAt":    "b.created_at",
	"status":       "b.status",
	"borrowerName": "b.borrower_name",
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.deleted_at": nil})

	if filter.RoomID > 0 {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndDate})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"b.borrower_name": like},
			squirrel.ILike{"b.borrower_email": like},
			squirrel.ILike{"b.purpose": like},
			squirrel.ILike{"r.name": like},
			squirrel.ILike{"r.code": like},
		})
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "b.start_time"
	}
	orderDir := "DESC"
	if filter.SortOrder == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateFields(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("room_id", b.RoomID).
		Set("borrower_name", b.BorrowerName).
		Set("borrower_email", b.BorrowerEmail).
		Set("borrower_phone", b.BorrowerPhone).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("purpose", b.Purpose).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "status": StatusPending, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either gone or no longer pending; re-check to report the right error.
		if _, getErr := r.GetByID(ctx, b.ID); getErr != nil {
			return getErr
		}
		return ErrNotEditable
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, from Status, entry *HistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update status tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", entry.NewStatus).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStaleState
	}

	if err := appendHistory(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update status tx failed: %w", err)
	}
	return nil
}

func appendHistory(ctx context.Context, tx pgx.Tx, entry *HistoryEntry) error {
	changedBy := entry.ChangedBy
	if changedBy == "" {
		changedBy = "system"
	}

	var notes *string
	if entry.Notes != "" {
		notes = &entry.Notes
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.booking_history").
		Columns("booking_id", "old_status", "new_status", "notes", "changed_by").
		Values(entry.BookingID, entry.OldStatus, entry.NewStatus, notes, changedBy).
		Suffix("RETURNING id, changed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append history query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.ChangedAt); err != nil {
		return fmt.Errorf("append history failed: %w", err)
	}
	entry.ChangedBy = changedBy
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": StatusPending, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrNotDeletable
	}
	return nil
}

func (r *pgxRepository) ListHistory(ctx context.Context, bookingID int64) ([]*HistoryEntry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "booking_id", "old_status", "new_status", "notes", "changed_at", "changed_by",
	).
		From("public.booking_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history failed: %w", err)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var notes *string
		if err := rows.Scan(&e.ID, &e.BookingID, &e.OldStatus, &e.NewStatus, &notes, &e.ChangedAt, &e.ChangedBy); err != nil {
			return nil, fmt.Errorf("scan history entry failed: %w", err)
		}
		if notes != nil {
			e.Notes = *notes
		}
		entries = append(entries, &e)
	}

	return entries, nil
}
