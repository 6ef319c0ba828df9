package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "drowsiness-dashboard/internal/db"
	"drowsiness-dashboard/internal/domain"
	"drowsiness-dashboard/internal/domain/models"
)

// Table and column names are shared with the detector, which inserts into
// the same table.
const (
	tripTable = "viaje"

	createTripTableSQL = `
		CREATE TABLE IF NOT EXISTS viaje (
			id_viaje   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			hora_viaje DATETIME NOT NULL,
			parpadeo   INT UNSIGNED NOT NULL DEFAULT 0,
			cabeceos   INT UNSIGNED NOT NULL DEFAULT 0,
			bosteso    INT UNSIGNED NOT NULL DEFAULT 0
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

	insertTripSQL = `INSERT INTO viaje (hora_viaje, parpadeo, cabeceos, bosteso) VALUES (?, ?, ?, ?)`

	listTripsSQL = `SELECT id_viaje, hora_viaje, parpadeo, cabeceos, bosteso FROM viaje ORDER BY id_viaje ASC`

	countTripsSQL = `SELECT COUNT(*) FROM viaje`

	DefaultTimeout = 5 * time.Second
)

var errNoDB = errors.New("database handle not configured")

// TripRecordRepository is the append-only trip store. Ids come from the
// table's AUTO_INCREMENT, so concurrent inserts never share an id.
type TripRecordRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewTripRecordRepository(db *sql.DB, timeout time.Duration) TripRecordRepository {
	return TripRecordRepository{DB: db, Timeout: timeout}
}

func (r TripRecordRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureSchema creates the trip table when it does not exist yet.
func (r TripRecordRepository) EnsureSchema(ctx context.Context) (created bool, err error) {
	if r.DB == nil {
		return false, domain.StorageUnavailableError{Op: "ensure schema", Err: errNoDB}
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	exists, err := intdb.HasTable(ctx, r.DB, tripTable)
	if err != nil {
		return false, domain.StorageUnavailableError{Op: "ensure schema", Err: err}
	}
	if exists {
		return false, nil
	}
	if _, err := r.DB.ExecContext(ctx, createTripTableSQL); err != nil {
		return false, domain.StorageUnavailableError{Op: "ensure schema", Err: err}
	}
	return true, nil
}

// Insert validates in and appends it. Invalid input never reaches the
// database.
func (r TripRecordRepository) Insert(ctx context.Context, in models.TripRecordInput) (models.TripRecord, error) {
	rec, err := in.Validate()
	if err != nil {
		return models.TripRecord{}, err
	}
	if r.DB == nil {
		return models.TripRecord{}, domain.StorageUnavailableError{Op: "insert", Err: errNoDB}
	}

	// DATETIME keeps whole seconds.
	rec.Timestamp = rec.Timestamp.Truncate(time.Second).In(time.Local)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, insertTripSQL, rec.Timestamp, rec.BlinkCount, rec.HeadNodCount, rec.YawnCount)
	if err != nil {
		return models.TripRecord{}, domain.StorageUnavailableError{Op: "insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TripRecord{}, domain.StorageUnavailableError{Op: "insert", Err: err}
	}
	rec.ID = id
	return rec, nil
}

// ListAll returns every trip in insertion order. An empty table yields an
// empty, non-nil slice.
func (r TripRecordRepository) ListAll(ctx context.Context) ([]models.TripRecord, error) {
	if r.DB == nil {
		return nil, domain.StorageUnavailableError{Op: "list all", Err: errNoDB}
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, listTripsSQL)
	if err != nil {
		return nil, domain.StorageUnavailableError{Op: "list all", Err: err}
	}
	defer rows.Close()

	out := []models.TripRecord{}
	for rows.Next() {
		var rec models.TripRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&rec.BlinkCount,
			&rec.HeadNodCount,
			&rec.YawnCount,
		); err != nil {
			return nil, domain.StorageUnavailableError{Op: "list all", Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageUnavailableError{Op: "list all", Err: err}
	}
	return out, nil
}

func (r TripRecordRepository) Count(ctx context.Context) (int64, error) {
	if r.DB == nil {
		return 0, domain.StorageUnavailableError{Op: "count", Err: errNoDB}
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.DB.QueryRowContext(ctx, countTripsSQL).Scan(&n); err != nil {
		return 0, domain.StorageUnavailableError{Op: "count", Err: err}
	}
	return n, nil
}

// Ping checks that the store is reachable.
func (r TripRecordRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return domain.StorageUnavailableError{Op: "ping", Err: errNoDB}
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.DB.PingContext(ctx); err != nil {
		return domain.StorageUnavailableError{Op: "ping", Err: err}
	}
	return nil
}
