package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjperez2704/deli-back-office/internal/apperr"
	"github.com/mjperez2704/deli-back-office/internal/domain"
)

// DriverRepo represents driver repository.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

const driverColumns = `id, name, phone, online, lat, lng, rating, completed_deliveries`

func scanDriver(row interface{ Scan(...any) error }) (*domain.Driver, error) {
	var (
		d        domain.Driver
		lat, lng *float64
	)
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Online, &lat, &lng, &d.Rating, &d.CompletedDeliveries)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		d.Location = &domain.Point{Lat: *lat, Lng: *lng}
	}
	return &d, nil
}

// Get - returns driver by its ID, or nil when absent.
func (r *DriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return d, nil
}

// Create - creates a new driver. New drivers start offline with the baseline rating.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO drivers(name, phone) VALUES($1, $2) RETURNING id`,
		d.Name, d.Phone).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create driver: %w", err)
	}
	return id, nil
}

// List returns drivers ordered by id, optionally filtered by online flag.
func (r *DriverRepo) List(ctx context.Context, online *bool, limit, offset *int) ([]domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers`
	args := make([]any, 0, 3)
	if online != nil {
		args = append(args, *online)
		q += fmt.Sprintf(" WHERE online = $%d", len(args))
	}
	q += " ORDER BY id"
	if limit != nil {
		args = append(args, *limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ListOnline returns online drivers with a known location, ordered by id.
// The stable ordering keeps nearest-driver ties deterministic.
func (r *DriverRepo) ListOnline(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+driverColumns+`
        FROM drivers
        WHERE online = TRUE
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("list online drivers: %w", err)
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// UpdatePartial applies a partial update to a driver and returns true if a row was affected.
func (r *DriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET
            name   = COALESCE($2, name),
            phone  = COALESCE($3, phone),
            online = COALESCE($4, online),
            rating = COALESCE($5, rating),
            updated_at = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.Online, u.Rating)
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update driver %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateLocation stores a driver's reported position and returns true if a row was affected.
func (r *DriverRepo) UpdateLocation(ctx context.Context, id int64, p domain.Point) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET lat = $2, lng = $3, updated_at = now()
        WHERE id = $1
    `, id, p.Lat, p.Lng)
	if err != nil {
		return false, fmt.Errorf("update driver location %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
