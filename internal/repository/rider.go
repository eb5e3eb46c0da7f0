package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-platform/internal/domain"
)

// RiderRepo represents rider repository.
type RiderRepo struct{ db *pgxpool.Pool }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *pgxpool.Pool) *RiderRepo { return &RiderRepo{db: db} }

// Get - returns rider by its ID.
func (r *RiderRepo) Get(ctx context.Context, id int64) (*domain.Rider, error) {
	var rd domain.Rider
	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, status, transport_type FROM riders WHERE id=$1`, id,
	).Scan(&rd.ID, &rd.Name, &rd.Phone, &rd.Status, &rd.TransportType)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, classify(err, fmt.Sprintf("get rider %d", id))
	}
	return &rd, nil
}

// List returns riders ordered by id. If limit/offset are nil, returns the full list.
func (r *RiderRepo) List(ctx context.Context, limit, offset *int) ([]domain.Rider, error) {
	q := `SELECT id, name, phone, status, transport_type FROM riders ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	defer rows.Close()
	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	out := make([]domain.Rider, 0, capacity)
	for rows.Next() {
		var rd domain.Rider
		if err := rows.Scan(&rd.ID, &rd.Name, &rd.Phone, &rd.Status, &rd.TransportType); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

// Create - creates a new rider.
func (r *RiderRepo) Create(ctx context.Context, rd *domain.Rider) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO riders(name,phone,status,transport_type) VALUES($1,$2,$3,$4) RETURNING id`,
		rd.Name, rd.Phone, string(rd.Status), string(rd.TransportType)).Scan(&id)
	if err != nil {
		return 0, classify(err, "create rider")
	}
	return id, nil
}

// UpdatePartial applies a partial update to a rider and returns true if a row was affected.
func (r *RiderRepo) UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE riders
        SET
            name           = COALESCE($2, name),
            phone          = COALESCE($3, phone),
            status         = COALESCE($4, status),
            transport_type = COALESCE($5, transport_type),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, textPtr(u.Status), textPtr(u.TransportType))

	if err != nil {
		return false, classify(err, fmt.Sprintf("update rider %d", u.ID))
	}
	return ct.RowsAffected() > 0, nil
}

func textPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
