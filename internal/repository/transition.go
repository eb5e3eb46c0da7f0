package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-platform/internal/domain"
)

// TransitionRepo stores the rider transition audit log.
type TransitionRepo struct {
	db *pgxpool.Pool
}

// NewTransitionRepo creates a new TransitionRepo.
func NewTransitionRepo(db *pgxpool.Pool) *TransitionRepo {
	return &TransitionRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *TransitionRepo) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Insert writes a transition with its item lines in one transaction.
func (r *TransitionRepo) Insert(ctx context.Context, rec domain.TransitionRecord) error {
	uid, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("transition id %q: %w", rec.ID, err)
	}
	id := [16]byte(uid)

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            INSERT INTO rider_transitions
                (id, delivery_id, order_id, supplier_id, rider_id, action,
                 from_status, to_status, reason, outcome, error, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        `, id, rec.DeliveryID, rec.OrderID, rec.SupplierID, rec.RiderID, string(rec.Action),
			string(rec.From), string(rec.To), rec.Reason, string(rec.Outcome), rec.Error, rec.CreatedAt)
		if err != nil {
			return classify(err, "insert transition "+rec.ID)
		}

		if len(rec.Items) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(rec.Items))
		for i, it := range rec.Items {
			rows = append(rows, []any{id, int32(i), it.ItemID, string(it.Result)})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"rider_transition_items"},
			[]string{"transition_id", "position", "item_id", "result"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert transition items %s: %w", rec.ID, err)
		}
		return nil
	})
}

// ListByDelivery returns the latest transitions of a piece, newest first.
func (r *TransitionRepo) ListByDelivery(ctx context.Context, deliveryID string, limit int) ([]domain.TransitionRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id::text, delivery_id, order_id, supplier_id, rider_id, action,
               from_status, to_status, reason, outcome, error, created_at
        FROM rider_transitions
        WHERE delivery_id = $1
        ORDER BY created_at DESC, id
        LIMIT $2
    `, deliveryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transitions %s: %w", deliveryID, err)
	}
	defer rows.Close()

	out := make([]domain.TransitionRecord, 0)
	index := make(map[string]int)
	for rows.Next() {
		var rec domain.TransitionRecord
		if err := rows.Scan(&rec.ID, &rec.DeliveryID, &rec.OrderID, &rec.SupplierID, &rec.RiderID, &rec.Action,
			&rec.From, &rec.To, &rec.Reason, &rec.Outcome, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, err
		}
		index[rec.ID] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, rec := range out {
		ids = append(ids, rec.ID)
	}
	itemRows, err := r.db.Query(ctx, `
        SELECT transition_id::text, item_id, result
        FROM rider_transition_items
        WHERE transition_id::text = ANY($1)
        ORDER BY transition_id, position
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("list transition items %s: %w", deliveryID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			tid string
			it  domain.TransitionItem
		)
		if err := itemRows.Scan(&tid, &it.ItemID, &it.Result); err != nil {
			return nil, err
		}
		if i, ok := index[tid]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}
