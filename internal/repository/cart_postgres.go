package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/lib/pq"
)

// UpsertLine inserts a new cart line or folds the quantity into the
// existing line for the same (user, product) pair. The ON CONFLICT arm is
// what gives adds their merge semantics, and it rides on the unique index
// so two racing first-adds can never leave two lines behind.
func (r *Repository) UpsertLine(ctx context.Context, userID, productID int64, quantity int) error {
	query := `INSERT INTO cart_lines (user_id, product_id, quantity, created_at)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity`

	_, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// product row vanished between catalog lookup and insert
			return ErrProductNotFound
		}
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// GetSnapshot joins the user's lines with live product data. Rows come back
// in line-id order, which is insertion order for the serial key.
func (r *Repository) GetSnapshot(ctx context.Context, userID int64) (*domain.CartSnapshot, error) {
	query := `SELECT cl.id, cl.product_id, p.name, p.price, p.image_url, cl.quantity
	          FROM cart_lines cl
	          JOIN products p ON p.id = cl.product_id
	          WHERE cl.user_id = $1
	          ORDER BY cl.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	snapshot := &domain.CartSnapshot{
		UserID:     userID,
		Items:      []domain.SnapshotItem{},
		CapturedAt: time.Now(),
	}

	for rows.Next() {
		var item domain.SnapshotItem
		if err := rows.Scan(
			&item.LineID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.ImageURL,
			&item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		item.Subtotal = item.UnitPrice * float64(item.Quantity)
		snapshot.Total += item.Subtotal
		snapshot.Items = append(snapshot.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshot, nil
}

// RemoveLine deletes a line only when it belongs to the requesting user.
// A missing line and a foreign-owned line are indistinguishable to the
// caller; both report ErrLineNotFound.
func (r *Repository) RemoveLine(ctx context.Context, userID, lineID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart line rows affected: %w", err)
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

// CheckoutCart computes the final total and clears every line of the user's
// cart inside one transaction, so a failure along the way never leaves a
// partially cleared cart. Returns ErrCartEmpty without touching any rows
// when there is nothing to check out.
func (r *Repository) CheckoutCart(ctx context.Context, userID int64) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT cl.quantity, p.price
	          FROM cart_lines cl
	          JOIN products p ON p.id = cl.product_id
	          WHERE cl.user_id = $1
	          FOR UPDATE OF cl`

	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("query cart for checkout: %w", err)
	}

	var total float64
	var lineCount int
	for rows.Next() {
		var quantity int
		var price float64
		if err := rows.Scan(&quantity, &price); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan checkout line: %w", err)
		}
		total += price * float64(quantity)
		lineCount++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	if lineCount == 0 {
		return 0, ErrCartEmpty
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout: %w", err)
	}
	return total, nil
}
