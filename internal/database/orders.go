package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad/bookstore/internal/domain"
)

var orderColumns = []string{
	"id", "created_at", "subtotal", "discount_percent",
	"discount_amount", "tax_rate", "tax_amount", "total",
}

type OrderStore struct {
	pool *pgxpool.Pool
	sq   squirrel.StatementBuilderType
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{
		pool: pool,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InsertOrderWithItems persists the order and its lines as one atomic
// unit and writes the assigned ids back into o.
func (s *OrderStore) InsertOrderWithItems(ctx context.Context, o *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := s.sq.Insert("orders").
		Columns("created_at", "subtotal", "discount_percent", "discount_amount", "tax_rate", "tax_amount", "total").
		Values(o.CreatedAt, o.Subtotal, o.DiscountPercent, o.DiscountAmount, o.TaxRate, o.TaxAmount, o.Total).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build order insert: %w", err)
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		sql, args, err := s.sq.Insert("order_items").
			Columns("order_id", "product_name", "quantity", "unit_price", "line_total").
			Values(o.ID, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build item insert: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&it.ID); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id int64) (domain.Order, bool, error) {
	sql, args, err := s.sq.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("build order select: %w", err)
	}

	var o domain.Order
	err = s.pool.QueryRow(ctx, sql, args...).Scan(
		&o.ID, &o.CreatedAt, &o.Subtotal, &o.DiscountPercent,
		&o.DiscountAmount, &o.TaxRate, &o.TaxAmount, &o.Total,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}

	items, err := s.itemsFor(ctx, []int64{o.ID})
	if err != nil {
		return domain.Order{}, false, err
	}
	o.Items = items[o.ID]
	return o, true, nil
}

// QueryPage returns orders newest first, items included. A page past
// the end of the data is an empty slice, not an error.
func (s *OrderStore) QueryPage(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	sql, args, err := s.sq.Select(orderColumns...).From("orders").
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders page: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.CreatedAt, &o.Subtotal, &o.DiscountPercent,
			&o.DiscountAmount, &o.TaxRate, &o.TaxAmount, &o.Total,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	items, err := s.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// SummarizeRange aggregates in SQL over [from, to], either bound open.
func (s *OrderStore) SummarizeRange(ctx context.Context, from, to *time.Time) (domain.OrderTotals, error) {
	q := s.sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(total), 0)",
		"COALESCE(SUM(tax_amount), 0)",
		"COALESCE(SUM(discount_amount), 0)",
	).From("orders")
	if from != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.OrderTotals{}, fmt.Errorf("build summary: %w", err)
	}

	var t domain.OrderTotals
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&t.Orders, &t.Revenue, &t.Tax, &t.Discount); err != nil {
		return domain.OrderTotals{}, fmt.Errorf("select summary: %w", err)
	}
	return t, nil
}

// GroupItemsByProduct ranks product groups by revenue, quantity as the
// tie-break, both descending.
func (s *OrderStore) GroupItemsByProduct(ctx context.Context, limit int) ([]domain.TopItem, error) {
	sql, args, err := s.sq.Select(
		"product_name",
		"SUM(quantity) AS total_quantity",
		"SUM(line_total) AS total_revenue",
	).From("order_items").
		GroupBy("product_name").
		OrderBy("total_revenue DESC", "total_quantity DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top items: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select top items: %w", err)
	}
	defer rows.Close()

	var top []domain.TopItem
	for rows.Next() {
		var t domain.TopItem
		if err := rows.Scan(&t.ProductName, &t.TotalQuantity, &t.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (s *OrderStore) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	sql, args, err := s.sq.Select("id", "order_id", "product_name", "quantity", "unit_price", "line_total").
		From("order_items").
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items select: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		var orderID int64
		if err := rows.Scan(&it.ID, &orderID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items[orderID] = append(items[orderID], it)
	}
	return items, rows.Err()
}
