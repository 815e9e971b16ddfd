package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad/bookstore/internal/domain"
)

var bookColumns = []string{"id", "title", "author", "isbn", "price", "stock", "year"}

// BookStore is the durable side of the catalog. All reads are current
// as of query time; caching happens a layer above.
type BookStore struct {
	pool *pgxpool.Pool
	sq   squirrel.StatementBuilderType
}

func NewBookStore(pool *pgxpool.Pool) *BookStore {
	return &BookStore{
		pool: pool,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *BookStore) GetByID(ctx context.Context, id int64) (domain.Book, bool, error) {
	sql, args, err := s.sq.Select(bookColumns...).From("books").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("build book select: %w", err)
	}

	var b domain.Book
	err = s.pool.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.Stock, &b.Year,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Book{}, false, nil
	}
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("select book: %w", err)
	}
	return b, true, nil
}

func (s *BookStore) GetAll(ctx context.Context) ([]domain.Book, error) {
	sql, args, err := s.sq.Select(bookColumns...).From("books").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books select: %w", err)
	}
	return s.queryBooks(ctx, sql, args)
}

func (s *BookStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// Exists avoids loading the row; staleness matters more than the
// saved round trip here, so this never consults the cache layer.
func (s *BookStore) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("book exists: %w", err)
	}
	return ok, nil
}

// Insert persists the book and writes the assigned id back into b.
func (s *BookStore) Insert(ctx context.Context, b *domain.Book) error {
	sql, args, err := s.sq.Insert("books").
		Columns("title", "author", "isbn", "price", "stock", "year").
		Values(b.Title, b.Author, b.ISBN, b.Price, b.Stock, b.Year).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build book insert: %w", err)
	}
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Update replaces every mutable field. Returns false when no row with
// that id exists.
func (s *BookStore) Update(ctx context.Context, b domain.Book) (bool, error) {
	sql, args, err := s.sq.Update("books").
		Set("title", b.Title).
		Set("author", b.Author).
		Set("isbn", b.ISBN).
		Set("price", b.Price).
		Set("stock", b.Stock).
		Set("year", b.Year).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build book update: %w", err)
	}
	ct, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("update book: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes directly by predicate without loading the entity.
func (s *BookStore) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := s.sq.Delete("books").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build book delete: %w", err)
	}
	ct, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (s *BookStore) QueryPage(ctx context.Context, offset, limit int) ([]domain.Book, error) {
	sql, args, err := s.sq.Select(bookColumns...).From("books").
		OrderBy("id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books page: %w", err)
	}
	return s.queryBooks(ctx, sql, args)
}

func (s *BookStore) queryBooks(ctx context.Context, sql string, args []any) ([]domain.Book, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.Stock, &b.Year); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
