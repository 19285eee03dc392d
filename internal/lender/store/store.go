package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/finplan/internal/lender"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindNames(ctx context.Context, ids []string) (map[string]string, error) {
	query := `
		SELECT id, display_name
		FROM lenders
		WHERE id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("finding lender names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning lender: %w", err)
		}

		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lender rows: %w", err)
	}

	return names, nil
}

func (s *Store) Upsert(ctx context.Context, l lender.Lender) error {
	query := `
		INSERT INTO lenders (id, display_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name
	`

	if _, err := s.db.ExecContext(ctx, query, l.ID, l.DisplayName); err != nil {
		return fmt.Errorf("upserting lender: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]lender.Lender, error) {
	query := `SELECT id, display_name, created_at FROM lenders ORDER BY display_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing lenders: %w", err)
	}
	defer rows.Close()

	var lenders []lender.Lender

	for rows.Next() {
		var l lender.Lender
		if err := rows.Scan(&l.ID, &l.DisplayName, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lender: %w", err)
		}

		lenders = append(lenders, l)
	}

	return lenders, rows.Err()
}
