package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// payload is the JSONB document holding everything a snapshot carries beyond
// the indexed columns.
type payload struct {
	DownPayments    []plan.DownPayment     `json:"down_payments"`
	PrimaryCredit   *plan.Credit           `json:"primary_credit,omitempty"`
	PersonalCredits []plan.Credit          `json:"personal_credits"`
	Expenses        *plan.ExpenseBreakdown `json:"expenses,omitempty"`
	MonthlyIncomes  []plan.MonthlyIncome   `json:"monthly_incomes"`
	Reconciliation  plan.Reconciliation    `json:"reconciliation"`
	Schedule        []plan.Segment         `json:"schedule"`
	Affordability   plan.Affordability     `json:"affordability"`
}

func encodePayload(snap *plan.Snapshot) ([]byte, error) {
	return json.Marshal(payload{
		DownPayments:    snap.Plan.DownPayments.Items(),
		PrimaryCredit:   snap.Plan.PrimaryCredit,
		PersonalCredits: snap.Plan.PersonalCredits,
		Expenses:        snap.Plan.Expenses,
		MonthlyIncomes:  snap.Plan.MonthlyIncomes,
		Reconciliation:  snap.Reconciliation,
		Schedule:        snap.Schedule,
		Affordability:   snap.Affordability,
	})
}

func decodePayload(data []byte, snap *plan.Snapshot) error {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	for _, dp := range p.DownPayments {
		if err := snap.Plan.DownPayments.Append(dp); err != nil {
			return fmt.Errorf("restoring down payment %s: %w", dp.ID, err)
		}
	}

	snap.Plan.PrimaryCredit = p.PrimaryCredit
	snap.Plan.PersonalCredits = p.PersonalCredits
	snap.Plan.Expenses = p.Expenses
	snap.Plan.MonthlyIncomes = p.MonthlyIncomes
	snap.Reconciliation = p.Reconciliation
	snap.Schedule = p.Schedule
	snap.Affordability = p.Affordability

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, owner_id, asset_type, target_price, required_funding, payload, created_at
func scanSnapshot(s scanner) (*plan.Snapshot, error) {
	var (
		snap      plan.Snapshot
		assetType string
		data      []byte
	)

	if err := s.Scan(
		&snap.Plan.ID, &snap.Plan.OwnerID, &assetType, &snap.Plan.TargetPrice,
		&snap.RequiredFunding, &data, &snap.Plan.CreatedAt,
	); err != nil {
		return nil, err
	}

	snap.Plan.AssetType = plan.AssetType(assetType)

	if err := decodePayload(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	return &snap, nil
}

const selectSnapshotColumns = `id, owner_id, asset_type, target_price, required_funding, payload, created_at`

func (s *Store) SaveSnapshot(ctx context.Context, snap *plan.Snapshot) error {
	data, err := encodePayload(snap)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	query := `
		INSERT INTO plans (owner_id, asset_type, target_price, required_funding, peak_obligation, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		snap.Plan.OwnerID,
		snap.Plan.AssetType,
		snap.Plan.TargetPrice,
		snap.RequiredFunding,
		snap.Affordability.PeakObligation,
		data,
	).Scan(&snap.Plan.ID, &snap.Plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating plan: %w", err)
	}

	return nil
}

func (s *Store) GetSnapshot(ctx context.Context, ownerID string, id uuid.UUID) (*plan.Snapshot, error) {
	query := `SELECT ` + selectSnapshotColumns + `
		FROM plans
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`

	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, plan.ErrNotFound
		}

		return nil, fmt.Errorf("getting plan: %w", err)
	}

	return snap, nil
}

func (s *Store) ListSnapshots(ctx context.Context, ownerID string) ([]*plan.Snapshot, error) {
	query := `SELECT ` + selectSnapshotColumns + `
		FROM plans
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var snaps []*plan.Snapshot

	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}

		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan rows: %w", err)
	}

	return snaps, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, ownerID string, id uuid.UUID) error {
	query := `
		UPDATE plans
		SET deleted_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, time.Now(), id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	if n == 0 {
		return plan.ErrNotFound
	}

	return nil
}
