package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rechesh-io/rechesh/internal/purchase"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectStageColumns = `s.id, s.purchase_id, s.name, s.priority, s.value, s.completion_date`

func (s *Store) GetPurchase(ctx context.Context, id int64) (*purchase.Purchase, error) {
	query := `
		SELECT pc.id, pc.emf_id, pc.purpose_id, pc.creation_time,
			pc.order_id, pc.order_creation_date, pc.demand_id, pc.demand_creation_date,
			pc.bikushit_id, pc.bikushit_creation_date
		FROM purchases pc
		WHERE pc.id = $1`

	var p purchase.Purchase

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.EmfID, &p.PurposeID, &p.CreationTime,
		&p.OrderID, &p.OrderCreationDate, &p.DemandID, &p.DemandCreationDate,
		&p.BikushitID, &p.BikushitCreationDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchase.ErrNotFound
		}

		return nil, fmt.Errorf("getting purchase: %w", err)
	}

	if p.Stages, err = s.listStages(ctx, id); err != nil {
		return nil, err
	}

	if p.Costs, err = s.listCosts(ctx, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) listStages(ctx context.Context, purchaseID int64) ([]purchase.Stage, error) {
	query := `SELECT ` + selectStageColumns + `
		FROM stages s
		WHERE s.purchase_id = $1
		ORDER BY s.priority ASC, s.id ASC`

	rows, err := s.db.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []purchase.Stage

	for rows.Next() {
		var stage purchase.Stage

		err := rows.Scan(
			&stage.ID, &stage.PurchaseID, &stage.Name, &stage.Priority,
			&stage.Value, &stage.CompletionDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stage: %w", err)
		}

		stages = append(stages, stage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}

	return stages, nil
}

func (s *Store) listCosts(ctx context.Context, purchaseID int64) ([]purchase.Cost, error) {
	query := `
		SELECT c.id, c.purchase_id, c.currency, c.amount
		FROM costs c
		WHERE c.purchase_id = $1
		ORDER BY c.id ASC`

	rows, err := s.db.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("listing costs: %w", err)
	}
	defer rows.Close()

	var costs []purchase.Cost

	for rows.Next() {
		var cost purchase.Cost

		if err := rows.Scan(&cost.ID, &cost.PurchaseID, &cost.Currency, &cost.Amount); err != nil {
			return nil, fmt.Errorf("scanning cost: %w", err)
		}

		costs = append(costs, cost)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating costs: %w", err)
	}

	return costs, nil
}

func (s *Store) GetStage(ctx context.Context, id int64) (*purchase.Stage, error) {
	query := `SELECT ` + selectStageColumns + `
		FROM stages s
		WHERE s.id = $1`

	var stage purchase.Stage

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&stage.ID, &stage.PurchaseID, &stage.Name, &stage.Priority,
		&stage.Value, &stage.CompletionDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchase.ErrStageNotFound
		}

		return nil, fmt.Errorf("getting stage: %w", err)
	}

	return &stage, nil
}

// UpdateStage writes the stage and touches the owning purpose's
// last_modified in the same transaction, since stages are part of the
// purpose aggregate.
func (s *Store) UpdateStage(ctx context.Context, stage *purchase.Stage) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning stage update: %w", err)
	}
	defer dbTx.Rollback()

	stageQuery := `
		UPDATE stages
		SET value = $1, completion_date = $2
		WHERE id = $3
	`
	if _, err := dbTx.ExecContext(ctx, stageQuery, stage.Value, stage.CompletionDate, stage.ID); err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}

	touchQuery := `
		UPDATE purposes
		SET last_modified = NOW()
		WHERE id = (SELECT purpose_id FROM purchases WHERE id = $1)
	`
	if _, err := dbTx.ExecContext(ctx, touchQuery, stage.PurchaseID); err != nil {
		return fmt.Errorf("touching owning purpose: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing stage update: %w", err)
	}

	return nil
}
