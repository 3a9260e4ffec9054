package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rechesh-io/rechesh/internal/hierarchy"
	"github.com/rechesh-io/rechesh/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectHierarchyColumns = `h.id, h.parent_id, h.type, h.name`

func scanHierarchy(s scanner) (*hierarchy.Hierarchy, error) {
	var h hierarchy.Hierarchy

	var typeStr string

	if err := s.Scan(&h.ID, &h.ParentID, &typeStr, &h.Name); err != nil {
		return nil, err
	}

	h.Type = hierarchy.Type(typeStr)

	return &h, nil
}

func (s *Store) CreateHierarchy(ctx context.Context, h *hierarchy.Hierarchy) error {
	query := `
		INSERT INTO hierarchies (parent_id, type, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, h.ParentID, h.Type, h.Name).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("creating hierarchy: %w", err)
	}

	return nil
}

func (s *Store) GetHierarchy(ctx context.Context, id int64) (*hierarchy.Hierarchy, error) {
	query := `SELECT ` + selectHierarchyColumns + `
		FROM hierarchies h
		WHERE h.id = $1`

	h, err := scanHierarchy(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, hierarchy.ErrNotFound
		}

		return nil, fmt.Errorf("getting hierarchy: %w", err)
	}

	return h, nil
}

func (s *Store) ListHierarchies(ctx context.Context, filter hierarchy.ListFilter, page pagination.Params) ([]*hierarchy.Hierarchy, int64, error) {
	where := " WHERE 1=1"

	var args []any

	argIdx := 1

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}

		where += fmt.Sprintf(" AND h.type = ANY($%d)", argIdx)

		args = append(args, types)
		argIdx++
	}

	if filter.RootOnly {
		where += " AND h.parent_id IS NULL"
	} else if filter.ParentID != nil {
		where += fmt.Sprintf(" AND h.parent_id = $%d", argIdx)

		args = append(args, *filter.ParentID)
		argIdx++
	}

	if filter.NameContains != "" {
		where += fmt.Sprintf(" AND h.name ILIKE $%d", argIdx)

		args = append(args, "%"+filter.NameContains+"%")
		argIdx++
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hierarchies h"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting hierarchies: %w", err)
	}

	query := `SELECT ` + selectHierarchyColumns + ` FROM hierarchies h` + where +
		fmt.Sprintf(" ORDER BY h.name ASC, h.id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, page.Limit(), page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing hierarchies: %w", err)
	}
	defer rows.Close()

	hs, err := collectHierarchies(rows)
	if err != nil {
		return nil, 0, err
	}

	return hs, total, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*hierarchy.Hierarchy, error) {
	query := `SELECT ` + selectHierarchyColumns + `
		FROM hierarchies h
		ORDER BY h.name ASC, h.id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing hierarchies: %w", err)
	}
	defer rows.Close()

	return collectHierarchies(rows)
}

func (s *Store) ListChildren(ctx context.Context, parentID int64) ([]*hierarchy.Hierarchy, error) {
	query := `SELECT ` + selectHierarchyColumns + `
		FROM hierarchies h
		WHERE h.parent_id = $1
		ORDER BY h.name ASC, h.id ASC`

	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing children: %w", err)
	}
	defer rows.Close()

	return collectHierarchies(rows)
}

// DescendantIDs returns the seed ids plus every transitive descendant.
func (s *Store) DescendantIDs(ctx context.Context, ids []int64) ([]int64, error) {
	query := `
		WITH RECURSIVE descendants AS (
			SELECT id FROM hierarchies WHERE id = ANY($1)
			UNION
			SELECT h.id FROM hierarchies h
			JOIN descendants d ON h.parent_id = d.id
		)
		SELECT id FROM descendants
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("expanding descendants: %w", err)
	}
	defer rows.Close()

	var out []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning descendant id: %w", err)
		}

		out = append(out, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating descendant rows: %w", err)
	}

	return out, nil
}

func collectHierarchies(rows *sql.Rows) ([]*hierarchy.Hierarchy, error) {
	var hs []*hierarchy.Hierarchy

	for rows.Next() {
		h, err := scanHierarchy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning hierarchy: %w", err)
		}

		hs = append(hs, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hierarchy rows: %w", err)
	}

	return hs, nil
}

type hierarchyTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (hierarchy.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning hierarchy tx: %w", err)
	}

	return &hierarchyTx{tx: dbTx}, nil
}

func (htx *hierarchyTx) Commit() error   { return htx.tx.Commit() }
func (htx *hierarchyTx) Rollback() error { return htx.tx.Rollback() }

func (htx *hierarchyTx) GetHierarchy(ctx context.Context, id int64) (*hierarchy.Hierarchy, error) {
	query := `SELECT ` + selectHierarchyColumns + `
		FROM hierarchies h
		WHERE h.id = $1`

	h, err := scanHierarchy(htx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, hierarchy.ErrNotFound
		}

		return nil, fmt.Errorf("getting hierarchy: %w", err)
	}

	return h, nil
}

// AncestorIDs walks from the node up to its root, the node itself
// included.
func (htx *hierarchyTx) AncestorIDs(ctx context.Context, id int64) ([]int64, error) {
	query := `
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id FROM hierarchies WHERE id = $1
			UNION
			SELECT h.id, h.parent_id FROM hierarchies h
			JOIN ancestors a ON a.parent_id = h.id
		)
		SELECT id FROM ancestors
	`

	rows, err := htx.tx.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("walking ancestors: %w", err)
	}
	defer rows.Close()

	var out []int64

	for rows.Next() {
		var ancestorID int64
		if err := rows.Scan(&ancestorID); err != nil {
			return nil, fmt.Errorf("scanning ancestor id: %w", err)
		}

		out = append(out, ancestorID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ancestor rows: %w", err)
	}

	return out, nil
}

func (htx *hierarchyTx) UpdateHierarchy(ctx context.Context, h *hierarchy.Hierarchy) error {
	query := `
		UPDATE hierarchies
		SET parent_id = $1, type = $2, name = $3
		WHERE id = $4
	`

	if _, err := htx.tx.ExecContext(ctx, query, h.ParentID, h.Type, h.Name, h.ID); err != nil {
		return fmt.Errorf("updating hierarchy: %w", err)
	}

	return nil
}

func (htx *hierarchyTx) HasChildren(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := htx.tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM hierarchies WHERE parent_id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking children: %w", err)
	}

	return exists, nil
}

// PurposeRefCount counts purposes pointing directly at this node.
// Descendant references do not count.
func (htx *hierarchyTx) PurposeRefCount(ctx context.Context, id int64) (int64, error) {
	var count int64

	err := htx.tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM purposes WHERE hierarchy_id = $1", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting purpose references: %w", err)
	}

	return count, nil
}

func (htx *hierarchyTx) DeleteHierarchy(ctx context.Context, id int64) error {
	if _, err := htx.tx.ExecContext(ctx, "DELETE FROM hierarchies WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting hierarchy: %w", err)
	}

	return nil
}
