package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
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

// querier is satisfied by both *sql.DB and *sql.Tx, so the aggregate
// loading helpers serve reads inside and outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectPurposeColumns = `
	p.id, p.hierarchy_id, p.expected_delivery, p.last_modified, p.comments,
	p.status, p.creation_time, p.supplier, p.content, p.description,
	p.service_type, p.is_flagged
`

func scanPurpose(s scanner) (*purpose.Purpose, error) {
	var p purpose.Purpose

	var statusStr string

	if err := s.Scan(
		&p.ID, &p.HierarchyID, &p.ExpectedDelivery, &p.LastModified, &p.Comments,
		&statusStr, &p.CreationTime, &p.Supplier, &p.Content, &p.Description,
		&p.ServiceType, &p.IsFlagged,
	); err != nil {
		return nil, err
	}

	p.Status = purpose.Status(statusStr)

	return &p, nil
}

func (s *Store) GetPurpose(ctx context.Context, id int64) (*purpose.Purpose, error) {
	return getPurpose(ctx, s.db, id)
}

func (s *Store) PurposeExists(ctx context.Context, id int64) (bool, error) {
	return purposeExists(ctx, s.db, id)
}

func getPurpose(ctx context.Context, q querier, id int64) (*purpose.Purpose, error) {
	query := `SELECT ` + selectPurposeColumns + `
		FROM purposes p
		WHERE p.id = $1`

	p, err := scanPurpose(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purpose.ErrNotFound
		}

		return nil, fmt.Errorf("getting purpose: %w", err)
	}

	if err := attachAggregates(ctx, q, []*purpose.Purpose{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func purposeExists(ctx context.Context, q querier, id int64) (bool, error) {
	var exists bool

	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM purposes WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking purpose: %w", err)
	}

	return exists, nil
}

// buildFilter renders the WHERE clause shared by the count, list and
// export queries. Values inside one filter OR, filters AND.
func buildFilter(q purpose.Query) (string, []any) {
	where := " WHERE 1=1"

	var args []any

	argIdx := 1

	f := q.Filter

	if len(f.HierarchyIDs) > 0 {
		where += fmt.Sprintf(" AND p.hierarchy_id = ANY($%d)", argIdx)

		args = append(args, f.HierarchyIDs)
		argIdx++
	}

	if len(f.EmfIDs) > 0 {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM purchases pc WHERE pc.purpose_id = p.id AND pc.emf_id = ANY($%d))", argIdx)

		args = append(args, f.EmfIDs)
		argIdx++
	}

	if len(f.Suppliers) > 0 {
		where += fmt.Sprintf(" AND p.supplier = ANY($%d)", argIdx)

		args = append(args, f.Suppliers)
		argIdx++
	}

	if len(f.ServiceTypes) > 0 {
		where += fmt.Sprintf(" AND p.service_type = ANY($%d)", argIdx)

		args = append(args, f.ServiceTypes)
		argIdx++
	}

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}

		where += fmt.Sprintf(" AND p.status = ANY($%d)", argIdx)

		args = append(args, statuses)
		argIdx++
	}

	if f.IsFlagged != nil {
		where += fmt.Sprintf(" AND p.is_flagged = $%d", argIdx)

		args = append(args, *f.IsFlagged)
		argIdx++
	}

	if f.StartDate != nil {
		where += fmt.Sprintf(" AND p.creation_time::date >= $%d::date", argIdx)

		args = append(args, *f.StartDate)
		argIdx++
	}

	if f.EndDate != nil {
		where += fmt.Sprintf(" AND p.creation_time::date <= $%d::date", argIdx)

		args = append(args, *f.EndDate)
		argIdx++
	}

	for _, term := range q.SearchTerms {
		where += fmt.Sprintf(" AND (p.description ILIKE $%d OR p.content ILIKE $%d"+
			" OR EXISTS (SELECT 1 FROM purchases pc WHERE pc.purpose_id = p.id AND pc.emf_id ILIKE $%d))",
			argIdx, argIdx, argIdx)

		args = append(args, "%"+term+"%")
		argIdx++
	}

	return where, args
}

func orderBy(q purpose.Query) string {
	field := "p.creation_time"

	switch q.SortBy {
	case purpose.SortLastModified:
		field = "p.last_modified"
	case purpose.SortExpectedDelivery:
		field = "p.expected_delivery"
	}

	dir := "DESC"
	if q.SortOrder == purpose.SortAsc {
		dir = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, p.id ASC", field, dir)
}

func (s *Store) ListPurposes(ctx context.Context, q purpose.Query, page pagination.Params) ([]*purpose.Purpose, int64, error) {
	where, args := buildFilter(q)

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM purposes p"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting purposes: %w", err)
	}

	argIdx := len(args) + 1
	query := `SELECT ` + selectPurposeColumns + ` FROM purposes p` + where + orderBy(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, page.Limit(), page.Offset())

	purposes, err := s.queryPurposes(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return purposes, total, nil
}

func (s *Store) ListAllPurposes(ctx context.Context, q purpose.Query) ([]*purpose.Purpose, error) {
	where, args := buildFilter(q)

	query := `SELECT ` + selectPurposeColumns + ` FROM purposes p` + where + orderBy(q)

	return s.queryPurposes(ctx, query, args)
}

func (s *Store) queryPurposes(ctx context.Context, query string, args []any) ([]*purpose.Purpose, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purposes: %w", err)
	}
	defer rows.Close()

	var purposes []*purpose.Purpose

	for rows.Next() {
		p, err := scanPurpose(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purpose: %w", err)
		}

		purposes = append(purposes, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purpose rows: %w", err)
	}

	if err := attachAggregates(ctx, s.db, purposes); err != nil {
		return nil, err
	}

	return purposes, nil
}

// attachAggregates loads purchases, stages, costs and file links for a
// batch of purposes in four queries, then stitches them together.
func attachAggregates(ctx context.Context, q querier, purposes []*purpose.Purpose) error {
	if len(purposes) == 0 {
		return nil
	}

	byID := make(map[int64]*purpose.Purpose, len(purposes))
	purposeIDs := make([]int64, len(purposes))

	for i, p := range purposes {
		byID[p.ID] = p
		purposeIDs[i] = p.ID
	}

	purchases, purchaseIDs, err := loadPurchases(ctx, q, purposeIDs)
	if err != nil {
		return err
	}

	if err := loadStages(ctx, q, purchases, purchaseIDs); err != nil {
		return err
	}

	if err := loadCosts(ctx, q, purchases, purchaseIDs); err != nil {
		return err
	}

	for _, id := range purchaseIDs {
		pc := purchases[id]
		parent := byID[pc.PurposeID]
		parent.Purchases = append(parent.Purchases, *pc)
	}

	return loadFileLinks(ctx, q, byID, purposeIDs)
}

func loadPurchases(ctx context.Context, q querier, purposeIDs []int64) (map[int64]*purchase.Purchase, []int64, error) {
	query := `
		SELECT pc.id, pc.emf_id, pc.purpose_id, pc.creation_time,
			pc.order_id, pc.order_creation_date, pc.demand_id, pc.demand_creation_date,
			pc.bikushit_id, pc.bikushit_creation_date
		FROM purchases pc
		WHERE pc.purpose_id = ANY($1)
		ORDER BY pc.id ASC
	`

	rows, err := q.QueryContext(ctx, query, purposeIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("loading purchases: %w", err)
	}
	defer rows.Close()

	purchases := make(map[int64]*purchase.Purchase)

	var purchaseIDs []int64

	for rows.Next() {
		var pc purchase.Purchase

		if err := rows.Scan(
			&pc.ID, &pc.EmfID, &pc.PurposeID, &pc.CreationTime,
			&pc.OrderID, &pc.OrderCreationDate, &pc.DemandID, &pc.DemandCreationDate,
			&pc.BikushitID, &pc.BikushitCreationDate,
		); err != nil {
			return nil, nil, fmt.Errorf("scanning purchase: %w", err)
		}

		purchases[pc.ID] = &pc
		purchaseIDs = append(purchaseIDs, pc.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchases, purchaseIDs, nil
}

func loadStages(ctx context.Context, q querier, purchases map[int64]*purchase.Purchase, purchaseIDs []int64) error {
	if len(purchaseIDs) == 0 {
		return nil
	}

	query := `
		SELECT s.id, s.purchase_id, s.name, s.priority, s.value, s.completion_date
		FROM stages s
		WHERE s.purchase_id = ANY($1)
		ORDER BY s.priority ASC, s.id ASC
	`

	rows, err := q.QueryContext(ctx, query, purchaseIDs)
	if err != nil {
		return fmt.Errorf("loading stages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st purchase.Stage

		if err := rows.Scan(&st.ID, &st.PurchaseID, &st.Name, &st.Priority, &st.Value, &st.CompletionDate); err != nil {
			return fmt.Errorf("scanning stage: %w", err)
		}

		pc := purchases[st.PurchaseID]
		pc.Stages = append(pc.Stages, st)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating stage rows: %w", err)
	}

	return nil
}

func loadCosts(ctx context.Context, q querier, purchases map[int64]*purchase.Purchase, purchaseIDs []int64) error {
	if len(purchaseIDs) == 0 {
		return nil
	}

	query := `
		SELECT c.id, c.purchase_id, c.currency, c.amount
		FROM costs c
		WHERE c.purchase_id = ANY($1)
		ORDER BY c.id ASC
	`

	rows, err := q.QueryContext(ctx, query, purchaseIDs)
	if err != nil {
		return fmt.Errorf("loading costs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c purchase.Cost

		var currencyStr string

		if err := rows.Scan(&c.ID, &c.PurchaseID, &currencyStr, &c.Amount); err != nil {
			return fmt.Errorf("scanning cost: %w", err)
		}

		c.Currency = purchase.Currency(currencyStr)

		pc := purchases[c.PurchaseID]
		pc.Costs = append(pc.Costs, c)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating cost rows: %w", err)
	}

	return nil
}

func loadFileLinks(ctx context.Context, q querier, byID map[int64]*purpose.Purpose, purposeIDs []int64) error {
	query := `
		SELECT pf.purpose_id, pf.file_id
		FROM purpose_files pf
		WHERE pf.purpose_id = ANY($1)
		ORDER BY pf.file_id ASC
	`

	rows, err := q.QueryContext(ctx, query, purposeIDs)
	if err != nil {
		return fmt.Errorf("loading file links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var purposeID, fileID int64

		if err := rows.Scan(&purposeID, &fileID); err != nil {
			return fmt.Errorf("scanning file link: %w", err)
		}

		p := byID[purposeID]
		p.FileIDs = append(p.FileIDs, fileID)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating file link rows: %w", err)
	}

	return nil
}

func (s *Store) ListStatusHistory(ctx context.Context, purposeID int64) ([]*purpose.StatusChange, error) {
	query := `
		SELECT h.id, h.purpose_id, h.previous_status, h.new_status, h.changed_at, h.changed_by
		FROM purpose_status_history h
		WHERE h.purpose_id = $1
		ORDER BY h.changed_at DESC, h.id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, purposeID)
	if err != nil {
		return nil, fmt.Errorf("listing status history: %w", err)
	}
	defer rows.Close()

	var changes []*purpose.StatusChange

	for rows.Next() {
		var c purpose.StatusChange

		var prev sql.NullString

		var newStatus string

		if err := rows.Scan(&c.ID, &c.PurposeID, &prev, &newStatus, &c.ChangedAt, &c.ChangedBy); err != nil {
			return nil, fmt.Errorf("scanning status change: %w", err)
		}

		if prev.Valid {
			p := purpose.Status(prev.String)
			c.PreviousStatus = &p
		}

		c.NewStatus = purpose.Status(newStatus)

		changes = append(changes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status change rows: %w", err)
	}

	return changes, nil
}

type purposeTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (purpose.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning purpose tx: %w", err)
	}

	return &purposeTx{tx: dbTx}, nil
}

func (ptx *purposeTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *purposeTx) Rollback() error { return ptx.tx.Rollback() }

func (ptx *purposeTx) InsertPurpose(ctx context.Context, p *purpose.Purpose) error {
	query := `
		INSERT INTO purposes (hierarchy_id, expected_delivery, comments, status, supplier,
			content, description, service_type, is_flagged, creation_time, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, creation_time, last_modified
	`

	err := ptx.tx.QueryRowContext(ctx, query,
		p.HierarchyID,
		p.ExpectedDelivery,
		p.Comments,
		p.Status,
		p.Supplier,
		p.Content,
		p.Description,
		p.ServiceType,
		p.IsFlagged,
	).Scan(&p.ID, &p.CreationTime, &p.LastModified)
	if err != nil {
		return fmt.Errorf("creating purpose: %w", err)
	}

	return nil
}

func (ptx *purposeTx) GetPurpose(ctx context.Context, id int64) (*purpose.Purpose, error) {
	return getPurpose(ctx, ptx.tx, id)
}

func (ptx *purposeTx) PurposeExists(ctx context.Context, id int64) (bool, error) {
	return purposeExists(ctx, ptx.tx, id)
}

// UpdatePurpose writes the replaceable fields. last_modified is left to
// the explicit TouchPurpose call.
func (ptx *purposeTx) UpdatePurpose(ctx context.Context, p *purpose.Purpose) error {
	query := `
		UPDATE purposes
		SET hierarchy_id = $1, expected_delivery = $2, comments = $3, status = $4,
			supplier = $5, content = $6, description = $7, service_type = $8, is_flagged = $9
		WHERE id = $10
	`

	_, err := ptx.tx.ExecContext(ctx, query,
		p.HierarchyID,
		p.ExpectedDelivery,
		p.Comments,
		p.Status,
		p.Supplier,
		p.Content,
		p.Description,
		p.ServiceType,
		p.IsFlagged,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purpose: %w", err)
	}

	return nil
}

func (ptx *purposeTx) SetFlagged(ctx context.Context, id int64, flagged bool) error {
	if _, err := ptx.tx.ExecContext(ctx,
		"UPDATE purposes SET is_flagged = $1 WHERE id = $2", flagged, id); err != nil {
		return fmt.Errorf("setting flag: %w", err)
	}

	return nil
}

func (ptx *purposeTx) DeletePurpose(ctx context.Context, id int64) error {
	if _, err := ptx.tx.ExecContext(ctx, "DELETE FROM purposes WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting purpose: %w", err)
	}

	return nil
}

func (ptx *purposeTx) TouchPurpose(ctx context.Context, id int64) error {
	if _, err := ptx.tx.ExecContext(ctx,
		"UPDATE purposes SET last_modified = NOW() WHERE id = $1", id); err != nil {
		return fmt.Errorf("touching purpose: %w", err)
	}

	return nil
}

func (ptx *purposeTx) HierarchyExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := ptx.tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM hierarchies WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking hierarchy: %w", err)
	}

	return exists, nil
}

func (ptx *purposeTx) EmfIDExists(ctx context.Context, emfID string, excludePurchaseID *int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM purchases
			WHERE emf_id = $1 AND ($2::bigint IS NULL OR id <> $2)
		)
	`

	var exists bool
	if err := ptx.tx.QueryRowContext(ctx, query, emfID, excludePurchaseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking emf id: %w", err)
	}

	return exists, nil
}

func (ptx *purposeTx) PurchaseOwner(ctx context.Context, purchaseID int64) (int64, error) {
	var purposeID int64

	err := ptx.tx.QueryRowContext(ctx,
		"SELECT purpose_id FROM purchases WHERE id = $1", purchaseID).Scan(&purposeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, purchase.ErrNotFound
		}

		return 0, fmt.Errorf("resolving purchase owner: %w", err)
	}

	return purposeID, nil
}

func (ptx *purposeTx) InsertPurchase(ctx context.Context, purposeID int64, params purchase.Params) (int64, error) {
	query := `
		INSERT INTO purchases (emf_id, purpose_id, order_id, order_creation_date,
			demand_id, demand_creation_date, bikushit_id, bikushit_creation_date, creation_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`

	var id int64

	err := ptx.tx.QueryRowContext(ctx, query,
		params.EmfID,
		purposeID,
		params.OrderID,
		params.OrderCreationDate,
		params.DemandID,
		params.DemandCreationDate,
		params.BikushitID,
		params.BikushitCreationDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating purchase: %w", err)
	}

	return id, nil
}

func (ptx *purposeTx) UpdatePurchase(ctx context.Context, params purchase.Params) error {
	query := `
		UPDATE purchases
		SET emf_id = $1, order_id = $2, order_creation_date = $3, demand_id = $4,
			demand_creation_date = $5, bikushit_id = $6, bikushit_creation_date = $7
		WHERE id = $8
	`

	_, err := ptx.tx.ExecContext(ctx, query,
		params.EmfID,
		params.OrderID,
		params.OrderCreationDate,
		params.DemandID,
		params.DemandCreationDate,
		params.BikushitID,
		params.BikushitCreationDate,
		params.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purchase: %w", err)
	}

	return nil
}

func (ptx *purposeTx) DeletePurchases(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := ptx.tx.ExecContext(ctx, "DELETE FROM purchases WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("deleting purchases: %w", err)
	}

	return nil
}

func (ptx *purposeTx) InsertStage(ctx context.Context, purchaseID int64, params purchase.StageParams) error {
	query := `
		INSERT INTO stages (purchase_id, name, priority, value, completion_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := ptx.tx.ExecContext(ctx, query,
		purchaseID, params.Name, params.Priority, params.Value, params.CompletionDate)
	if err != nil {
		return fmt.Errorf("creating stage: %w", err)
	}

	return nil
}

func (ptx *purposeTx) UpdateStage(ctx context.Context, params purchase.StageParams) error {
	query := `
		UPDATE stages
		SET name = $1, priority = $2, value = $3, completion_date = $4
		WHERE id = $5
	`

	_, err := ptx.tx.ExecContext(ctx, query,
		params.Name, params.Priority, params.Value, params.CompletionDate, params.ID)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}

	return nil
}

func (ptx *purposeTx) DeleteStages(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := ptx.tx.ExecContext(ctx, "DELETE FROM stages WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("deleting stages: %w", err)
	}

	return nil
}

func (ptx *purposeTx) InsertCost(ctx context.Context, purchaseID int64, params purchase.CostParams) error {
	query := `
		INSERT INTO costs (purchase_id, currency, amount)
		VALUES ($1, $2, $3)
	`

	if _, err := ptx.tx.ExecContext(ctx, query, purchaseID, params.Currency, params.Amount); err != nil {
		return fmt.Errorf("creating cost: %w", err)
	}

	return nil
}

func (ptx *purposeTx) UpdateCost(ctx context.Context, params purchase.CostParams) error {
	query := `
		UPDATE costs
		SET currency = $1, amount = $2
		WHERE id = $3
	`

	if _, err := ptx.tx.ExecContext(ctx, query, params.Currency, params.Amount, params.ID); err != nil {
		return fmt.Errorf("updating cost: %w", err)
	}

	return nil
}

func (ptx *purposeTx) DeleteCosts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := ptx.tx.ExecContext(ctx, "DELETE FROM costs WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("deleting costs: %w", err)
	}

	return nil
}

func (ptx *purposeTx) FileExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := ptx.tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking file: %w", err)
	}

	return exists, nil
}

func (ptx *purposeTx) ReplaceFileLinks(ctx context.Context, purposeID int64, fileIDs []int64) error {
	if _, err := ptx.tx.ExecContext(ctx,
		"DELETE FROM purpose_files WHERE purpose_id = $1", purposeID); err != nil {
		return fmt.Errorf("clearing file links: %w", err)
	}

	for _, fileID := range fileIDs {
		if err := ptx.LinkFile(ctx, purposeID, fileID); err != nil {
			return err
		}
	}

	return nil
}

func (ptx *purposeTx) LinkFile(ctx context.Context, purposeID, fileID int64) error {
	query := `
		INSERT INTO purpose_files (purpose_id, file_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := ptx.tx.ExecContext(ctx, query, purposeID, fileID); err != nil {
		return fmt.Errorf("linking file: %w", err)
	}

	return nil
}

func (ptx *purposeTx) UnlinkFile(ctx context.Context, purposeID, fileID int64) (bool, error) {
	res, err := ptx.tx.ExecContext(ctx,
		"DELETE FROM purpose_files WHERE purpose_id = $1 AND file_id = $2", purposeID, fileID)
	if err != nil {
		return false, fmt.Errorf("unlinking file: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlinking file: %w", err)
	}

	return affected > 0, nil
}

func (ptx *purposeTx) InsertStatusChange(ctx context.Context, change *purpose.StatusChange) error {
	query := `
		INSERT INTO purpose_status_history (purpose_id, previous_status, new_status, changed_at, changed_by)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING id, changed_at
	`

	err := ptx.tx.QueryRowContext(ctx, query,
		change.PurposeID,
		change.PreviousStatus,
		change.NewStatus,
		change.ChangedBy,
	).Scan(&change.ID, &change.ChangedAt)
	if err != nil {
		return fmt.Errorf("recording status change: %w", err)
	}

	return nil
}
