package purpose

import (
	"context"
	"fmt"

	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purpose
type Repository interface {
	GetPurpose(ctx context.Context, id int64) (*Purpose, error)
	PurposeExists(ctx context.Context, id int64) (bool, error)
	ListPurposes(ctx context.Context, q Query, page pagination.Params) ([]*Purpose, int64, error)
	ListAllPurposes(ctx context.Context, q Query) ([]*Purpose, error)
	ListStatusHistory(ctx context.Context, purposeID int64) ([]*StatusChange, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is one aggregate write: every mutation of a purpose and its owned
// rows happens through a single transaction handle.
type Tx interface {
	InsertPurpose(ctx context.Context, p *Purpose) error
	GetPurpose(ctx context.Context, id int64) (*Purpose, error)
	PurposeExists(ctx context.Context, id int64) (bool, error)
	UpdatePurpose(ctx context.Context, p *Purpose) error
	SetFlagged(ctx context.Context, id int64, flagged bool) error
	DeletePurpose(ctx context.Context, id int64) error
	TouchPurpose(ctx context.Context, id int64) error

	HierarchyExists(ctx context.Context, id int64) (bool, error)
	EmfIDExists(ctx context.Context, emfID string, excludePurchaseID *int64) (bool, error)

	PurchaseOwner(ctx context.Context, purchaseID int64) (int64, error)
	InsertPurchase(ctx context.Context, purposeID int64, params purchase.Params) (int64, error)
	UpdatePurchase(ctx context.Context, params purchase.Params) error
	DeletePurchases(ctx context.Context, ids []int64) error

	InsertStage(ctx context.Context, purchaseID int64, params purchase.StageParams) error
	UpdateStage(ctx context.Context, params purchase.StageParams) error
	DeleteStages(ctx context.Context, ids []int64) error

	InsertCost(ctx context.Context, purchaseID int64, params purchase.CostParams) error
	UpdateCost(ctx context.Context, params purchase.CostParams) error
	DeleteCosts(ctx context.Context, ids []int64) error

	FileExists(ctx context.Context, id int64) (bool, error)
	ReplaceFileLinks(ctx context.Context, purposeID int64, fileIDs []int64) error
	LinkFile(ctx context.Context, purposeID, fileID int64) error
	UnlinkFile(ctx context.Context, purposeID, fileID int64) (bool, error)

	InsertStatusChange(ctx context.Context, change *StatusChange) error

	Commit() error
	Rollback() error
}

// HierarchyResolver expands hierarchy ids to themselves plus all their
// descendants for the hierarchy filter.
type HierarchyResolver interface {
	DescendantIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// ActorFunc reports who is acting, for the status history. A nil func
// or a nil result records changes anonymously.
type ActorFunc func(ctx context.Context) *string

type Service struct {
	repo        Repository
	hierarchies HierarchyResolver
	actor       ActorFunc
}

func NewService(repo Repository, hierarchies HierarchyResolver, actor ActorFunc) *Service {
	return &Service{repo: repo, hierarchies: hierarchies, actor: actor}
}

func (s *Service) actorName(ctx context.Context) *string {
	if s.actor == nil {
		return nil
	}

	return s.actor(ctx)
}

func (s *Service) Create(ctx context.Context, params Params) (*Purpose, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// A create payload has no stored purchases to reconcile against,
	// so any purchase arriving with an id fails the diff.
	diff, err := purchase.DiffPurchases(nil, params.Purchases)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning purpose create: %w", err)
	}
	defer tx.Rollback()

	if err := checkHierarchy(ctx, tx, params.HierarchyID); err != nil {
		return nil, err
	}

	if err := checkFiles(ctx, tx, params.FileIDs); err != nil {
		return nil, err
	}

	for _, pp := range diff.ToCreate {
		taken, err := tx.EmfIDExists(ctx, pp.EmfID, nil)
		if err != nil {
			return nil, err
		}

		if taken {
			return nil, fmt.Errorf("%w: %q", purchase.ErrDuplicateEmfID, pp.EmfID)
		}
	}

	p := &Purpose{
		HierarchyID:      params.HierarchyID,
		ExpectedDelivery: params.ExpectedDelivery,
		Comments:         params.Comments,
		Status:           params.Status,
		Supplier:         params.Supplier,
		Content:          params.Content,
		Description:      params.Description,
		ServiceType:      params.ServiceType,
		IsFlagged:        params.IsFlagged,
	}
	if err := tx.InsertPurpose(ctx, p); err != nil {
		return nil, err
	}

	if err := insertPurchases(ctx, tx, p.ID, diff.ToCreate); err != nil {
		return nil, err
	}

	if err := tx.ReplaceFileLinks(ctx, p.ID, params.FileIDs); err != nil {
		return nil, err
	}

	change := &StatusChange{
		PurposeID: p.ID,
		NewStatus: params.Status,
		ChangedBy: s.actorName(ctx),
	}
	if err := tx.InsertStatusChange(ctx, change); err != nil {
		return nil, err
	}

	created, err := tx.GetPurpose(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing purpose create: %w", err)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Purpose, error) {
	return s.repo.GetPurpose(ctx, id)
}

func (s *Service) List(ctx context.Context, q Query, page pagination.Params) ([]*Purpose, int64, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}

	q, empty, err := s.expandHierarchyFilter(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	if empty {
		return nil, 0, nil
	}

	return s.repo.ListPurposes(ctx, q, page)
}

// ListAll runs the same query pipeline without pagination, for the CSV
// export.
func (s *Service) ListAll(ctx context.Context, q Query) ([]*Purpose, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	q, empty, err := s.expandHierarchyFilter(ctx, q)
	if err != nil {
		return nil, err
	}

	if empty {
		return nil, nil
	}

	return s.repo.ListAllPurposes(ctx, q)
}

// expandHierarchyFilter swaps the requested hierarchy ids for the full
// descendant set. When none of the ids exist the whole query matches
// nothing and the store round trip is skipped.
func (s *Service) expandHierarchyFilter(ctx context.Context, q Query) (Query, bool, error) {
	if len(q.Filter.HierarchyIDs) == 0 {
		return q, false, nil
	}

	expanded, err := s.hierarchies.DescendantIDs(ctx, q.Filter.HierarchyIDs)
	if err != nil {
		return Query{}, false, fmt.Errorf("expanding hierarchy filter: %w", err)
	}

	if len(expanded) == 0 {
		return Query{}, true, nil
	}

	q.Filter.HierarchyIDs = expanded

	return q, false, nil
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Purpose, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning purpose update: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.GetPurpose(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkHierarchy(ctx, tx, params.HierarchyID); err != nil {
		return nil, err
	}

	if err := checkFiles(ctx, tx, params.FileIDs); err != nil {
		return nil, err
	}

	diff, err := purchase.DiffPurchases(existing.Purchases, params.Purchases)
	if err != nil {
		return nil, err
	}

	for _, pp := range diff.ToCreate {
		taken, err := tx.EmfIDExists(ctx, pp.EmfID, nil)
		if err != nil {
			return nil, err
		}

		if taken {
			return nil, fmt.Errorf("%w: %q", purchase.ErrDuplicateEmfID, pp.EmfID)
		}
	}

	for _, pp := range diff.ToUpdate {
		taken, err := tx.EmfIDExists(ctx, pp.EmfID, pp.ID)
		if err != nil {
			return nil, err
		}

		if taken {
			return nil, fmt.Errorf("%w: %q", purchase.ErrDuplicateEmfID, pp.EmfID)
		}
	}

	if err := tx.DeletePurchases(ctx, diff.ToDelete); err != nil {
		return nil, err
	}

	existingByID := make(map[int64]purchase.Purchase, len(existing.Purchases))
	for _, ep := range existing.Purchases {
		existingByID[ep.ID] = ep
	}

	for _, pp := range diff.ToUpdate {
		if err := tx.UpdatePurchase(ctx, pp); err != nil {
			return nil, err
		}

		current := existingByID[*pp.ID]

		if err := reconcileStages(ctx, tx, *pp.ID, current.Stages, pp.Stages); err != nil {
			return nil, err
		}

		if err := reconcileCosts(ctx, tx, *pp.ID, current.Costs, pp.Costs); err != nil {
			return nil, err
		}
	}

	if err := insertPurchases(ctx, tx, id, diff.ToCreate); err != nil {
		return nil, err
	}

	updated := &Purpose{
		ID:               id,
		HierarchyID:      params.HierarchyID,
		ExpectedDelivery: params.ExpectedDelivery,
		Comments:         params.Comments,
		Status:           params.Status,
		Supplier:         params.Supplier,
		Content:          params.Content,
		Description:      params.Description,
		ServiceType:      params.ServiceType,
		IsFlagged:        params.IsFlagged,
	}
	if err := tx.UpdatePurpose(ctx, updated); err != nil {
		return nil, err
	}

	if err := tx.ReplaceFileLinks(ctx, id, params.FileIDs); err != nil {
		return nil, err
	}

	if params.Status != existing.Status {
		change := &StatusChange{
			PurposeID:      id,
			PreviousStatus: &existing.Status,
			NewStatus:      params.Status,
			ChangedBy:      s.actorName(ctx),
		}
		if err := tx.InsertStatusChange(ctx, change); err != nil {
			return nil, err
		}
	}

	if err := tx.TouchPurpose(ctx, id); err != nil {
		return nil, err
	}

	result, err := tx.GetPurpose(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing purpose update: %w", err)
	}

	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning purpose delete: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PurposeExists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotFound
	}

	if err := tx.DeletePurpose(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing purpose delete: %w", err)
	}

	return nil
}

// UpdatePurchase rewrites one purchase without going through a full
// purpose update. Its stages and costs are reconciled against the
// stored ones, and the owning purpose's last_modified is touched.
func (s *Service) UpdatePurchase(ctx context.Context, id int64, params purchase.Params) (*purchase.Purchase, error) {
	params.ID = &id

	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning purchase update: %w", err)
	}
	defer tx.Rollback()

	purposeID, err := tx.PurchaseOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := tx.GetPurpose(ctx, purposeID)
	if err != nil {
		return nil, err
	}

	var current purchase.Purchase
	for _, pp := range owner.Purchases {
		if pp.ID == id {
			current = pp
			break
		}
	}

	taken, err := tx.EmfIDExists(ctx, params.EmfID, &id)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, fmt.Errorf("%w: %q", purchase.ErrDuplicateEmfID, params.EmfID)
	}

	if err := tx.UpdatePurchase(ctx, params); err != nil {
		return nil, err
	}

	if err := reconcileStages(ctx, tx, id, current.Stages, params.Stages); err != nil {
		return nil, err
	}

	if err := reconcileCosts(ctx, tx, id, current.Costs, params.Costs); err != nil {
		return nil, err
	}

	if err := tx.TouchPurpose(ctx, purposeID); err != nil {
		return nil, err
	}

	reloaded, err := tx.GetPurpose(ctx, purposeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing purchase update: %w", err)
	}

	for i := range reloaded.Purchases {
		if reloaded.Purchases[i].ID == id {
			return &reloaded.Purchases[i], nil
		}
	}

	return nil, purchase.ErrNotFound
}

// DeletePurchase removes one purchase with its stages and costs and
// touches the owning purpose.
func (s *Service) DeletePurchase(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning purchase delete: %w", err)
	}
	defer tx.Rollback()

	purposeID, err := tx.PurchaseOwner(ctx, id)
	if err != nil {
		return err
	}

	if err := tx.DeletePurchases(ctx, []int64{id}); err != nil {
		return err
	}

	if err := tx.TouchPurpose(ctx, purposeID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing purchase delete: %w", err)
	}

	return nil
}

func (s *Service) AttachFile(ctx context.Context, purposeID, fileID int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning file attach: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PurposeExists(ctx, purposeID)
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotFound
	}

	fileExists, err := tx.FileExists(ctx, fileID)
	if err != nil {
		return err
	}

	if !fileExists {
		return fmt.Errorf("%w: %d", ErrFileNotFound, fileID)
	}

	if err := tx.LinkFile(ctx, purposeID, fileID); err != nil {
		return err
	}

	if err := tx.TouchPurpose(ctx, purposeID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing file attach: %w", err)
	}

	return nil
}

func (s *Service) DetachFile(ctx context.Context, purposeID, fileID int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning file detach: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PurposeExists(ctx, purposeID)
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotFound
	}

	unlinked, err := tx.UnlinkFile(ctx, purposeID, fileID)
	if err != nil {
		return err
	}

	if !unlinked {
		return fmt.Errorf("%w: %d", ErrFileNotFound, fileID)
	}

	if err := tx.TouchPurpose(ctx, purposeID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing file detach: %w", err)
	}

	return nil
}

func (s *Service) SetFlag(ctx context.Context, id int64, flagged bool) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning flag update: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PurposeExists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotFound
	}

	if err := tx.SetFlagged(ctx, id, flagged); err != nil {
		return err
	}

	if err := tx.TouchPurpose(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing flag update: %w", err)
	}

	return nil
}

func (s *Service) StatusHistory(ctx context.Context, purposeID int64) ([]*StatusChange, error) {
	exists, err := s.repo.PurposeExists(ctx, purposeID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, ErrNotFound
	}

	return s.repo.ListStatusHistory(ctx, purposeID)
}

func checkHierarchy(ctx context.Context, tx Tx, id *int64) error {
	if id == nil {
		return nil
	}

	exists, err := tx.HierarchyExists(ctx, *id)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %d", ErrHierarchyNotFound, *id)
	}

	return nil
}

func checkFiles(ctx context.Context, tx Tx, fileIDs []int64) error {
	for _, id := range fileIDs {
		exists, err := tx.FileExists(ctx, id)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("%w: %d", ErrFileNotFound, id)
		}
	}

	return nil
}

func insertPurchases(ctx context.Context, tx Tx, purposeID int64, toCreate []purchase.Params) error {
	for _, pp := range toCreate {
		purchaseID, err := tx.InsertPurchase(ctx, purposeID, pp)
		if err != nil {
			return err
		}

		for _, st := range pp.Stages {
			if err := tx.InsertStage(ctx, purchaseID, st); err != nil {
				return err
			}
		}

		for _, c := range pp.Costs {
			if err := tx.InsertCost(ctx, purchaseID, c); err != nil {
				return err
			}
		}
	}

	return nil
}

func reconcileStages(ctx context.Context, tx Tx, purchaseID int64, existing []purchase.Stage, desired []purchase.StageParams) error {
	diff, err := purchase.DiffStages(existing, desired)
	if err != nil {
		return err
	}

	if err := tx.DeleteStages(ctx, diff.ToDelete); err != nil {
		return err
	}

	for _, st := range diff.ToUpdate {
		if err := tx.UpdateStage(ctx, st); err != nil {
			return err
		}
	}

	for _, st := range diff.ToCreate {
		if err := tx.InsertStage(ctx, purchaseID, st); err != nil {
			return err
		}
	}

	return nil
}

func reconcileCosts(ctx context.Context, tx Tx, purchaseID int64, existing []purchase.Cost, desired []purchase.CostParams) error {
	diff, err := purchase.DiffCosts(existing, desired)
	if err != nil {
		return err
	}

	if err := tx.DeleteCosts(ctx, diff.ToDelete); err != nil {
		return err
	}

	for _, c := range diff.ToUpdate {
		if err := tx.UpdateCost(ctx, c); err != nil {
			return err
		}
	}

	for _, c := range diff.ToCreate {
		if err := tx.InsertCost(ctx, purchaseID, c); err != nil {
			return err
		}
	}

	return nil
}
