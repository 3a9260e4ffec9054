package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rechesh-io/rechesh/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=hierarchy
type Repository interface {
	CreateHierarchy(ctx context.Context, h *Hierarchy) error
	GetHierarchy(ctx context.Context, id int64) (*Hierarchy, error)
	ListHierarchies(ctx context.Context, filter ListFilter, page pagination.Params) ([]*Hierarchy, int64, error)
	ListAll(ctx context.Context) ([]*Hierarchy, error)
	ListChildren(ctx context.Context, parentID int64) ([]*Hierarchy, error)
	DescendantIDs(ctx context.Context, ids []int64) ([]int64, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx covers the multi-step flows: reparenting with its cycle check and
// deletion with its guards.
type Tx interface {
	GetHierarchy(ctx context.Context, id int64) (*Hierarchy, error)
	AncestorIDs(ctx context.Context, id int64) ([]int64, error)
	UpdateHierarchy(ctx context.Context, h *Hierarchy) error
	HasChildren(ctx context.Context, id int64) (bool, error)
	PurposeRefCount(ctx context.Context, id int64) (int64, error)
	DeleteHierarchy(ctx context.Context, id int64) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type     Type
	Name     string
	ParentID *int64
}

type UpdateParams struct {
	Name *string
	Type *Type
	// SetParent distinguishes "leave the parent alone" from
	// "reparent to ParentID", where a nil ParentID detaches the node
	// into a root.
	SetParent bool
	ParentID  *int64
}

type ListFilter struct {
	Types        []Type
	ParentID     *int64
	RootOnly     bool
	NameContains string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Hierarchy, error) {
	if _, err := ParseType(string(params.Type)); err != nil {
		return nil, err
	}

	if err := validateName(params.Name); err != nil {
		return nil, err
	}

	if params.ParentID != nil {
		if _, err := s.repo.GetHierarchy(ctx, *params.ParentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrParentNotFound
			}

			return nil, err
		}
	}

	h := &Hierarchy{
		ParentID: params.ParentID,
		Type:     params.Type,
		Name:     params.Name,
	}
	if err := s.repo.CreateHierarchy(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Hierarchy, error) {
	return s.repo.GetHierarchy(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]*Hierarchy, int64, error) {
	return s.repo.ListHierarchies(ctx, filter, page)
}

// ListAll returns every node unpaginated, for name lookups and client
// side tree pickers.
func (s *Service) ListAll(ctx context.Context) ([]*Hierarchy, error) {
	return s.repo.ListAll(ctx)
}

// Children returns the direct children of an existing node.
func (s *Service) Children(ctx context.Context, id int64) ([]*Hierarchy, error) {
	if _, err := s.repo.GetHierarchy(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.ListChildren(ctx, id)
}

// Tree assembles the full forest. Children keep the store's name order.
func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*Node, len(all))
	for _, h := range all {
		nodes[h.ID] = &Node{Hierarchy: *h}
	}

	var roots []*Node

	for _, h := range all {
		node := nodes[h.ID]

		if h.ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, found := nodes[*h.ParentID]
		if !found {
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}

// DescendantIDs expands each id to itself plus all transitive
// descendants. Unknown ids expand to nothing.
func (s *Service) DescendantIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return s.repo.DescendantIDs(ctx, ids)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Hierarchy, error) {
	if params.Name != nil {
		if err := validateName(*params.Name); err != nil {
			return nil, err
		}
	}

	if params.Type != nil {
		if _, err := ParseType(string(*params.Type)); err != nil {
			return nil, err
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning hierarchy update: %w", err)
	}
	defer tx.Rollback()

	h, err := tx.GetHierarchy(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		h.Name = *params.Name
	}

	if params.Type != nil {
		h.Type = *params.Type
	}

	if params.SetParent {
		if params.ParentID != nil {
			if err := s.checkReparent(ctx, tx, id, *params.ParentID); err != nil {
				return nil, err
			}
		}

		h.ParentID = params.ParentID
	}

	if err := tx.UpdateHierarchy(ctx, h); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing hierarchy update: %w", err)
	}

	return h, nil
}

// checkReparent verifies the new parent exists and is not the node
// itself or one of its descendants. AncestorIDs includes the starting
// node, so a self-parent shows up in the chain as well.
func (s *Service) checkReparent(ctx context.Context, tx Tx, id, parentID int64) error {
	if _, err := tx.GetHierarchy(ctx, parentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrParentNotFound
		}

		return err
	}

	ancestors, err := tx.AncestorIDs(ctx, parentID)
	if err != nil {
		return err
	}

	if slices.Contains(ancestors, id) {
		return ErrCycle
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning hierarchy delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.GetHierarchy(ctx, id); err != nil {
		return err
	}

	hasChildren, err := tx.HasChildren(ctx, id)
	if err != nil {
		return err
	}

	if hasChildren {
		return ErrHasChildren
	}

	refs, err := tx.PurposeRefCount(ctx, id)
	if err != nil {
		return err
	}

	if refs > 0 {
		return ErrInUse
	}

	if err := tx.DeleteHierarchy(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing hierarchy delete: %w", err)
	}

	return nil
}
