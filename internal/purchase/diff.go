package purchase

import "fmt"

// The aggregate update endpoints carry the full desired state, so the
// stored rows are reconciled against the payload with a single
// three-way diff: rows missing from the payload are deleted, rows with
// an ID are updated in place, rows without one are created.

type Diff struct {
	ToDelete []int64
	ToUpdate []Params
	ToCreate []Params
}

// DiffPurchases reconciles a purpose's stored purchases against the
// desired payload. A payload ID that is not owned by the purpose fails
// with ErrNotOwned.
func DiffPurchases(existing []Purchase, desired []Params) (Diff, error) {
	owned := make(map[int64]struct{}, len(existing))
	for _, p := range existing {
		owned[p.ID] = struct{}{}
	}

	var diff Diff

	seen := make(map[int64]struct{}, len(desired))

	for _, params := range desired {
		if params.ID == nil {
			diff.ToCreate = append(diff.ToCreate, params)
			continue
		}

		if _, ok := owned[*params.ID]; !ok {
			return Diff{}, fmt.Errorf("%w: purchase %d", ErrNotOwned, *params.ID)
		}

		seen[*params.ID] = struct{}{}
		diff.ToUpdate = append(diff.ToUpdate, params)
	}

	for _, p := range existing {
		if _, ok := seen[p.ID]; !ok {
			diff.ToDelete = append(diff.ToDelete, p.ID)
		}
	}

	return diff, nil
}

type StageDiff struct {
	ToDelete []int64
	ToUpdate []StageParams
	ToCreate []StageParams
}

func DiffStages(existing []Stage, desired []StageParams) (StageDiff, error) {
	owned := make(map[int64]struct{}, len(existing))
	for _, st := range existing {
		owned[st.ID] = struct{}{}
	}

	var diff StageDiff

	seen := make(map[int64]struct{}, len(desired))

	for _, params := range desired {
		if params.ID == nil {
			diff.ToCreate = append(diff.ToCreate, params)
			continue
		}

		if _, ok := owned[*params.ID]; !ok {
			return StageDiff{}, fmt.Errorf("%w: stage %d", ErrStageNotOwned, *params.ID)
		}

		seen[*params.ID] = struct{}{}
		diff.ToUpdate = append(diff.ToUpdate, params)
	}

	for _, st := range existing {
		if _, ok := seen[st.ID]; !ok {
			diff.ToDelete = append(diff.ToDelete, st.ID)
		}
	}

	return diff, nil
}

type CostDiff struct {
	ToDelete []int64
	ToUpdate []CostParams
	ToCreate []CostParams
}

func DiffCosts(existing []Cost, desired []CostParams) (CostDiff, error) {
	owned := make(map[int64]struct{}, len(existing))
	for _, c := range existing {
		owned[c.ID] = struct{}{}
	}

	var diff CostDiff

	seen := make(map[int64]struct{}, len(desired))

	for _, params := range desired {
		if params.ID == nil {
			diff.ToCreate = append(diff.ToCreate, params)
			continue
		}

		if _, ok := owned[*params.ID]; !ok {
			return CostDiff{}, fmt.Errorf("%w: cost %d", ErrCostNotOwned, *params.ID)
		}

		seen[*params.ID] = struct{}{}
		diff.ToUpdate = append(diff.ToUpdate, params)
	}

	for _, c := range existing {
		if _, ok := seen[c.ID]; !ok {
			diff.ToDelete = append(diff.ToDelete, c.ID)
		}
	}

	return diff, nil
}
