package purpose

import (
	"errors"
	"fmt"
	"time"

	"github.com/rechesh-io/rechesh/internal/purchase"
)

// Status represents the lifecycle state of a purpose. Any status may
// follow any other; there is no transition graph.
type Status string

const (
	StatusInProgress        Status = "IN_PROGRESS"
	StatusCompleted         Status = "COMPLETED"
	StatusSigned            Status = "SIGNED"
	StatusPartiallySupplied Status = "PARTIALLY_SUPPLIED"
)

const (
	maxCommentsLength    = 1000
	maxSupplierLength    = 200
	maxContentLength     = 2000
	maxDescriptionLength = 2000
	maxServiceTypeLength = 100
)

var (
	ErrNotFound           = errors.New("purpose not found")
	ErrHierarchyNotFound  = errors.New("hierarchy not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrCommentsTooLong    = errors.New("comments exceed 1000 characters")
	ErrSupplierTooLong    = errors.New("supplier exceeds 200 characters")
	ErrContentTooLong     = errors.New("content exceeds 2000 characters")
	ErrDescriptionTooLong = errors.New("description exceeds 2000 characters")
	ErrServiceTypeTooLong = errors.New("service type exceeds 100 characters")
)

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusInProgress, StatusCompleted, StatusSigned, StatusPartiallySupplied:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Purpose is the aggregate root: a procurement intent owned by a
// hierarchy node, carrying its purchases and file attachments.
type Purpose struct {
	ID               int64
	HierarchyID      *int64
	ExpectedDelivery *time.Time
	LastModified     time.Time
	Comments         *string
	Status           Status
	CreationTime     time.Time
	Supplier         *string
	Content          *string
	Description      *string
	ServiceType      *string
	IsFlagged        bool
	Purchases        []purchase.Purchase
	FileIDs          []int64
}

// StatusChange is one recorded status transition. PreviousStatus is nil
// for the row written at creation.
type StatusChange struct {
	ID             int64
	PurposeID      int64
	PreviousStatus *Status
	NewStatus      Status
	ChangedAt      time.Time
	ChangedBy      *string
}

// Params carries the full desired state of a purpose for both create
// and update: the aggregate endpoints replace, they do not patch.
type Params struct {
	HierarchyID      *int64
	ExpectedDelivery *time.Time
	Comments         *string
	Status           Status
	Supplier         *string
	Content          *string
	Description      *string
	ServiceType      *string
	IsFlagged        bool
	Purchases        []purchase.Params
	FileIDs          []int64
}

func (p Params) Validate() error {
	if _, err := ParseStatus(string(p.Status)); err != nil {
		return err
	}

	if err := checkLength(p.Comments, maxCommentsLength, ErrCommentsTooLong); err != nil {
		return err
	}

	if err := checkLength(p.Supplier, maxSupplierLength, ErrSupplierTooLong); err != nil {
		return err
	}

	if err := checkLength(p.Content, maxContentLength, ErrContentTooLong); err != nil {
		return err
	}

	if err := checkLength(p.Description, maxDescriptionLength, ErrDescriptionTooLong); err != nil {
		return err
	}

	if err := checkLength(p.ServiceType, maxServiceTypeLength, ErrServiceTypeTooLong); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(p.Purchases))

	for _, pp := range p.Purchases {
		if err := pp.Validate(); err != nil {
			return err
		}

		if _, dup := seen[pp.EmfID]; dup {
			return fmt.Errorf("%w: %q", purchase.ErrDuplicateEmfID, pp.EmfID)
		}

		seen[pp.EmfID] = struct{}{}
	}

	return nil
}

func checkLength(s *string, max int, tooLong error) error {
	if s != nil && len([]rune(*s)) > max {
		return tooLong
	}

	return nil
}
