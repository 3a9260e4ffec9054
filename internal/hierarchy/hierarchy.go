package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// Type represents the organizational level of a hierarchy node.
type Type string

const (
	TypeUnit   Type = "UNIT"
	TypeCenter Type = "CENTER"
	TypeAnaf   Type = "ANAF"
	TypeMador  Type = "MADOR"
	TypeTeam   Type = "TEAM"
)

const maxNameLength = 255

var (
	ErrNotFound       = errors.New("hierarchy not found")
	ErrParentNotFound = errors.New("parent hierarchy not found")
	ErrInvalidType    = errors.New("invalid hierarchy type")
	ErrNameRequired   = errors.New("hierarchy name is required")
	ErrNameTooLong    = errors.New("hierarchy name exceeds 255 characters")
	ErrCycle          = errors.New("hierarchy cannot be moved under its own descendant")
	ErrHasChildren    = errors.New("hierarchy still has children")
	ErrInUse          = errors.New("hierarchy is referenced by purposes")
)

// ParseType validates a raw type string.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeUnit, TypeCenter, TypeAnaf, TypeMador, TypeTeam:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Hierarchy is a node of the organizational tree. A nil ParentID marks
// a root.
type Hierarchy struct {
	ID       int64
	ParentID *int64
	Type     Type
	Name     string
}

// Node is a hierarchy with its resolved children, as returned by Tree.
type Node struct {
	Hierarchy
	Children []*Node
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	if len([]rune(name)) > maxNameLength {
		return ErrNameTooLong
	}

	return nil
}
