// Package importer turns spreadsheet exports from external procurement
// systems into purpose parameters ready for creation.
package importer

import (
	"errors"
	"io"

	"github.com/rechesh-io/rechesh/internal/purpose"
)

// Source identifies which external system produced the spreadsheet.
type Source string

const (
	SourceEMF Source = "emf"
)

var ErrUnknownSource = errors.New("unknown import source")

type Parser interface {
	Parse(r io.Reader) ([]purpose.Params, error)
}
