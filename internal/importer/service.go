package importer

import (
	"fmt"
	"io"

	"github.com/rechesh-io/rechesh/internal/importer/emf"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

type Service struct {
	emfParser Parser
}

func NewService() *Service {
	return &Service{
		emfParser: emf.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]purpose.Params, error) {
	var parser Parser

	switch source {
	case SourceEMF:
		parser = s.emfParser
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, string(source))
	}

	return parser.Parse(r)
}
