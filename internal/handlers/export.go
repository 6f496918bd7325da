package handlers

import (
	"context"
	"io"

	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/export"
)

// Export writes a built index as a portable zip bundle to w, per spec.md
// §6's export bundle layout.
func (s *Service) Export(ctx context.Context, indexID string, w io.Writer) error {
	if indexID == "" {
		return coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}
	idx, err := s.loadIndex(indexID)
	if err != nil {
		return err
	}
	return export.WriteBundle(w, idx)
}
