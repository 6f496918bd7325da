package handlers

import (
	"context"
	"sort"

	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/store"
)

// Manage lists, deletes, or verifies an index's registry entry. verify is a
// supplemental action beyond spec.md's list/delete pair, wired to
// internal/store.Verify for cross-checking an index's internal consistency.
func (s *Service) Manage(ctx context.Context, action ManageAction, indexID string) (*ManageResult, error) {
	switch action {
	case ManageList:
		return s.manageList()
	case ManageDelete:
		return s.manageDelete(indexID)
	case ManageVerify:
		return s.manageVerify(indexID)
	default:
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "unknown manage action "+string(action))
	}
}

func (s *Service) manageList() (*ManageResult, error) {
	reg, err := store.LoadRegistry(s.storeRoot)
	if err != nil {
		return nil, err
	}

	summaries := make([]IndexSummary, 0, len(reg.Indexes))
	for _, meta := range reg.Indexes {
		summaries = append(summaries, IndexSummary{
			IndexID:    meta.IndexID,
			RootPath:   meta.RootPath,
			CreatedAt:  meta.CreatedAt,
			FileCount:  meta.FileCount,
			ChunkCount: meta.ChunkCount,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].IndexID < summaries[j].IndexID })

	return &ManageResult{Success: true, Indexes: summaries}, nil
}

func (s *Service) manageDelete(indexID string) (*ManageResult, error) {
	if indexID == "" {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}

	err := store.WithRegistryLock(s.storeRoot, func(reg *store.Registry) error {
		if _, ok := reg.Indexes[indexID]; !ok {
			return coreerrors.New(coreerrors.KindNotFound, "index "+indexID+" not found")
		}
		delete(reg.Indexes, indexID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := store.DeleteIndexFile(s.storeRoot, indexID); err != nil {
		return nil, err
	}

	return &ManageResult{Success: true, Message: "deleted index " + indexID}, nil
}

func (s *Service) manageVerify(indexID string) (*ManageResult, error) {
	if indexID == "" {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}

	idx, err := s.loadIndex(indexID)
	if err != nil {
		return nil, err
	}

	reg, err := store.LoadRegistry(s.storeRoot)
	if err != nil {
		return nil, err
	}
	var meta *store.IndexMetadata
	if m, ok := reg.Indexes[indexID]; ok {
		meta = &m
	}

	discrepancies := store.Verify(idx, meta)
	return &ManageResult{
		Success:       len(discrepancies) == 0,
		Discrepancies: discrepancies,
	}, nil
}
