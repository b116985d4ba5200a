package services

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/rs/zerolog"
)

// SnapshotCache кэш последних снимков
type SnapshotCache interface {
	GetCachedSnapshot(jobID string) (*models.RiskSnapshot, error)
}

// SnapshotStore постоянное хранилище снимков
type SnapshotStore interface {
	LatestSnapshot(jobID string) (*models.RiskSnapshot, error)
}

// SnapshotReader читает последний снимок сначала из кэша, затем из хранилища
type SnapshotReader struct {
	cache SnapshotCache
	store SnapshotStore
	log   zerolog.Logger
}

func NewSnapshotReader(cache SnapshotCache, store SnapshotStore, log zerolog.Logger) *SnapshotReader {
	return &SnapshotReader{
		cache: cache,
		store: store,
		log:   log.With().Str("component", "snapshots").Logger(),
	}
}

func (r *SnapshotReader) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	if r.cache != nil {
		snapshot, err := r.cache.GetCachedSnapshot(jobID)
		if err != nil {
			r.log.Warn().Err(err).Str("job_id", jobID).Msg("Snapshot cache unavailable, reading storage")
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	return r.store.LatestSnapshot(jobID)
}
