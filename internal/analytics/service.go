package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

const dbTimeout = 1 * time.Second

var (
	// ErrNotFound marks the three distinguishable detail-builder failures:
	// entity absent, entity soft-deleted, entity present but without
	// matching feedback. The wrapped message names the entity and cause.
	ErrNotFound = errors.New("not found")
	// ErrStorageFailure wraps repository errors. The cause stays in the
	// chain for logging but callers only surface "aggregation failed".
	ErrStorageFailure = errors.New("storage failure")
)

// SnapshotRepository is the engine's single dependency on the persistence
// layer: fetch the flat, pre-joined snapshot collection for a filter set,
// plus the independent entity lookups the detail builders need.
type SnapshotRepository interface {
	ListSnapshots(ctx context.Context, f models.Filter) ([]models.FeedbackSnapshot, error)
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	GetFaculty(ctx context.Context, id string) (*models.Faculty, error)
	GetDivision(ctx context.Context, id string) (*models.Division, error)
}

// Service computes the feedback rollups and drill-downs. Every call is a
// pure in-memory pass over its own snapshot collection; nothing is cached or
// shared between invocations, so concurrent callers need no locking.
type Service struct {
	storage SnapshotRepository
	logger  *zap.Logger
}

// NewService creates a new analytics Service instance.
func NewService(storage SnapshotRepository, logger *zap.Logger) *Service {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// fetch materializes the snapshot collection for a filter set and normalizes
// it down to the countable ratings. The derived lecture-type filter is
// applied here so every builder sees an identically classified set.
func (s *Service) fetch(ctx context.Context, f models.Filter) ([]scored, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	recs, err := s.storage.ListSnapshots(dbCtx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	rated := validScores(recs)
	if lt, ok := ParseLectureType(f.LectureType); ok {
		rated = filterByLectureType(rated, lt)
	}
	return rated, nil
}

func (s *Service) lookupSubject(ctx context.Context, id string) (*models.Subject, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	subj, err := s.storage.GetSubject(dbCtx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if subj == nil {
		return nil, fmt.Errorf("%w: subject with id %q does not exist", ErrNotFound, id)
	}
	return subj, nil
}

func (s *Service) lookupFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	fac, err := s.storage.GetFaculty(dbCtx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if fac == nil {
		return nil, fmt.Errorf("%w: faculty with id %q does not exist", ErrNotFound, id)
	}
	return fac, nil
}

func (s *Service) lookupDivision(ctx context.Context, id string) (*models.Division, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	div, err := s.storage.GetDivision(dbCtx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if div == nil {
		return nil, fmt.Errorf("%w: division with id %q does not exist", ErrNotFound, id)
	}
	return div, nil
}
