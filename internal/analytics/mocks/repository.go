package mocks

import (
	"context"
	"errors"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// MockSnapshotRepository is a mock implementation of the SnapshotRepository
// interface for testing the analytics engine.
type MockSnapshotRepository struct {
	ListSnapshotsFunc func(ctx context.Context, f models.Filter) ([]models.FeedbackSnapshot, error)
	GetSubjectFunc    func(ctx context.Context, id string) (*models.Subject, error)
	GetFacultyFunc    func(ctx context.Context, id string) (*models.Faculty, error)
	GetDivisionFunc   func(ctx context.Context, id string) (*models.Division, error)
}

// ListSnapshots implements the SnapshotRepository interface
func (m *MockSnapshotRepository) ListSnapshots(ctx context.Context, f models.Filter) ([]models.FeedbackSnapshot, error) {
	if m.ListSnapshotsFunc != nil {
		return m.ListSnapshotsFunc(ctx, f)
	}
	return nil, errors.New("ListSnapshotsFunc not implemented")
}

// GetSubject implements the SnapshotRepository interface
func (m *MockSnapshotRepository) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	if m.GetSubjectFunc != nil {
		return m.GetSubjectFunc(ctx, id)
	}
	return nil, errors.New("GetSubjectFunc not implemented")
}

// GetFaculty implements the SnapshotRepository interface
func (m *MockSnapshotRepository) GetFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	if m.GetFacultyFunc != nil {
		return m.GetFacultyFunc(ctx, id)
	}
	return nil, errors.New("GetFacultyFunc not implemented")
}

// GetDivision implements the SnapshotRepository interface
func (m *MockSnapshotRepository) GetDivision(ctx context.Context, id string) (*models.Division, error) {
	if m.GetDivisionFunc != nil {
		return m.GetDivisionFunc(ctx, id)
	}
	return nil, errors.New("GetDivisionFunc not implemented")
}
