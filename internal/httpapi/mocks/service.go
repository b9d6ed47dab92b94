package mocks

import (
	"context"
	"errors"

	"github.com/feedback-ldrp/reflectify-backend/internal/analytics"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// MockAnalyticsService is a mock implementation of the AnalyticsService
// interface for testing the handler layer.
type MockAnalyticsService struct {
	OverallStatsFunc        func(ctx context.Context, f models.Filter) (analytics.OverallStats, error)
	SubjectRatingsFunc      func(ctx context.Context, f models.Filter) ([]analytics.SubjectRating, error)
	FacultyPerformanceFunc  func(ctx context.Context, f models.Filter) ([]analytics.FacultyPerformance, error)
	DivisionPerformanceFunc func(ctx context.Context, f models.Filter) ([]analytics.DivisionPerformance, error)
	AcademicYearTrendsFunc  func(ctx context.Context, f models.Filter) ([]analytics.AcademicYearTrend, error)
	SemesterTrendsFunc      func(ctx context.Context, f models.Filter) ([]analytics.SemesterTrend, error)
	DepartmentTrendsFunc    func(ctx context.Context, f models.Filter) ([]analytics.DepartmentTrend, error)
	SubjectDetailFunc       func(ctx context.Context, subjectID string, f models.Filter) (*analytics.SubjectDetail, error)
	FacultyDetailFunc       func(ctx context.Context, facultyID string, f models.Filter) (*analytics.FacultyDetail, error)
	DivisionDetailFunc      func(ctx context.Context, divisionID string, f models.Filter) (*analytics.DivisionDetail, error)
}

var errNotImplemented = errors.New("mock func not implemented")

func (m *MockAnalyticsService) OverallStats(ctx context.Context, f models.Filter) (analytics.OverallStats, error) {
	if m.OverallStatsFunc != nil {
		return m.OverallStatsFunc(ctx, f)
	}
	return analytics.OverallStats{}, errNotImplemented
}

func (m *MockAnalyticsService) SubjectRatings(ctx context.Context, f models.Filter) ([]analytics.SubjectRating, error) {
	if m.SubjectRatingsFunc != nil {
		return m.SubjectRatingsFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) FacultyPerformance(ctx context.Context, f models.Filter) ([]analytics.FacultyPerformance, error) {
	if m.FacultyPerformanceFunc != nil {
		return m.FacultyPerformanceFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) DivisionPerformance(ctx context.Context, f models.Filter) ([]analytics.DivisionPerformance, error) {
	if m.DivisionPerformanceFunc != nil {
		return m.DivisionPerformanceFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) AcademicYearTrends(ctx context.Context, f models.Filter) ([]analytics.AcademicYearTrend, error) {
	if m.AcademicYearTrendsFunc != nil {
		return m.AcademicYearTrendsFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) SemesterTrends(ctx context.Context, f models.Filter) ([]analytics.SemesterTrend, error) {
	if m.SemesterTrendsFunc != nil {
		return m.SemesterTrendsFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) DepartmentTrends(ctx context.Context, f models.Filter) ([]analytics.DepartmentTrend, error) {
	if m.DepartmentTrendsFunc != nil {
		return m.DepartmentTrendsFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) SubjectDetail(ctx context.Context, subjectID string, f models.Filter) (*analytics.SubjectDetail, error) {
	if m.SubjectDetailFunc != nil {
		return m.SubjectDetailFunc(ctx, subjectID, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) FacultyDetail(ctx context.Context, facultyID string, f models.Filter) (*analytics.FacultyDetail, error) {
	if m.FacultyDetailFunc != nil {
		return m.FacultyDetailFunc(ctx, facultyID, f)
	}
	return nil, errNotImplemented
}

func (m *MockAnalyticsService) DivisionDetail(ctx context.Context, divisionID string, f models.Filter) (*analytics.DivisionDetail, error) {
	if m.DivisionDetailFunc != nil {
		return m.DivisionDetailFunc(ctx, divisionID, f)
	}
	return nil, errNotImplemented
}
