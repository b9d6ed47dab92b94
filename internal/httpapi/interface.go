package httpapi

import (
	"context"
	"time"

	"github.com/feedback-ldrp/reflectify-backend/internal/analytics"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// AnalyticsService is the aggregation engine as seen by the HTTP layer.
type AnalyticsService interface {
	OverallStats(ctx context.Context, f models.Filter) (analytics.OverallStats, error)
	SubjectRatings(ctx context.Context, f models.Filter) ([]analytics.SubjectRating, error)
	FacultyPerformance(ctx context.Context, f models.Filter) ([]analytics.FacultyPerformance, error)
	DivisionPerformance(ctx context.Context, f models.Filter) ([]analytics.DivisionPerformance, error)
	AcademicYearTrends(ctx context.Context, f models.Filter) ([]analytics.AcademicYearTrend, error)
	SemesterTrends(ctx context.Context, f models.Filter) ([]analytics.SemesterTrend, error)
	DepartmentTrends(ctx context.Context, f models.Filter) ([]analytics.DepartmentTrend, error)
	SubjectDetail(ctx context.Context, subjectID string, f models.Filter) (*analytics.SubjectDetail, error)
	FacultyDetail(ctx context.Context, facultyID string, f models.Filter) (*analytics.FacultyDetail, error)
	DivisionDetail(ctx context.Context, divisionID string, f models.Filter) (*analytics.DivisionDetail, error)
}
