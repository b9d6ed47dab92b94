package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/feedback-ldrp/reflectify-backend/internal/analytics"
	"github.com/feedback-ldrp/reflectify-backend/internal/httpapi/mocks"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

func newTestHandlers(svc AnalyticsService) *Handlers {
	return NewHandlers(svc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)
}

func TestNewHandlers(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		mockSvc := &mocks.MockAnalyticsService{}
		mockCache := &mocks.MockCacher{}
		ttl := 5 * time.Minute

		h := NewHandlers(mockSvc, mockCache, zap.NewNop(), ttl)

		assert.NotNil(t, h)
		assert.Equal(t, mockSvc, h.analytics)
		assert.Equal(t, mockCache, h.cache)
		assert.Equal(t, ttl, h.cacheTTL)
		assert.NotNil(t, h.logger)
	})

	t.Run("nil service panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewHandlers(nil, &mocks.MockCacher{}, zap.NewNop(), time.Minute)
		})
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		h := NewHandlers(&mocks.MockAnalyticsService{}, &mocks.MockCacher{}, zap.NewNop(), 0)
		assert.Equal(t, defaultCacheDuration, h.cacheTTL)
	})

	t.Run("negative TTL uses default", func(t *testing.T) {
		h := NewHandlers(&mocks.MockAnalyticsService{}, &mocks.MockCacher{}, zap.NewNop(), -time.Minute)
		assert.Equal(t, defaultCacheDuration, h.cacheTTL)
	})
}

func TestParseFilter(t *testing.T) {
	t.Run("all parameters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet,
			"/overall?academicYearId=ay1&departmentId=dep1&subjectId=sub1&divisionId=div1&facultyId=fac1&semester=3&lectureType=lab&includeDeleted=true", nil)

		f, err := parseFilter(r)

		require.NoError(t, err)
		assert.Equal(t, models.Filter{
			AcademicYearID: "ay1",
			DepartmentID:   "dep1",
			SubjectID:      "sub1",
			SemesterNumber: 3,
			DivisionID:     "div1",
			FacultyID:      "fac1",
			LectureType:    "LAB",
			IncludeDeleted: true,
		}, f)
	})

	t.Run("no parameters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/overall", nil)

		f, err := parseFilter(r)

		require.NoError(t, err)
		assert.Equal(t, models.Filter{}, f)
	})

	t.Run("invalid semester", func(t *testing.T) {
		for _, v := range []string{"abc", "0", "-2"} {
			r := httptest.NewRequest(http.MethodGet, "/overall?semester="+v, nil)
			_, err := parseFilter(r)
			assert.Error(t, err)
		}
	})

	t.Run("invalid lectureType", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/overall?lectureType=seminar", nil)
		_, err := parseFilter(r)
		assert.Error(t, err)
	})

	t.Run("invalid includeDeleted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/overall?includeDeleted=maybe", nil)
		_, err := parseFilter(r)
		assert.Error(t, err)
	})
}

func TestCacheKey(t *testing.T) {
	t.Run("empty filter", func(t *testing.T) {
		key := cacheKey(cacheKeyOverall, "", models.Filter{})
		assert.Equal(t, "http:analytics:overall::|||0||||false", key)
	})

	t.Run("filters and entity id are encoded", func(t *testing.T) {
		f := models.Filter{AcademicYearID: "ay1", SemesterNumber: 3, LectureType: "LAB"}
		key := cacheKey(cacheKeySubjectDetail, "sub1", f)
		assert.Equal(t, "http:analytics:subject-detail:sub1:ay1|||3|||LAB|false", key)
	})

	t.Run("distinct filters yield distinct keys", func(t *testing.T) {
		a := cacheKey(cacheKeyFaculty, "", models.Filter{IncludeDeleted: true})
		b := cacheKey(cacheKeyFaculty, "", models.Filter{})
		assert.NotEqual(t, a, b)
	})
}

func TestHandleError(t *testing.T) {
	h := &Handlers{logger: zap.NewNop()}

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return env.Error
	}

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := httptest.NewRecorder()

		h.handleError(ctx, rec, "test_operation", errors.New("some error"))

		assert.Equal(t, statusClientClosedRequest, rec.Code)
		assert.Equal(t, "request canceled", decode(t, rec))
	})

	t.Run("context deadline exceeded", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)
		rec := httptest.NewRecorder()

		h.handleError(ctx, rec, "test_operation", errors.New("some error"))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Equal(t, "request timed out", decode(t, rec))
	})

	t.Run("not found keeps its cause text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("%w: subject with id %q does not exist", analytics.ErrNotFound, "sub-1")

		h.handleError(context.Background(), rec, "test_operation", err)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, `subject with id "sub-1" does not exist`, decode(t, rec))
	})

	t.Run("storage failure collapses to generic message", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.handleError(context.Background(), rec, "test_operation", analytics.ErrStorageFailure)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "aggregation failed", decode(t, rec))
	})

	t.Run("unknown error collapses to generic message", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.handleError(context.Background(), rec, "test_operation", errors.New("database connection lost"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "aggregation failed", decode(t, rec))
	})
}

func doRequest(t *testing.T, h *Handlers, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	h.Routes().ServeHTTP(rec, r)
	return rec
}

func TestRollupEndpoints(t *testing.T) {
	t.Run("overall stats success", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			OverallStatsFunc: func(ctx context.Context, f models.Filter) (analytics.OverallStats, error) {
				return analytics.OverallStats{TotalResponses: 42, AverageRating: 4.2}, nil
			},
		})

		rec := doRequest(t, h, "/overall")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var env struct {
			Data analytics.OverallStats `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, 42, env.Data.TotalResponses)
		assert.Equal(t, 4.2, env.Data.AverageRating)
	})

	t.Run("filter reaches the engine", func(t *testing.T) {
		var got models.Filter
		h := newTestHandlers(&mocks.MockAnalyticsService{
			FacultyPerformanceFunc: func(ctx context.Context, f models.Filter) ([]analytics.FacultyPerformance, error) {
				got = f
				return nil, nil
			},
		})

		rec := doRequest(t, h, "/faculty?academicYearId=ay1&lectureType=LECTURE")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ay1", got.AcademicYearID)
		assert.Equal(t, "LECTURE", got.LectureType)
	})

	t.Run("bad query parameter", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{})

		rec := doRequest(t, h, "/subjects?semester=zero")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Contains(t, env.Error, "invalid semester")
	})

	t.Run("storage failure maps to 500", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			SubjectRatingsFunc: func(ctx context.Context, f models.Filter) ([]analytics.SubjectRating, error) {
				return nil, fmt.Errorf("%w: connection refused", analytics.ErrStorageFailure)
			},
		})

		rec := doRequest(t, h, "/subjects")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "aggregation failed", env.Error)
		assert.NotContains(t, env.Error, "connection refused")
	})

	t.Run("trend endpoints route", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			AcademicYearTrendsFunc: func(ctx context.Context, f models.Filter) ([]analytics.AcademicYearTrend, error) {
				return []analytics.AcademicYearTrend{{AcademicYear: "2024-25"}}, nil
			},
			SemesterTrendsFunc: func(ctx context.Context, f models.Filter) ([]analytics.SemesterTrend, error) {
				return []analytics.SemesterTrend{{Semester: 3}}, nil
			},
			DepartmentTrendsFunc: func(ctx context.Context, f models.Filter) ([]analytics.DepartmentTrend, error) {
				return []analytics.DepartmentTrend{{AcademicYear: "2024-25"}}, nil
			},
		})

		for _, target := range []string{"/trends/academic-years", "/trends/semesters", "/trends/departments"} {
			rec := doRequest(t, h, target)
			assert.Equal(t, http.StatusOK, rec.Code, target)
		}
	})
}

func TestDetailEndpoints(t *testing.T) {
	t.Run("subject detail success", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			SubjectDetailFunc: func(ctx context.Context, subjectID string, f models.Filter) (*analytics.SubjectDetail, error) {
				assert.Equal(t, "sub-1", subjectID)
				return &analytics.SubjectDetail{SubjectID: subjectID, SubjectName: "Data Structures"}, nil
			},
		})

		rec := doRequest(t, h, "/subjects/sub-1")

		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Data analytics.SubjectDetail `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "Data Structures", env.Data.SubjectName)
	})

	t.Run("not found surfaces the engine message", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			FacultyDetailFunc: func(ctx context.Context, facultyID string, f models.Filter) (*analytics.FacultyDetail, error) {
				return nil, fmt.Errorf("%w: faculty %q has been deleted", analytics.ErrNotFound, "A. Mehta")
			},
		})

		rec := doRequest(t, h, "/faculty/fac-1")

		require.Equal(t, http.StatusNotFound, rec.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, `faculty "A. Mehta" has been deleted`, env.Error)
	})

	t.Run("missing entity id", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/divisions/ignored", nil)

		// Bypass the router so the URL parameter is absent.
		h.GetDivisionDetail(rec, r)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "divisionID is required", env.Error)
	})

	t.Run("division detail routes with filter", func(t *testing.T) {
		h := newTestHandlers(&mocks.MockAnalyticsService{
			DivisionDetailFunc: func(ctx context.Context, divisionID string, f models.Filter) (*analytics.DivisionDetail, error) {
				assert.Equal(t, "div-1", divisionID)
				assert.True(t, f.IncludeDeleted)
				return &analytics.DivisionDetail{DivisionID: divisionID}, nil
			},
		})

		rec := doRequest(t, h, "/divisions/div-1?includeDeleted=true")

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCacheBehavior(t *testing.T) {
	t.Run("cache hit serves the cached value", func(t *testing.T) {
		// The engine would answer 0 responses; the cached value answers 7,
		// so the body proves which source served the request.
		svc := &mocks.MockAnalyticsService{
			OverallStatsFunc: func(ctx context.Context, f models.Filter) (analytics.OverallStats, error) {
				return analytics.OverallStats{}, nil
			},
		}
		cache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				*dest.(*analytics.OverallStats) = analytics.OverallStats{TotalResponses: 7}
				return nil
			},
		}
		h := NewHandlers(svc, cache, zap.NewNop(), time.Minute)

		rec := doRequest(t, h, "/overall")

		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Data analytics.OverallStats `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, 7, env.Data.TotalResponses)
	})

	t.Run("cache miss populates and serves fresh data", func(t *testing.T) {
		setKeys := make(chan string, 1)
		svc := &mocks.MockAnalyticsService{
			OverallStatsFunc: func(ctx context.Context, f models.Filter) (analytics.OverallStats, error) {
				return analytics.OverallStats{TotalResponses: 9}, nil
			},
		}
		cache := &mocks.MockCacher{
			SetFunc: func(ctx context.Context, key string, value any, expiration time.Duration) error {
				select {
				case setKeys <- key:
				default:
				}
				return nil
			},
		}
		h := NewHandlers(svc, cache, zap.NewNop(), time.Minute)

		rec := doRequest(t, h, "/overall")

		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Data analytics.OverallStats `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, 9, env.Data.TotalResponses)

		select {
		case key := <-setKeys:
			assert.Contains(t, key, "http:analytics:overall")
		case <-time.After(2 * time.Second):
			t.Fatal("expected an async cache population")
		}
	})
}
