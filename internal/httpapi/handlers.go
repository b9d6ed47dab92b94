package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/feedback-ldrp/reflectify-backend/internal/analytics"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second

	// Nginx convention for "client closed request"; surfaced when the
	// caller goes away mid-aggregation.
	statusClientClosedRequest = 499
)

type CacheKeyType string

const (
	cacheKeyOverall        CacheKeyType = "http:analytics:overall"
	cacheKeySubjects       CacheKeyType = "http:analytics:subjects"
	cacheKeyFaculty        CacheKeyType = "http:analytics:faculty"
	cacheKeyDivisions      CacheKeyType = "http:analytics:divisions"
	cacheKeyYearTrends     CacheKeyType = "http:analytics:trends:academic-years"
	cacheKeySemesterTrends CacheKeyType = "http:analytics:trends:semesters"
	cacheKeyDeptTrends     CacheKeyType = "http:analytics:trends:departments"
	cacheKeySubjectDetail  CacheKeyType = "http:analytics:subject-detail"
	cacheKeyFacultyDetail  CacheKeyType = "http:analytics:faculty-detail"
	cacheKeyDivisionDetail CacheKeyType = "http:analytics:division-detail"
)

type Handlers struct {
	analytics AnalyticsService
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

// NewHandlers initializes the analytics HTTP handlers.
func NewHandlers(svc AnalyticsService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if svc == nil {
		panic("nil AnalyticsService provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		analytics: svc,
		cache:     cache,
		logger:    logger.Named("http-handler"),
		cacheTTL:  ttl,
	}
}

// Routes mounts the analytics endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/overall", h.GetOverallStats)
	r.Get("/subjects", h.GetSubjectRatings)
	r.Get("/subjects/{subjectID}", h.GetSubjectDetail)
	r.Get("/faculty", h.GetFacultyPerformance)
	r.Get("/faculty/{facultyID}", h.GetFacultyDetail)
	r.Get("/divisions", h.GetDivisionPerformance)
	r.Get("/divisions/{divisionID}", h.GetDivisionDetail)
	r.Get("/trends/academic-years", h.GetAcademicYearTrends)
	r.Get("/trends/semesters", h.GetSemesterTrends)
	r.Get("/trends/departments", h.GetDepartmentTrends)
	return r
}

func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	f := models.Filter{
		AcademicYearID: q.Get("academicYearId"),
		DepartmentID:   q.Get("departmentId"),
		SubjectID:      q.Get("subjectId"),
		DivisionID:     q.Get("divisionId"),
		FacultyID:      q.Get("facultyId"),
	}

	if v := q.Get("semester"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return models.Filter{}, fmt.Errorf("invalid semester %q", v)
		}
		f.SemesterNumber = n
	}
	if v := q.Get("lectureType"); v != "" {
		lt, ok := analytics.ParseLectureType(v)
		if !ok {
			return models.Filter{}, fmt.Errorf("invalid lectureType %q", v)
		}
		f.LectureType = string(lt)
	}
	if v := q.Get("includeDeleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return models.Filter{}, fmt.Errorf("invalid includeDeleted %q", v)
		}
		f.IncludeDeleted = b
	}
	return f, nil
}

func cacheKey(prefix CacheKeyType, entityID string, f models.Filter) string {
	return fmt.Sprintf("%s:%s:%s|%s|%s|%d|%s|%s|%s|%t",
		prefix, entityID,
		f.AcademicYearID, f.DepartmentID, f.SubjectID, f.SemesterNumber,
		f.DivisionID, f.FacultyID, f.LectureType, f.IncludeDeleted)
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: v}); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: msg})
}

// handleError maps engine failures onto HTTP statuses. The three not-found
// causes share 404 but keep their distinct message texts; storage failures
// collapse to a generic message with the cause logged, never leaked.
func (h *Handlers) handleError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		h.writeError(w, statusClientClosedRequest, "request canceled")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		h.writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	switch {
	case errors.Is(err, analytics.ErrNotFound):
		h.logger.Info("entity not found", zap.String("op", op), zap.String("cause", err.Error()))
		h.writeError(w, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, analytics.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "aggregation failed")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "aggregation failed")
	}
}

func notFoundMessage(err error) string {
	return strings.TrimPrefix(err.Error(), analytics.ErrNotFound.Error()+": ")
}

// serveRollup runs the shared filter-parse / cache / respond pipeline for a
// system-wide rollup endpoint.
func serveRollup[T any](
	h *Handlers,
	w http.ResponseWriter,
	r *http.Request,
	op string,
	prefix CacheKeyType,
	fetch func(ctx context.Context, f models.Filter) (T, error),
) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := cacheKey(prefix, "", f)
	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (T, error) {
		return fetch(fetchCtx, f)
	})
	if err != nil {
		h.handleError(ctx, w, op, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// serveDetail is serveRollup for single-entity drill-downs.
func serveDetail[T any](
	h *Handlers,
	w http.ResponseWriter,
	r *http.Request,
	op string,
	prefix CacheKeyType,
	param string,
	fetch func(ctx context.Context, entityID string, f models.Filter) (T, error),
) {
	entityID := strings.TrimSpace(chi.URLParam(r, param))
	if entityID == "" {
		h.writeError(w, http.StatusBadRequest, param+" is required")
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := cacheKey(prefix, entityID, f)
	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (T, error) {
		return fetch(fetchCtx, entityID, f)
	})
	if err != nil {
		h.handleError(ctx, w, op, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetOverallStats(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetOverallStats", cacheKeyOverall, h.analytics.OverallStats)
}

func (h *Handlers) GetSubjectRatings(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetSubjectRatings", cacheKeySubjects, h.analytics.SubjectRatings)
}

func (h *Handlers) GetFacultyPerformance(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetFacultyPerformance", cacheKeyFaculty, h.analytics.FacultyPerformance)
}

func (h *Handlers) GetDivisionPerformance(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetDivisionPerformance", cacheKeyDivisions, h.analytics.DivisionPerformance)
}

func (h *Handlers) GetAcademicYearTrends(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetAcademicYearTrends", cacheKeyYearTrends, h.analytics.AcademicYearTrends)
}

func (h *Handlers) GetSemesterTrends(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetSemesterTrends", cacheKeySemesterTrends, h.analytics.SemesterTrends)
}

func (h *Handlers) GetDepartmentTrends(w http.ResponseWriter, r *http.Request) {
	serveRollup(h, w, r, "GetDepartmentTrends", cacheKeyDeptTrends, h.analytics.DepartmentTrends)
}

func (h *Handlers) GetSubjectDetail(w http.ResponseWriter, r *http.Request) {
	serveDetail(h, w, r, "GetSubjectDetail", cacheKeySubjectDetail, "subjectID", h.analytics.SubjectDetail)
}

func (h *Handlers) GetFacultyDetail(w http.ResponseWriter, r *http.Request) {
	serveDetail(h, w, r, "GetFacultyDetail", cacheKeyFacultyDetail, "facultyID", h.analytics.FacultyDetail)
}

func (h *Handlers) GetDivisionDetail(w http.ResponseWriter, r *http.Request) {
	serveDetail(h, w, r, "GetDivisionDetail", cacheKeyDivisionDetail, "divisionID", h.analytics.DivisionDetail)
}
