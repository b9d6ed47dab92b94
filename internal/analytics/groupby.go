package analytics

import (
	"math"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// groupBy partitions items by a typed composite key. Keys come back in
// first-seen order and insertion order is preserved within each group, so
// downstream reductions are deterministic without re-sorting the input.
func groupBy[K comparable, T any](items []T, key func(T) K) ([]K, map[K][]T) {
	order := make([]K, 0)
	groups := make(map[K][]T)
	for _, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], it)
	}
	return order, groups
}

// distinct counts unique string ids.
type distinct map[string]struct{}

func (d distinct) add(id string) { d[id] = struct{}{} }
func (d distinct) count() int    { return len(d) }

// ratingAccum accumulates raw score sums. Intermediate sums are never
// rounded; rounding happens once at the output boundary via mean/meanPtr.
type ratingAccum struct {
	sum   float64
	count int
}

func (a *ratingAccum) add(score float64) {
	a.sum += score
	a.count++
}

// mean returns the rounded average, or 0 when nothing was counted. Used for
// combined "rating" fields whose empty default is zero.
func (a ratingAccum) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return round2(a.sum / float64(a.count))
}

// meanPtr returns the rounded average, or nil when nothing was counted. Used
// for subtype ratings (lecture-only, lab-only) whose empty default is null.
func (a ratingAccum) meanPtr() *float64 {
	if a.count == 0 {
		return nil
	}
	v := round2(a.sum / float64(a.count))
	return &v
}

// round2 rounds half-up to two decimal places. Scores are positive, so the
// floor(x+0.5) form is exact round-half-up here.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// scored pairs a snapshot with its parsed, countable rating.
type scored struct {
	rec   models.FeedbackSnapshot
	score float64
}

// validScores keeps the snapshots that carry a rating strictly greater than
// zero. Zero and negative values mean "not a rating" and contribute to no
// mean and no count anywhere in the engine.
func validScores(recs []models.FeedbackSnapshot) []scored {
	out := make([]scored, 0, len(recs))
	for _, r := range recs {
		if v, ok := ParseScore(r.ResponseValue); ok && v > 0 {
			out = append(out, scored{rec: r, score: v})
		}
	}
	return out
}

func filterByLectureType(rated []scored, lt LectureType) []scored {
	out := make([]scored, 0, len(rated))
	for _, sc := range rated {
		if Classify(sc.rec) == lt {
			out = append(out, sc)
		}
	}
	return out
}
