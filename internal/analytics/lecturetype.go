package analytics

import (
	"strings"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// LectureType is the derived categorical split between classroom lecture and
// laboratory session feedback.
type LectureType string

const (
	Lecture LectureType = "LECTURE"
	Lab     LectureType = "LAB"
)

// noBatch is the questionBatch sentinel meaning "not a lab batch".
const noBatch = "none"

// Classify infers the lecture type of a snapshot from two independently
// sourced signals, first match wins:
//
//  1. the question category name contains "lab" (which also covers
//     "laboratory"), case-insensitive;
//  2. a question batch is present and is not the literal "none".
//
// Every builder must use this function rather than re-deriving the rule, so
// that rollups and drill-downs classify the same record identically.
func Classify(r models.FeedbackSnapshot) LectureType {
	if r.QuestionCategoryName != nil {
		if strings.Contains(strings.ToLower(*r.QuestionCategoryName), "lab") {
			return Lab
		}
	}
	if r.QuestionBatch != nil {
		if b := strings.TrimSpace(*r.QuestionBatch); b != "" && !strings.EqualFold(b, noBatch) {
			return Lab
		}
	}
	return Lecture
}

// ParseLectureType interprets a filter value. Empty input means "no filter".
func ParseLectureType(s string) (LectureType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", false
	case string(Lecture):
		return Lecture, true
	case string(Lab):
		return Lab, true
	}
	return "", false
}
