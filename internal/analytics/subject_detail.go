package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// SubjectDetail drills into a single subject: lecture/lab/overall ratings
// plus faculty, division and question-category breakdowns. The subject is
// looked up independently of the snapshot fetch so "unknown id", "deleted"
// and "no feedback" stay distinguishable failures.
func (s *Service) SubjectDetail(ctx context.Context, subjectID string, f models.Filter) (*SubjectDetail, error) {
	subj, err := s.lookupSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subj.IsDeleted && !f.IncludeDeleted {
		return nil, fmt.Errorf("%w: subject %q has been deleted", ErrNotFound, subj.Name)
	}

	f.SubjectID = subjectID
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rated) == 0 {
		return nil, fmt.Errorf("%w: no feedback responses recorded for subject %q", ErrNotFound, subj.Name)
	}

	detail := &SubjectDetail{
		SubjectID:           subj.ID,
		SubjectName:         subj.Name,
		SubjectAbbreviation: subj.Abbreviation,
		SubjectCode:         subj.Code,
	}

	var lecture, lab, overall ratingAccum
	for _, sc := range rated {
		overall.add(sc.score)
		if Classify(sc.rec) == Lab {
			lab.add(sc.score)
		} else {
			lecture.add(sc.score)
		}
	}
	detail.LectureRating = lecture.meanPtr()
	detail.LabRating = lab.meanPtr()
	detail.OverallRating = overall.mean()
	detail.LectureResponses = lecture.count
	detail.LabResponses = lab.count
	detail.TotalResponses = overall.count

	detail.FacultyBreakdown = subjectFacultyBreakdown(rated)
	detail.DivisionBreakdown = subjectDivisionBreakdown(rated)
	detail.CategoryBreakdown = categoryBreakdownByID(rated)

	return detail, nil
}

type facultyLTKey struct {
	facultyID   string
	lectureType LectureType
}

func subjectFacultyBreakdown(rated []scored) []SubjectFacultySlice {
	keys, groups := groupBy(rated, func(sc scored) facultyLTKey {
		return facultyLTKey{facultyID: sc.rec.FacultyID, lectureType: Classify(sc.rec)}
	})

	rows := make([]SubjectFacultySlice, 0, len(keys))
	for _, k := range keys {
		grp := groups[k]

		var acc ratingAccum
		divisions := distinct{}
		for _, sc := range grp {
			acc.add(sc.score)
			divisions.add(sc.rec.DivisionName)
		}

		names := make([]string, 0, len(divisions))
		for name := range divisions {
			names = append(names, name)
		}
		sort.Strings(names)

		rows = append(rows, SubjectFacultySlice{
			FacultyID:      k.facultyID,
			FacultyName:    grp[0].rec.FacultyName,
			LectureType:    k.lectureType,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
			Divisions:      names,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FacultyName != rows[j].FacultyName {
			return rows[i].FacultyName < rows[j].FacultyName
		}
		return rows[i].LectureType < rows[j].LectureType
	})
	return rows
}

func subjectDivisionBreakdown(rated []scored) []SubjectDivisionSlice {
	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.DivisionID })

	rows := make([]SubjectDivisionSlice, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]

		var lecture, lab ratingAccum
		for _, sc := range grp {
			if Classify(sc.rec) == Lab {
				lab.add(sc.score)
			} else {
				lecture.add(sc.score)
			}
		}

		rows = append(rows, SubjectDivisionSlice{
			DivisionID:       id,
			DivisionName:     grp[0].rec.DivisionName,
			LectureRating:    lecture.meanPtr(),
			LabRating:        lab.meanPtr(),
			LectureResponses: lecture.count,
			LabResponses:     lab.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DivisionName < rows[j].DivisionName
	})
	return rows
}

// categoryBreakdownByID groups by question category id; records without a
// category name fall under "Uncategorized".
func categoryBreakdownByID(rated []scored) []CategorySlice {
	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.QuestionCategoryID })

	rows := make([]CategorySlice, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, CategorySlice{
			CategoryID:     id,
			CategoryName:   categoryName(grp[0].rec),
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		return rows[i].CategoryID < rows[j].CategoryID
	})
	return rows
}

func categoryName(r models.FeedbackSnapshot) string {
	if r.QuestionCategoryName == nil || *r.QuestionCategoryName == "" {
		return "Uncategorized"
	}
	return *r.QuestionCategoryName
}
