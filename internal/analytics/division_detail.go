package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// DivisionDetail drills into a single division: overall rating, a
// faculty×subject breakdown, a per-subject lecture/lab split, and a
// year-over-year comparison.
func (s *Service) DivisionDetail(ctx context.Context, divisionID string, f models.Filter) (*DivisionDetail, error) {
	div, err := s.lookupDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	if div.IsDeleted && !f.IncludeDeleted {
		return nil, fmt.Errorf("%w: division %q has been deleted", ErrNotFound, div.Name)
	}

	f.DivisionID = divisionID
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rated) == 0 {
		return nil, fmt.Errorf("%w: no feedback responses recorded for division %q", ErrNotFound, div.Name)
	}

	detail := &DivisionDetail{
		DivisionID:   div.ID,
		DivisionName: div.Name,
	}

	var acc ratingAccum
	for _, sc := range rated {
		acc.add(sc.score)
	}
	detail.AverageRating = acc.mean()
	detail.TotalResponses = acc.count

	detail.FacultyBreakdown = divisionFacultyBreakdown(rated)
	detail.SubjectBreakdown = divisionSubjectBreakdown(rated)
	detail.YearComparison = divisionYearComparison(rated)

	return detail, nil
}

type facultySubjectLTKey struct {
	facultyID   string
	subjectID   string
	lectureType LectureType
}

func divisionFacultyBreakdown(rated []scored) []DivisionFacultySlice {
	keys, groups := groupBy(rated, func(sc scored) facultySubjectLTKey {
		return facultySubjectLTKey{
			facultyID:   sc.rec.FacultyID,
			subjectID:   sc.rec.SubjectID,
			lectureType: Classify(sc.rec),
		}
	})

	rows := make([]DivisionFacultySlice, 0, len(keys))
	for _, k := range keys {
		grp := groups[k]
		first := grp[0].rec

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, DivisionFacultySlice{
			FacultyID:      k.facultyID,
			FacultyName:    first.FacultyName,
			SubjectID:      k.subjectID,
			SubjectName:    first.SubjectName,
			LectureType:    k.lectureType,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FacultyName != rows[j].FacultyName {
			return rows[i].FacultyName < rows[j].FacultyName
		}
		if rows[i].SubjectName != rows[j].SubjectName {
			return rows[i].SubjectName < rows[j].SubjectName
		}
		return rows[i].LectureType < rows[j].LectureType
	})
	return rows
}

func divisionSubjectBreakdown(rated []scored) []DivisionSubjectSlice {
	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.SubjectID })

	rows := make([]DivisionSubjectSlice, 0, len(keys))
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

		rows = append(rows, DivisionSubjectSlice{
			SubjectID:        id,
			SubjectName:      grp[0].rec.SubjectName,
			LectureRating:    lecture.meanPtr(),
			LabRating:        lab.meanPtr(),
			LectureResponses: lecture.count,
			LabResponses:     lab.count,
			TotalResponses:   lecture.count + lab.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubjectName < rows[j].SubjectName
	})
	return rows
}

func divisionYearComparison(rated []scored) []DivisionYearPoint {
	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.AcademicYearID })

	rows := make([]DivisionYearPoint, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, DivisionYearPoint{
			AcademicYearID: id,
			AcademicYear:   grp[0].rec.AcademicYear,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AcademicYear < rows[j].AcademicYear
	})
	return rows
}
