package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// FacultyDetail drills into a single faculty member. Rank and the total
// faculty count are computed against a second, wider fetch constrained only
// by academic year, so the rank reflects standing among all faculty rather
// than within this member's own filtered subset.
func (s *Service) FacultyDetail(ctx context.Context, facultyID string, f models.Filter) (*FacultyDetail, error) {
	fac, err := s.lookupFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	if fac.IsDeleted && !f.IncludeDeleted {
		return nil, fmt.Errorf("%w: faculty %q has been deleted", ErrNotFound, fac.Name)
	}

	f.FacultyID = facultyID
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rated) == 0 {
		return nil, fmt.Errorf("%w: no feedback responses recorded for faculty %q", ErrNotFound, fac.Name)
	}

	// Second sequential fetch for the ranking universe.
	rank, total, err := s.facultyRank(ctx, facultyID, models.Filter{
		AcademicYearID: f.AcademicYearID,
		IncludeDeleted: f.IncludeDeleted,
	})
	if err != nil {
		return nil, err
	}

	detail := &FacultyDetail{
		FacultyID:           fac.ID,
		FacultyName:         fac.Name,
		FacultyAbbreviation: fac.Abbreviation,
		Designation:         fac.Designation,
		Rank:                rank,
		TotalFaculty:        total,
	}

	var acc ratingAccum
	for _, sc := range rated {
		acc.add(sc.score)
	}
	detail.AverageRating = acc.mean()
	detail.TotalResponses = acc.count

	detail.SubjectBreakdown = facultySubjectBreakdown(rated)
	detail.DivisionBreakdown = facultyDivisionBreakdown(rated)
	detail.CategoryBreakdown = categoryBreakdownByName(rated)
	detail.Trend = facultyTrend(rated)

	return detail, nil
}

// facultyRank reduces the wider record set to per-faculty averages and
// locates the target. Same ordering rule as the FacultyPerformance rollup:
// rounded average descending, faculty id ascending on ties.
func (s *Service) facultyRank(ctx context.Context, facultyID string, f models.Filter) (rank, total int, err error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return 0, 0, err
	}

	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.FacultyID })

	rows := make([]FacultyPerformance, 0, len(keys))
	for _, id := range keys {
		var acc ratingAccum
		for _, sc := range groups[id] {
			acc.add(sc.score)
		}
		rows = append(rows, FacultyPerformance{FacultyID: id, AverageRating: acc.mean()})
	}
	sortFacultyRows(rows)

	for i, row := range rows {
		if row.FacultyID == facultyID {
			return i + 1, len(rows), nil
		}
	}
	return 0, len(rows), nil
}

type subjectLTKey struct {
	subjectID   string
	lectureType LectureType
}

func facultySubjectBreakdown(rated []scored) []FacultySubjectSlice {
	keys, groups := groupBy(rated, func(sc scored) subjectLTKey {
		return subjectLTKey{subjectID: sc.rec.SubjectID, lectureType: Classify(sc.rec)}
	})

	rows := make([]FacultySubjectSlice, 0, len(keys))
	for _, k := range keys {
		grp := groups[k]
		first := grp[0].rec

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, FacultySubjectSlice{
			SubjectID:      k.subjectID,
			SubjectName:    first.SubjectName,
			LectureType:    k.lectureType,
			Semester:       first.SemesterNumber,
			AcademicYear:   first.AcademicYear,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SubjectName != rows[j].SubjectName {
			return rows[i].SubjectName < rows[j].SubjectName
		}
		return rows[i].LectureType < rows[j].LectureType
	})
	return rows
}

type divisionSubjectLTKey struct {
	divisionID  string
	subjectID   string
	lectureType LectureType
}

func facultyDivisionBreakdown(rated []scored) []FacultyDivisionSlice {
	keys, groups := groupBy(rated, func(sc scored) divisionSubjectLTKey {
		return divisionSubjectLTKey{
			divisionID:  sc.rec.DivisionID,
			subjectID:   sc.rec.SubjectID,
			lectureType: Classify(sc.rec),
		}
	})

	rows := make([]FacultyDivisionSlice, 0, len(keys))
	for _, k := range keys {
		grp := groups[k]
		first := grp[0].rec

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, FacultyDivisionSlice{
			DivisionID:     k.divisionID,
			DivisionName:   first.DivisionName,
			SubjectID:      k.subjectID,
			SubjectName:    first.SubjectName,
			LectureType:    k.lectureType,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DivisionName != rows[j].DivisionName {
			return rows[i].DivisionName < rows[j].DivisionName
		}
		if rows[i].SubjectName != rows[j].SubjectName {
			return rows[i].SubjectName < rows[j].SubjectName
		}
		return rows[i].LectureType < rows[j].LectureType
	})
	return rows
}

func categoryBreakdownByName(rated []scored) []CategorySlice {
	keys, groups := groupBy(rated, func(sc scored) string { return categoryName(sc.rec) })

	rows := make([]CategorySlice, 0, len(keys))
	for _, name := range keys {
		grp := groups[name]

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, CategorySlice{
			CategoryName:   name,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CategoryName < rows[j].CategoryName
	})
	return rows
}

type yearSemesterKey struct {
	academicYearID string
	semester       int
}

func facultyTrend(rated []scored) []FacultyTrendPoint {
	keys, groups := groupBy(rated, func(sc scored) yearSemesterKey {
		return yearSemesterKey{academicYearID: sc.rec.AcademicYearID, semester: sc.rec.SemesterNumber}
	})

	rows := make([]FacultyTrendPoint, 0, len(keys))
	for _, k := range keys {
		grp := groups[k]

		var acc ratingAccum
		for _, sc := range grp {
			acc.add(sc.score)
		}

		rows = append(rows, FacultyTrendPoint{
			AcademicYearID: k.academicYearID,
			AcademicYear:   grp[0].rec.AcademicYear,
			Semester:       k.semester,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AcademicYear != rows[j].AcademicYear {
			return rows[i].AcademicYear < rows[j].AcademicYear
		}
		return rows[i].Semester < rows[j].Semester
	})
	return rows
}
