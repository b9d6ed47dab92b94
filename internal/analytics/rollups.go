package analytics

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

// The seven rollup builders. Each consumes the full filtered, normalized
// snapshot collection and reduces its partitions independently; display
// fields for a group are taken verbatim from the first record seen in it.
// An empty input yields an empty table (or zeroed stats), not an error.

// OverallStats returns the single-row system-wide summary.
func (s *Service) OverallStats(ctx context.Context, f models.Filter) (OverallStats, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return OverallStats{}, err
	}

	var acc ratingAccum
	subjects := distinct{}
	faculty := distinct{}
	students := distinct{}
	divisions := distinct{}
	for _, sc := range rated {
		acc.add(sc.score)
		subjects.add(sc.rec.SubjectID)
		faculty.add(sc.rec.FacultyID)
		students.add(sc.rec.StudentID)
		divisions.add(sc.rec.DivisionID)
	}

	s.logger.Info("computed overall stats",
		zap.Int("responses", acc.count),
		zap.Int("subjects", subjects.count()))

	return OverallStats{
		TotalResponses:  acc.count,
		AverageRating:   acc.mean(),
		UniqueSubjects:  subjects.count(),
		UniqueFaculty:   faculty.count(),
		UniqueStudents:  students.count(),
		UniqueDivisions: divisions.count(),
	}, nil
}

// SubjectRatings returns per-subject lecture/lab/combined ratings, ordered
// by combined rating descending.
func (s *Service) SubjectRatings(ctx context.Context, f models.Filter) ([]SubjectRating, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.SubjectID })

	rows := make([]SubjectRating, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]
		first := grp[0].rec

		var lecture, lab, overall ratingAccum
		faculty := distinct{}
		divisions := distinct{}
		for _, sc := range grp {
			overall.add(sc.score)
			if Classify(sc.rec) == Lab {
				lab.add(sc.score)
			} else {
				lecture.add(sc.score)
			}
			faculty.add(sc.rec.FacultyID)
			divisions.add(sc.rec.DivisionID)
		}

		rows = append(rows, SubjectRating{
			SubjectID:           id,
			SubjectName:         first.SubjectName,
			SubjectAbbreviation: first.SubjectAbbreviation,
			SubjectCode:         first.SubjectCode,
			LectureRating:       lecture.meanPtr(),
			LabRating:           lab.meanPtr(),
			OverallRating:       overall.mean(),
			LectureResponses:    lecture.count,
			LabResponses:        lab.count,
			TotalResponses:      overall.count,
			UniqueFaculty:       faculty.count(),
			UniqueDivisions:     divisions.count(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OverallRating > rows[j].OverallRating
	})
	return rows, nil
}

// FacultyPerformance returns per-faculty ratings ranked by average rating
// descending. Ties on the rounded average are broken by faculty id
// ascending so rank assignment is deterministic regardless of fetch order.
func (s *Service) FacultyPerformance(ctx context.Context, f models.Filter) ([]FacultyPerformance, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.FacultyID })

	rows := make([]FacultyPerformance, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]
		first := grp[0].rec

		var acc ratingAccum
		subjects := distinct{}
		divisions := distinct{}
		for _, sc := range grp {
			acc.add(sc.score)
			subjects.add(sc.rec.SubjectID)
			divisions.add(sc.rec.DivisionID)
		}

		rows = append(rows, FacultyPerformance{
			FacultyID:           id,
			FacultyName:         first.FacultyName,
			FacultyAbbreviation: first.FacultyAbbreviation,
			Designation:         first.FacultyDesignation,
			AverageRating:       acc.mean(),
			TotalResponses:      acc.count,
			UniqueSubjects:      subjects.count(),
			UniqueDivisions:     divisions.count(),
		})
	}

	sortFacultyRows(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func sortFacultyRows(rows []FacultyPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AverageRating != rows[j].AverageRating {
			return rows[i].AverageRating > rows[j].AverageRating
		}
		return rows[i].FacultyID < rows[j].FacultyID
	})
}

// DivisionPerformance returns per-division ratings ordered by division name.
func (s *Service) DivisionPerformance(ctx context.Context, f models.Filter) ([]DivisionPerformance, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.DivisionID })

	rows := make([]DivisionPerformance, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]
		first := grp[0].rec

		var acc ratingAccum
		faculty := distinct{}
		subjects := distinct{}
		for _, sc := range grp {
			acc.add(sc.score)
			faculty.add(sc.rec.FacultyID)
			subjects.add(sc.rec.SubjectID)
		}

		rows = append(rows, DivisionPerformance{
			DivisionID:     id,
			DivisionName:   first.DivisionName,
			AverageRating:  acc.mean(),
			TotalResponses: acc.count,
			UniqueFaculty:  faculty.count(),
			UniqueSubjects: subjects.count(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DivisionName < rows[j].DivisionName
	})
	return rows, nil
}

// AcademicYearTrends returns per-academic-year ratings ordered by year label.
func (s *Service) AcademicYearTrends(ctx context.Context, f models.Filter) ([]AcademicYearTrend, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	keys, groups := groupBy(rated, func(sc scored) string { return sc.rec.AcademicYearID })

	rows := make([]AcademicYearTrend, 0, len(keys))
	for _, id := range keys {
		grp := groups[id]
		first := grp[0].rec

		var acc ratingAccum
		departments := distinct{}
		divisions := distinct{}
		for _, sc := range grp {
			acc.add(sc.score)
			departments.add(sc.rec.DepartmentID)
			divisions.add(sc.rec.DivisionID)
		}

		rows = append(rows, AcademicYearTrend{
			AcademicYearID:    id,
			AcademicYear:      first.AcademicYear,
			AverageRating:     acc.mean(),
			TotalResponses:    acc.count,
			UniqueDepartments: departments.count(),
			UniqueDivisions:   divisions.count(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AcademicYear < rows[j].AcademicYear
	})
	return rows, nil
}

// SemesterTrends returns per-semester ratings broken down by academic year,
// ordered by semester number with nested rows ordered by year label. Only
// semesters that actually have data are materialized; rendering absent
// slots is the consumer's concern.
func (s *Service) SemesterTrends(ctx context.Context, f models.Filter) ([]SemesterTrend, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	semKeys, semGroups := groupBy(rated, func(sc scored) int { return sc.rec.SemesterNumber })

	rows := make([]SemesterTrend, 0, len(semKeys))
	for _, sem := range semKeys {
		yearKeys, yearGroups := groupBy(semGroups[sem], func(sc scored) string { return sc.rec.AcademicYearID })

		years := make([]SemesterYearPoint, 0, len(yearKeys))
		for _, yid := range yearKeys {
			grp := yearGroups[yid]

			var acc ratingAccum
			for _, sc := range grp {
				acc.add(sc.score)
			}
			years = append(years, SemesterYearPoint{
				AcademicYearID: yid,
				AcademicYear:   grp[0].rec.AcademicYear,
				AverageRating:  acc.mean(),
				TotalResponses: acc.count,
			})
		}
		sort.SliceStable(years, func(i, j int) bool {
			return years[i].AcademicYear < years[j].AcademicYear
		})

		rows = append(rows, SemesterTrend{Semester: sem, Years: years})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Semester < rows[j].Semester
	})
	return rows, nil
}

// DepartmentTrends returns per-year ratings broken down by department,
// ordered by year label with nested rows ordered by department name.
func (s *Service) DepartmentTrends(ctx context.Context, f models.Filter) ([]DepartmentTrend, error) {
	rated, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	yearKeys, yearGroups := groupBy(rated, func(sc scored) string { return sc.rec.AcademicYear })

	rows := make([]DepartmentTrend, 0, len(yearKeys))
	for _, year := range yearKeys {
		deptKeys, deptGroups := groupBy(yearGroups[year], func(sc scored) string { return sc.rec.DepartmentID })

		departments := make([]DepartmentYearPoint, 0, len(deptKeys))
		for _, did := range deptKeys {
			grp := deptGroups[did]

			var acc ratingAccum
			for _, sc := range grp {
				acc.add(sc.score)
			}
			departments = append(departments, DepartmentYearPoint{
				DepartmentID:   did,
				DepartmentName: grp[0].rec.DepartmentName,
				AverageRating:  acc.mean(),
				TotalResponses: acc.count,
			})
		}
		sort.SliceStable(departments, func(i, j int) bool {
			return departments[i].DepartmentName < departments[j].DepartmentName
		})

		rows = append(rows, DepartmentTrend{AcademicYear: year, Departments: departments})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AcademicYear < rows[j].AcademicYear
	})
	return rows, nil
}
