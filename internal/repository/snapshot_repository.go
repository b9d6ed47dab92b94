package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// snapshotQuery is the denormalized join producing one row per
// (student response × question), already stitched across questions, forms,
// divisions, semesters, departments, academic years, subjects and faculty.
// The engine consumes these rows as-is.
const snapshotQuery = `
	SELECT
		sr.id,
		sr.student_id,
		fq.form_id,
		fq.id,
		fq.category_id,
		qc.name,
		fq.batch,
		sr.value,
		sub.id, sub.name, sub.abbreviation, sub.subject_code,
		fac.id, fac.name, fac.abbreviation, fac.designation,
		dv.id, dv.name,
		dep.id, dep.name, dep.abbreviation,
		sem.id, sem.semester_number,
		ay.id, ay.year_string
	FROM student_responses AS sr
	JOIN feedback_questions AS fq ON sr.question_id = fq.id
	LEFT JOIN question_categories AS qc ON fq.category_id = qc.id
	JOIN feedback_forms AS ff ON fq.form_id = ff.id
	JOIN divisions AS dv ON ff.division_id = dv.id
	JOIN semesters AS sem ON dv.semester_id = sem.id
	JOIN departments AS dep ON sem.department_id = dep.id
	JOIN academic_years AS ay ON sem.academic_year_id = ay.id
	JOIN subjects AS sub ON fq.subject_id = sub.id
	JOIN faculty AS fac ON fq.faculty_id = fac.id
`

// ListSnapshots fetches the flat snapshot collection matching a filter set,
// ordered by submission. Lecture-type filtering is intentionally absent
// here; it is a derived attribute the engine computes per record.
func (s *SnapshotRepository) ListSnapshots(ctx context.Context, f models.Filter) ([]models.FeedbackSnapshot, error) {
	var conds []string
	var args []any

	if f.AcademicYearID != "" {
		conds = append(conds, "ay.id = ?")
		args = append(args, f.AcademicYearID)
	}
	if f.DepartmentID != "" {
		conds = append(conds, "dep.id = ?")
		args = append(args, f.DepartmentID)
	}
	if f.SubjectID != "" {
		conds = append(conds, "sub.id = ?")
		args = append(args, f.SubjectID)
	}
	if f.SemesterNumber != 0 {
		conds = append(conds, "sem.semester_number = ?")
		args = append(args, f.SemesterNumber)
	}
	if f.DivisionID != "" {
		conds = append(conds, "dv.id = ?")
		args = append(args, f.DivisionID)
	}
	if f.FacultyID != "" {
		conds = append(conds, "fac.id = ?")
		args = append(args, f.FacultyID)
	}
	if !f.IncludeDeleted {
		conds = append(conds,
			"sr.is_deleted = 0",
			"sub.is_deleted = 0",
			"fac.is_deleted = 0",
			"dv.is_deleted = 0")
	}

	query := snapshotQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sr.submitted_at, sr.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ListSnapshots: %w", err)
	}
	defer rows.Close()

	var results []models.FeedbackSnapshot
	for rows.Next() {
		var snap models.FeedbackSnapshot
		var categoryID, categoryName, batch, value sql.NullString

		if err := rows.Scan(
			&snap.ResponseID,
			&snap.StudentID,
			&snap.FormID,
			&snap.QuestionID,
			&categoryID,
			&categoryName,
			&batch,
			&value,
			&snap.SubjectID, &snap.SubjectName, &snap.SubjectAbbreviation, &snap.SubjectCode,
			&snap.FacultyID, &snap.FacultyName, &snap.FacultyAbbreviation, &snap.FacultyDesignation,
			&snap.DivisionID, &snap.DivisionName,
			&snap.DepartmentID, &snap.DepartmentName, &snap.DepartmentAbbreviation,
			&snap.SemesterID, &snap.SemesterNumber,
			&snap.AcademicYearID, &snap.AcademicYear,
		); err != nil {
			return nil, fmt.Errorf("scan ListSnapshots row: %w", err)
		}

		snap.QuestionCategoryID = categoryID.String
		if categoryName.Valid {
			name := categoryName.String
			snap.QuestionCategoryName = &name
		}
		if batch.Valid {
			b := batch.String
			snap.QuestionBatch = &b
		}
		if value.Valid {
			snap.ResponseValue = value.String
		}

		results = append(results, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListSnapshots: %w", err)
	}
	return results, nil
}

// GetSubject returns the subject row including its soft-delete flag, or
// (nil, nil) when no such subject exists.
func (s *SnapshotRepository) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, abbreviation, subject_code, is_deleted FROM subjects WHERE id = ?`

	var sub models.Subject
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.Name, &sub.Abbreviation, &sub.Code, &sub.IsDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query GetSubject: %w", err)
	}
	return &sub, nil
}

// GetFaculty returns the faculty row including its soft-delete flag, or
// (nil, nil) when no such faculty exists.
func (s *SnapshotRepository) GetFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	const query = `SELECT id, name, abbreviation, designation, is_deleted FROM faculty WHERE id = ?`

	var fac models.Faculty
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&fac.ID, &fac.Name, &fac.Abbreviation, &fac.Designation, &fac.IsDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query GetFaculty: %w", err)
	}
	return &fac, nil
}

// GetDivision returns the division row including its soft-delete flag, or
// (nil, nil) when no such division exists.
func (s *SnapshotRepository) GetDivision(ctx context.Context, id string) (*models.Division, error) {
	const query = `SELECT id, name, is_deleted FROM divisions WHERE id = ?`

	var div models.Division
	err := s.db.QueryRowContext(ctx, query, id).Scan(&div.ID, &div.Name, &div.IsDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query GetDivision: %w", err)
	}
	return &div, nil
}
