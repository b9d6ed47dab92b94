package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	schema := `
	CREATE TABLE academic_years (
		id TEXT PRIMARY KEY,
		year_string TEXT NOT NULL
	);
	CREATE TABLE departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		abbreviation TEXT NOT NULL
	);
	CREATE TABLE semesters (
		id TEXT PRIMARY KEY,
		semester_number INTEGER NOT NULL,
		department_id TEXT NOT NULL,
		academic_year_id TEXT NOT NULL
	);
	CREATE TABLE divisions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		semester_id TEXT NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE subjects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		abbreviation TEXT NOT NULL,
		subject_code TEXT NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE faculty (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		abbreviation TEXT NOT NULL,
		designation TEXT NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE question_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE feedback_forms (
		id TEXT PRIMARY KEY,
		division_id TEXT NOT NULL
	);
	CREATE TABLE feedback_questions (
		id TEXT PRIMARY KEY,
		form_id TEXT NOT NULL,
		category_id TEXT,
		batch TEXT,
		subject_id TEXT NOT NULL,
		faculty_id TEXT NOT NULL
	);
	CREATE TABLE student_responses (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		value TEXT,
		submitted_at TEXT NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

// fixture carries the generated ids so tests can filter on them.
type fixture struct {
	yearID     string
	deptID     string
	semID      string
	divAID     string
	divBID     string
	subjectID  string
	deletedSub string
	facultyID  string
	categoryID string
	questionA  string
	questionB  string
	questionC  string
}

func seedTestData(t *testing.T, db *sql.DB) fixture {
	t.Helper()

	fx := fixture{
		yearID:     uuid.NewString(),
		deptID:     uuid.NewString(),
		semID:      uuid.NewString(),
		divAID:     uuid.NewString(),
		divBID:     uuid.NewString(),
		subjectID:  uuid.NewString(),
		deletedSub: uuid.NewString(),
		facultyID:  uuid.NewString(),
		categoryID: uuid.NewString(),
		questionA:  uuid.NewString(),
		questionB:  uuid.NewString(),
		questionC:  uuid.NewString(),
	}

	formA := uuid.NewString()
	formB := uuid.NewString()

	exec := func(query string, args ...any) {
		t.Helper()
		_, err := db.Exec(query, args...)
		require.NoError(t, err)
	}

	exec(`INSERT INTO academic_years (id, year_string) VALUES (?, '2024-25')`, fx.yearID)
	exec(`INSERT INTO departments (id, name, abbreviation) VALUES (?, 'Computer Engineering', 'CE')`, fx.deptID)
	exec(`INSERT INTO semesters (id, semester_number, department_id, academic_year_id) VALUES (?, 3, ?, ?)`,
		fx.semID, fx.deptID, fx.yearID)
	exec(`INSERT INTO divisions (id, name, semester_id) VALUES (?, 'A', ?), (?, 'B', ?)`,
		fx.divAID, fx.semID, fx.divBID, fx.semID)
	exec(`INSERT INTO subjects (id, name, abbreviation, subject_code, is_deleted)
		VALUES (?, 'Data Structures', 'DS', 'CS201', 0), (?, 'Retired Subject', 'RS', 'CS000', 1)`,
		fx.subjectID, fx.deletedSub)
	exec(`INSERT INTO faculty (id, name, abbreviation, designation) VALUES (?, 'A. Mehta', 'AM', 'Assistant Professor')`,
		fx.facultyID)
	exec(`INSERT INTO question_categories (id, name) VALUES (?, 'Theory')`, fx.categoryID)
	exec(`INSERT INTO feedback_forms (id, division_id) VALUES (?, ?), (?, ?)`,
		formA, fx.divAID, formB, fx.divBID)

	// questionA: categorized lecture question in division A.
	// questionB: uncategorized lab-batch question in division B.
	// questionC: question on the soft-deleted subject.
	exec(`INSERT INTO feedback_questions (id, form_id, category_id, batch, subject_id, faculty_id)
		VALUES (?, ?, ?, 'none', ?, ?)`,
		fx.questionA, formA, fx.categoryID, fx.subjectID, fx.facultyID)
	exec(`INSERT INTO feedback_questions (id, form_id, category_id, batch, subject_id, faculty_id)
		VALUES (?, ?, NULL, 'B1', ?, ?)`,
		fx.questionB, formB, fx.subjectID, fx.facultyID)
	exec(`INSERT INTO feedback_questions (id, form_id, category_id, batch, subject_id, faculty_id)
		VALUES (?, ?, ?, 'none', ?, ?)`,
		fx.questionC, formA, fx.categoryID, fx.deletedSub, fx.facultyID)

	exec(`INSERT INTO student_responses (id, student_id, question_id, value, submitted_at, is_deleted) VALUES
		('resp-1', 'student-1', ?, '4', '2025-01-10T10:00:00Z', 0),
		('resp-2', 'student-2', ?, '{"score": 5}', '2025-01-10T11:00:00Z', 0),
		('resp-3', 'student-1', ?, '3', '2025-01-10T12:00:00Z', 1),
		('resp-4', 'student-3', ?, '5', '2025-01-10T13:00:00Z', 0)`,
		fx.questionA, fx.questionB, fx.questionA, fx.questionC)

	return fx
}

func TestSnapshotRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	defer db.Close()

	fx := seedTestData(t, db)
	repo := repository.NewSnapshotRepository(db)

	t.Run("ListSnapshots excludes soft-deleted rows by default", func(t *testing.T) {
		snaps, err := repo.ListSnapshots(ctx, models.Filter{})
		require.NoError(t, err)

		// resp-3 is a deleted response; resp-4 targets a deleted subject.
		require.Len(t, snaps, 2)
		require.Equal(t, "resp-1", snaps[0].ResponseID)
		require.Equal(t, "resp-2", snaps[1].ResponseID)
	})

	t.Run("ListSnapshots with IncludeDeleted returns everything", func(t *testing.T) {
		snaps, err := repo.ListSnapshots(ctx, models.Filter{IncludeDeleted: true})
		require.NoError(t, err)
		require.Len(t, snaps, 4)
	})

	t.Run("row fields are fully stitched", func(t *testing.T) {
		snaps, err := repo.ListSnapshots(ctx, models.Filter{})
		require.NoError(t, err)
		require.Len(t, snaps, 2)

		first := snaps[0]
		require.Equal(t, "student-1", first.StudentID)
		require.Equal(t, fx.questionA, first.QuestionID)
		require.Equal(t, fx.categoryID, first.QuestionCategoryID)
		require.NotNil(t, first.QuestionCategoryName)
		require.Equal(t, "Theory", *first.QuestionCategoryName)
		require.NotNil(t, first.QuestionBatch)
		require.Equal(t, "none", *first.QuestionBatch)
		require.Equal(t, "4", first.ResponseValue)
		require.Equal(t, "Data Structures", first.SubjectName)
		require.Equal(t, "CS201", first.SubjectCode)
		require.Equal(t, "A. Mehta", first.FacultyName)
		require.Equal(t, "A", first.DivisionName)
		require.Equal(t, "Computer Engineering", first.DepartmentName)
		require.Equal(t, 3, first.SemesterNumber)
		require.Equal(t, "2024-25", first.AcademicYear)

		// The uncategorized question comes back with a nil category name.
		second := snaps[1]
		require.Empty(t, second.QuestionCategoryID)
		require.Nil(t, second.QuestionCategoryName)
		require.Equal(t, `{"score": 5}`, second.ResponseValue)
	})

	t.Run("dimension filters narrow the collection", func(t *testing.T) {
		snaps, err := repo.ListSnapshots(ctx, models.Filter{DivisionID: fx.divBID})
		require.NoError(t, err)
		require.Len(t, snaps, 1)
		require.Equal(t, "resp-2", snaps[0].ResponseID)

		snaps, err = repo.ListSnapshots(ctx, models.Filter{AcademicYearID: fx.yearID, DepartmentID: fx.deptID})
		require.NoError(t, err)
		require.Len(t, snaps, 2)

		snaps, err = repo.ListSnapshots(ctx, models.Filter{SemesterNumber: 7})
		require.NoError(t, err)
		require.Empty(t, snaps)

		snaps, err = repo.ListSnapshots(ctx, models.Filter{FacultyID: fx.facultyID, SubjectID: fx.subjectID})
		require.NoError(t, err)
		require.Len(t, snaps, 2)
	})

	t.Run("GetSubject", func(t *testing.T) {
		sub, err := repo.GetSubject(ctx, fx.subjectID)
		require.NoError(t, err)
		require.NotNil(t, sub)
		require.Equal(t, "Data Structures", sub.Name)
		require.False(t, sub.IsDeleted)

		deleted, err := repo.GetSubject(ctx, fx.deletedSub)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		require.True(t, deleted.IsDeleted)

		missing, err := repo.GetSubject(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("GetFaculty", func(t *testing.T) {
		fac, err := repo.GetFaculty(ctx, fx.facultyID)
		require.NoError(t, err)
		require.NotNil(t, fac)
		require.Equal(t, "Assistant Professor", fac.Designation)

		missing, err := repo.GetFaculty(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("GetDivision", func(t *testing.T) {
		div, err := repo.GetDivision(ctx, fx.divAID)
		require.NoError(t, err)
		require.NotNil(t, div)
		require.Equal(t, "A", div.Name)

		missing, err := repo.GetDivision(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, missing)
	})
}
