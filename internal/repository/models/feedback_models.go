package models

// Filter narrows the snapshot collection fetched for aggregation. Zero values
// mean "no constraint" on that dimension.
type Filter struct {
	AcademicYearID string
	DepartmentID   string
	SubjectID      string
	SemesterNumber int
	DivisionID     string
	FacultyID      string
	// LectureType is applied by the engine after fetch ("LECTURE" or "LAB");
	// it is derived per record, not stored.
	LectureType    string
	IncludeDeleted bool
}

// FeedbackSnapshot is one denormalized row joining a single student response
// (per question) to all of its contextual dimensions. Produced by the
// repository JOIN and never mutated by the engine.
type FeedbackSnapshot struct {
	ResponseID string
	StudentID  string
	FormID     string

	QuestionID           string
	QuestionCategoryID   string
	QuestionCategoryName *string
	// QuestionBatch is free text; the literal "none" (case-insensitive)
	// means the question was not asked for a lab batch.
	QuestionBatch *string
	// ResponseValue is the raw answer payload: a number, a numeric string,
	// or a JSON document carrying a "score" field.
	ResponseValue any

	SubjectID           string
	SubjectName         string
	SubjectAbbreviation string
	SubjectCode         string

	FacultyID           string
	FacultyName         string
	FacultyAbbreviation string
	FacultyDesignation  string

	DivisionID   string
	DivisionName string

	DepartmentID           string
	DepartmentName         string
	DepartmentAbbreviation string

	SemesterID     string
	SemesterNumber int

	AcademicYearID string
	AcademicYear   string
}

type Subject struct {
	ID           string
	Name         string
	Abbreviation string
	Code         string
	IsDeleted    bool
}

type Faculty struct {
	ID           string
	Name         string
	Abbreviation string
	Designation  string
	IsDeleted    bool
}

type Division struct {
	ID        string
	Name      string
	IsDeleted bool
}
