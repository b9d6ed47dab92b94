package analytics

// Output shapes for the rollup and detail builders. All of these are derived
// views recomputed per call; none has identity beyond its response payload.
// Subtype ratings (lecture-only / lab-only) are pointers so an empty split
// serializes as null, while combined ratings default to 0.

type OverallStats struct {
	TotalResponses  int     `json:"totalResponses"`
	AverageRating   float64 `json:"averageRating"`
	UniqueSubjects  int     `json:"uniqueSubjects"`
	UniqueFaculty   int     `json:"uniqueFaculty"`
	UniqueStudents  int     `json:"uniqueStudents"`
	UniqueDivisions int     `json:"uniqueDivisions"`
}

type SubjectRating struct {
	SubjectID           string   `json:"subjectId"`
	SubjectName         string   `json:"subjectName"`
	SubjectAbbreviation string   `json:"subjectAbbreviation"`
	SubjectCode         string   `json:"subjectCode"`
	LectureRating       *float64 `json:"lectureRating"`
	LabRating           *float64 `json:"labRating"`
	OverallRating       float64  `json:"overallRating"`
	LectureResponses    int      `json:"lectureResponses"`
	LabResponses        int      `json:"labResponses"`
	TotalResponses      int      `json:"totalResponses"`
	UniqueFaculty       int      `json:"uniqueFaculty"`
	UniqueDivisions     int      `json:"uniqueDivisions"`
}

type FacultyPerformance struct {
	FacultyID           string  `json:"facultyId"`
	FacultyName         string  `json:"facultyName"`
	FacultyAbbreviation string  `json:"facultyAbbreviation"`
	Designation         string  `json:"designation"`
	AverageRating       float64 `json:"averageRating"`
	TotalResponses      int     `json:"totalResponses"`
	UniqueSubjects      int     `json:"uniqueSubjects"`
	UniqueDivisions     int     `json:"uniqueDivisions"`
	Rank                int     `json:"rank"`
}

type DivisionPerformance struct {
	DivisionID     string  `json:"divisionId"`
	DivisionName   string  `json:"divisionName"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
	UniqueFaculty  int     `json:"uniqueFaculty"`
	UniqueSubjects int     `json:"uniqueSubjects"`
}

type AcademicYearTrend struct {
	AcademicYearID    string  `json:"academicYearId"`
	AcademicYear      string  `json:"academicYear"`
	AverageRating     float64 `json:"averageRating"`
	TotalResponses    int     `json:"totalResponses"`
	UniqueDepartments int     `json:"uniqueDepartments"`
	UniqueDivisions   int     `json:"uniqueDivisions"`
}

type SemesterTrend struct {
	Semester int                 `json:"semester"`
	Years    []SemesterYearPoint `json:"years"`
}

type SemesterYearPoint struct {
	AcademicYearID string  `json:"academicYearId"`
	AcademicYear   string  `json:"academicYear"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
}

type DepartmentTrend struct {
	AcademicYear string                `json:"academicYear"`
	Departments  []DepartmentYearPoint `json:"departments"`
}

type DepartmentYearPoint struct {
	DepartmentID   string  `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
}

type SubjectDetail struct {
	SubjectID           string                 `json:"subjectId"`
	SubjectName         string                 `json:"subjectName"`
	SubjectAbbreviation string                 `json:"subjectAbbreviation"`
	SubjectCode         string                 `json:"subjectCode"`
	LectureRating       *float64               `json:"lectureRating"`
	LabRating           *float64               `json:"labRating"`
	OverallRating       float64                `json:"overallRating"`
	LectureResponses    int                    `json:"lectureResponses"`
	LabResponses        int                    `json:"labResponses"`
	TotalResponses      int                    `json:"totalResponses"`
	FacultyBreakdown    []SubjectFacultySlice  `json:"facultyBreakdown"`
	DivisionBreakdown   []SubjectDivisionSlice `json:"divisionBreakdown"`
	CategoryBreakdown   []CategorySlice        `json:"categoryBreakdown"`
}

type SubjectFacultySlice struct {
	FacultyID      string      `json:"facultyId"`
	FacultyName    string      `json:"facultyName"`
	LectureType    LectureType `json:"lectureType"`
	AverageRating  float64     `json:"averageRating"`
	TotalResponses int         `json:"totalResponses"`
	Divisions      []string    `json:"divisions"`
}

type SubjectDivisionSlice struct {
	DivisionID       string   `json:"divisionId"`
	DivisionName     string   `json:"divisionName"`
	LectureRating    *float64 `json:"lectureRating"`
	LabRating        *float64 `json:"labRating"`
	LectureResponses int      `json:"lectureResponses"`
	LabResponses     int      `json:"labResponses"`
}

type CategorySlice struct {
	CategoryID     string  `json:"categoryId,omitempty"`
	CategoryName   string  `json:"categoryName"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
}

type FacultyDetail struct {
	FacultyID           string                 `json:"facultyId"`
	FacultyName         string                 `json:"facultyName"`
	FacultyAbbreviation string                 `json:"facultyAbbreviation"`
	Designation         string                 `json:"designation"`
	AverageRating       float64                `json:"averageRating"`
	TotalResponses      int                    `json:"totalResponses"`
	Rank                int                    `json:"rank"`
	TotalFaculty        int                    `json:"totalFaculty"`
	SubjectBreakdown    []FacultySubjectSlice  `json:"subjectBreakdown"`
	DivisionBreakdown   []FacultyDivisionSlice `json:"divisionBreakdown"`
	CategoryBreakdown   []CategorySlice        `json:"categoryBreakdown"`
	Trend               []FacultyTrendPoint    `json:"trend"`
}

type FacultySubjectSlice struct {
	SubjectID      string      `json:"subjectId"`
	SubjectName    string      `json:"subjectName"`
	LectureType    LectureType `json:"lectureType"`
	Semester       int         `json:"semester"`
	AcademicYear   string      `json:"academicYear"`
	AverageRating  float64     `json:"averageRating"`
	TotalResponses int         `json:"totalResponses"`
}

type FacultyDivisionSlice struct {
	DivisionID     string      `json:"divisionId"`
	DivisionName   string      `json:"divisionName"`
	SubjectID      string      `json:"subjectId"`
	SubjectName    string      `json:"subjectName"`
	LectureType    LectureType `json:"lectureType"`
	AverageRating  float64     `json:"averageRating"`
	TotalResponses int         `json:"totalResponses"`
}

type FacultyTrendPoint struct {
	AcademicYearID string  `json:"academicYearId"`
	AcademicYear   string  `json:"academicYear"`
	Semester       int     `json:"semester"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
}

type DivisionDetail struct {
	DivisionID       string                 `json:"divisionId"`
	DivisionName     string                 `json:"divisionName"`
	AverageRating    float64                `json:"averageRating"`
	TotalResponses   int                    `json:"totalResponses"`
	FacultyBreakdown []DivisionFacultySlice `json:"facultyBreakdown"`
	SubjectBreakdown []DivisionSubjectSlice `json:"subjectBreakdown"`
	YearComparison   []DivisionYearPoint    `json:"yearComparison"`
}

type DivisionFacultySlice struct {
	FacultyID      string      `json:"facultyId"`
	FacultyName    string      `json:"facultyName"`
	SubjectID      string      `json:"subjectId"`
	SubjectName    string      `json:"subjectName"`
	LectureType    LectureType `json:"lectureType"`
	AverageRating  float64     `json:"averageRating"`
	TotalResponses int         `json:"totalResponses"`
}

type DivisionSubjectSlice struct {
	SubjectID        string   `json:"subjectId"`
	SubjectName      string   `json:"subjectName"`
	LectureRating    *float64 `json:"lectureRating"`
	LabRating        *float64 `json:"labRating"`
	LectureResponses int      `json:"lectureResponses"`
	LabResponses     int      `json:"labResponses"`
	TotalResponses   int      `json:"totalResponses"`
}

type DivisionYearPoint struct {
	AcademicYearID string  `json:"academicYearId"`
	AcademicYear   string  `json:"academicYear"`
	AverageRating  float64 `json:"averageRating"`
	TotalResponses int     `json:"totalResponses"`
}
