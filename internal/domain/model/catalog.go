package model

// University is a top-level institution.
type University struct {
	ID   string
	Name string
}

// College belongs to a university.
type College struct {
	ID             string
	Name           string
	UniversityID   string
	UniversityName string
}

// Department belongs to a college.
type Department struct {
	ID             string
	Name           string
	CollegeID      string
	CollegeName    string
	UniversityName string
}

// Field is a field of interest departments are grouped under.
type Field struct {
	ID          string
	Name        string
	Description string
}

// DepartmentField maps a department to its field of interest.
type DepartmentField struct {
	DepartmentID   string
	DepartmentName string
	FieldID        string
	FieldName      string
}
