package repository

import "github.com/okian/facultyhub/internal/domain/model"

// Row types scanned by sqlx. Every column is selected through COALESCE so
// none of them can be NULL.

type professorRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Position       string `db:"position"`
	Email          string `db:"email"`
	Phone          string `db:"phone"`
	Headshot       string `db:"headshot"`
	ScholarURL     string `db:"scholar_url"`
	DepartmentID   string `db:"department_id"`
	DepartmentName string `db:"department_name"`
	CollegeName    string `db:"college_name"`
	UniversityName string `db:"university_name"`
}

func (r professorRow) toModel() model.Professor {
	return model.Professor{
		ID:             r.ID,
		Name:           r.Name,
		Position:       r.Position,
		Email:          r.Email,
		Phone:          r.Phone,
		Headshot:       r.Headshot,
		ScholarURL:     r.ScholarURL,
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
		CollegeName:    r.CollegeName,
		UniversityName: r.UniversityName,
	}
}

type publicationRow struct {
	ID          string `db:"id"`
	ProfessorID string `db:"professor_id"`
	Title       string `db:"title"`
	Year        string `db:"publication_year"`
	URL         string `db:"article_link"`
}

func (r publicationRow) toModel() model.Publication {
	return model.Publication{
		ID:          r.ID,
		ProfessorID: r.ProfessorID,
		Title:       r.Title,
		Year:        model.NewYear(r.Year),
		URL:         r.URL,
	}
}

type universityRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (r universityRow) toModel() model.University {
	return model.University{ID: r.ID, Name: r.Name}
}

type collegeRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	UniversityID   string `db:"university_id"`
	UniversityName string `db:"university_name"`
}

func (r collegeRow) toModel() model.College {
	return model.College{ID: r.ID, Name: r.Name, UniversityID: r.UniversityID, UniversityName: r.UniversityName}
}

type departmentRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	CollegeID      string `db:"college_id"`
	CollegeName    string `db:"college_name"`
	UniversityName string `db:"university_name"`
}

func (r departmentRow) toModel() model.Department {
	return model.Department{
		ID:             r.ID,
		Name:           r.Name,
		CollegeID:      r.CollegeID,
		CollegeName:    r.CollegeName,
		UniversityName: r.UniversityName,
	}
}

type fieldRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

func (r fieldRow) toModel() model.Field {
	return model.Field{ID: r.ID, Name: r.Name, Description: r.Description}
}

type departmentFieldRow struct {
	DepartmentID   string `db:"department_id"`
	DepartmentName string `db:"department_name"`
	FieldID        string `db:"field_id"`
	FieldName      string `db:"field_name"`
}

func (r departmentFieldRow) toModel() model.DepartmentField {
	return model.DepartmentField{
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
		FieldID:        r.FieldID,
		FieldName:      r.FieldName,
	}
}
