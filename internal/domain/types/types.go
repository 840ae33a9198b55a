// Package types contains common types used across the application
package types

import "github.com/okian/facultyhub/internal/domain/model"

// ProfessorEntry is a professor as served by the API.
type ProfessorEntry struct {
	Rank              int     `json:"rank,omitempty"`
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Initials          string  `json:"initials"`
	Position          string  `json:"position,omitempty"`
	Email             string  `json:"email,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Headshot          string  `json:"headshot,omitempty"`
	ScholarURL        string  `json:"google_scholar_link,omitempty"`
	DepartmentID      string  `json:"department_id,omitempty"`
	DepartmentName    string  `json:"department_name"`
	CollegeName       string  `json:"college_name,omitempty"`
	UniversityName    string  `json:"university_name"`
	Field             string  `json:"field,omitempty"`
	TotalPapers       int     `json:"total_papers"`
	PublishedThisYear bool    `json:"published_this_year"`
	PublishedLastYear bool    `json:"published_last_year"`
	AvgPapersPerYear  float64 `json:"avg_papers_per_year"`
	TopResearcher     bool    `json:"top_researcher"`
}

// NewProfessorEntry projects p. rank is 1-based; zero omits it.
func NewProfessorEntry(p model.Professor, rank int, field string, top bool) ProfessorEntry {
	return ProfessorEntry{
		Rank:              rank,
		ID:                p.ID,
		Name:              p.Name,
		Initials:          model.Initials(p.Name),
		Position:          p.Position,
		Email:             p.Email,
		Phone:             p.Phone,
		Headshot:          p.Headshot,
		ScholarURL:        p.ScholarURL,
		DepartmentID:      p.DepartmentID,
		DepartmentName:    p.DepartmentName,
		CollegeName:       p.CollegeName,
		UniversityName:    p.UniversityName,
		Field:             field,
		TotalPapers:       p.Metrics.TotalPapers,
		PublishedThisYear: p.Metrics.PublishedThisYear,
		PublishedLastYear: p.Metrics.PublishedLastYear,
		AvgPapersPerYear:  p.Metrics.AvgPapersPerYear,
		TopResearcher:     top,
	}
}

// DirectoryPage is one page of the ranked directory.
type DirectoryPage struct {
	Total      int              `json:"total"`
	Offset     int              `json:"offset"`
	Limit      int              `json:"limit"`
	Sort       string           `json:"sort"`
	Order      string           `json:"order"`
	Professors []ProfessorEntry `json:"professors"`
}

// Article is a publication joined with its author's affiliation.
type Article struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Year           string `json:"publication_year,omitempty"`
	URL            string `json:"article_link,omitempty"`
	ProfessorID    string `json:"professor_id"`
	ProfessorName  string `json:"professor_name,omitempty"`
	Position       string `json:"position,omitempty"`
	Email          string `json:"email,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	CollegeName    string `json:"college_name,omitempty"`
	UniversityName string `json:"university_name,omitempty"`
}

// NewArticle joins pub with its author. A zero author leaves the
// affiliation empty.
func NewArticle(pub model.Publication, author model.Professor) Article {
	return Article{
		ID:             pub.ID,
		Title:          pub.Title,
		Year:           pub.Year.String(),
		URL:            pub.URL,
		ProfessorID:    pub.ProfessorID,
		ProfessorName:  author.Name,
		Position:       author.Position,
		Email:          author.Email,
		DepartmentName: author.DepartmentName,
		CollegeName:    author.CollegeName,
		UniversityName: author.UniversityName,
	}
}

// University is a university as served by the API.
type University struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Department is a department as served by the API.
type Department struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CollegeID      string `json:"college_id,omitempty"`
	CollegeName    string `json:"college_name,omitempty"`
	UniversityName string `json:"university_name,omitempty"`
}

// Field is a field of interest as served by the API.
type Field struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewUniversity projects u.
func NewUniversity(u model.University) University {
	return University{ID: u.ID, Name: u.Name}
}

// NewDepartment projects d.
func NewDepartment(d model.Department) Department {
	return Department{
		ID:             d.ID,
		Name:           d.Name,
		CollegeID:      d.CollegeID,
		CollegeName:    d.CollegeName,
		UniversityName: d.UniversityName,
	}
}

// NewField projects f.
func NewField(f model.Field) Field {
	return Field{ID: f.ID, Name: f.Name, Description: f.Description}
}
