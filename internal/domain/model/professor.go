// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Professor is a faculty member together with the denormalized names of the
// department, college and university it belongs to.
type Professor struct {
	ID             string
	Name           string
	Position       string
	Email          string
	Phone          string
	Headshot       string // optional
	ScholarURL     string // optional
	DepartmentID   string
	DepartmentName string
	CollegeName    string
	UniversityName string
	Metrics        Metrics
}

// Metrics are the publication statistics derived for one professor.
// They are recomputed on every request and never stored.
type Metrics struct {
	TotalPapers       int
	PublishedThisYear bool
	PublishedLastYear bool
	AvgPapersPerYear  float64 // rounded to one decimal
}

// Initials returns the upper-cased first letters of the first and last name
// tokens, a single letter for one-token names and "?" for blank names.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}
	first := firstLetter(parts[0])
	if len(parts) == 1 {
		return first
	}
	return first + firstLetter(parts[len(parts)-1])
}

func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}
