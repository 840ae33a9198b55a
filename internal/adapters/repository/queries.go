package repository

// Queries are written with ? placeholders and rebound per driver. Ids are
// cast to text so integer keys in a hosted database read the same as the
// text keys of the local schema.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS universities (
	university_id TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS colleges (
	college_id    TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	university_id TEXT
)`,
	`CREATE TABLE IF NOT EXISTS departments (
	department_id TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	college_id    TEXT
)`,
	`CREATE TABLE IF NOT EXISTS fields_of_interest (
	field_id    TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	description TEXT
)`,
	`CREATE TABLE IF NOT EXISTS department_field_mappings (
	department_id TEXT NOT NULL,
	field_id      TEXT NOT NULL,
	PRIMARY KEY (department_id, field_id)
)`,
	`CREATE TABLE IF NOT EXISTS professors (
	professor_id        TEXT PRIMARY KEY,
	name                TEXT NOT NULL DEFAULT '',
	position            TEXT,
	email               TEXT,
	phone               TEXT,
	headshot            TEXT,
	google_scholar_link TEXT,
	department_id       TEXT
)`,
	`CREATE TABLE IF NOT EXISTS research_articles (
	article_id       TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	professor_id     TEXT,
	article_link     TEXT,
	publication_year TEXT
)`,
	`CREATE INDEX IF NOT EXISTS research_articles_professor_idx ON research_articles (professor_id)`,
}

const selectProfessors = `
SELECT CAST(p.professor_id AS TEXT)                 AS id,
       COALESCE(p.name, '')                         AS name,
       COALESCE(p.position, '')                     AS position,
       COALESCE(p.email, '')                        AS email,
       COALESCE(p.phone, '')                        AS phone,
       COALESCE(p.headshot, '')                     AS headshot,
       COALESCE(p.google_scholar_link, '')          AS scholar_url,
       COALESCE(CAST(p.department_id AS TEXT), '')  AS department_id,
       COALESCE(d.name, '')                         AS department_name,
       COALESCE(c.name, '')                         AS college_name,
       COALESCE(u.name, '')                         AS university_name
FROM professors p
LEFT JOIN departments d  ON d.department_id = p.department_id
LEFT JOIN colleges c     ON c.college_id = d.college_id
LEFT JOIN universities u ON u.university_id = c.university_id`

const selectPublications = `
SELECT CAST(article_id AS TEXT)                    AS id,
       COALESCE(CAST(professor_id AS TEXT), '')    AS professor_id,
       COALESCE(title, '')                         AS title,
       COALESCE(CAST(publication_year AS TEXT), '') AS publication_year,
       COALESCE(article_link, '')                  AS article_link
FROM research_articles`

const selectUniversities = `
SELECT CAST(university_id AS TEXT) AS id,
       COALESCE(name, '')          AS name
FROM universities`

const selectColleges = `
SELECT CAST(c.college_id AS TEXT)                   AS id,
       COALESCE(c.name, '')                         AS name,
       COALESCE(CAST(c.university_id AS TEXT), '')  AS university_id,
       COALESCE(u.name, '')                         AS university_name
FROM colleges c
LEFT JOIN universities u ON u.university_id = c.university_id`

const selectDepartments = `
SELECT CAST(d.department_id AS TEXT)             AS id,
       COALESCE(d.name, '')                      AS name,
       COALESCE(CAST(d.college_id AS TEXT), '')  AS college_id,
       COALESCE(c.name, '')                      AS college_name,
       COALESCE(u.name, '')                      AS university_name
FROM departments d
LEFT JOIN colleges c     ON c.college_id = d.college_id
LEFT JOIN universities u ON u.university_id = c.university_id`

const selectFields = `
SELECT CAST(field_id AS TEXT)    AS id,
       COALESCE(name, '')        AS name,
       COALESCE(description, '') AS description
FROM fields_of_interest`

const selectDepartmentFields = `
SELECT CAST(m.department_id AS TEXT) AS department_id,
       COALESCE(d.name, '')          AS department_name,
       CAST(m.field_id AS TEXT)      AS field_id,
       COALESCE(f.name, '')          AS field_name
FROM department_field_mappings m
LEFT JOIN departments d        ON d.department_id = m.department_id
LEFT JOIN fields_of_interest f ON f.field_id = m.field_id
ORDER BY d.name, f.name`

const (
	insertUniversity = `INSERT INTO universities (university_id, name) VALUES (?, ?)`
	insertCollege    = `INSERT INTO colleges (college_id, name, university_id) VALUES (?, ?, ?)`
	insertDepartment = `INSERT INTO departments (department_id, name, college_id) VALUES (?, ?, ?)`
	insertField      = `INSERT INTO fields_of_interest (field_id, name, description) VALUES (?, ?, ?)`
	insertMapping    = `INSERT INTO department_field_mappings (department_id, field_id) VALUES (?, ?)`
	insertProfessor  = `INSERT INTO professors
	(professor_id, name, position, email, phone, headshot, google_scholar_link, department_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	insertArticle = `INSERT INTO research_articles
	(article_id, title, professor_id, article_link, publication_year)
	VALUES (?, ?, ?, ?, ?)`
	countProfessors = `SELECT COUNT(*) FROM professors`
)
