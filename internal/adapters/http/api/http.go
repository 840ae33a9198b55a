// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	service "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/domain/types"
	"github.com/okian/facultyhub/pkg/logger"
	"github.com/okian/facultyhub/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProfessorDependencies
	ArticleDependencies
	CatalogDependencies
	Pinger
}

// ProfessorDependencies serves the directory and professor routes.
type ProfessorDependencies interface {
	Directory(ctx context.Context, q service.DirectoryQuery) (types.DirectoryPage, error)
	Professor(ctx context.Context, id string) (types.ProfessorEntry, error)
	ProfessorsByDepartment(ctx context.Context, departmentID string) ([]types.ProfessorEntry, error)
	Search(ctx context.Context, query string) ([]types.ProfessorEntry, error)
}

// ArticleDependencies serves the article routes.
type ArticleDependencies interface {
	Articles(ctx context.Context) ([]types.Article, error)
	Article(ctx context.Context, id string) (types.Article, error)
	ProfessorPublications(ctx context.Context, professorID string) ([]types.Article, error)
	ArticlesByDepartment(ctx context.Context, departmentID string) ([]types.Article, error)
	ArticlesByYearRange(ctx context.Context, from, to int) ([]types.Article, error)
	SearchArticles(ctx context.Context, query string) ([]types.Article, error)
}

// CatalogDependencies serves universities, departments and fields.
type CatalogDependencies interface {
	Universities(ctx context.Context) ([]types.University, error)
	University(ctx context.Context, id string) (types.University, error)
	Departments(ctx context.Context) ([]types.Department, error)
	Department(ctx context.Context, id string) (types.Department, error)
	DepartmentsByCollege(ctx context.Context, collegeID string) ([]types.Department, error)
	Fields(ctx context.Context) ([]types.Field, error)
	Field(ctx context.Context, id string) (types.Field, error)
	FieldDepartments(ctx context.Context, fieldID string) ([]types.Department, error)
	DepartmentField(ctx context.Context, departmentID string) (types.Field, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	professorsHandler *ProfessorsHandler
	articlesHandler   *ArticlesHandler
	catalogHandler    *CatalogHandler

	logger     logger.Logger
	corsOrigin string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS
// headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{corsOrigin: "*"}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	rs := responder{logger: s.logger}
	s.healthHandler = NewHealthHandler(deps, 2*time.Second)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.professorsHandler = NewProfessorsHandler(deps, rs)
	s.articlesHandler = NewArticlesHandler(deps, rs)
	s.catalogHandler = NewCatalogHandler(deps, rs)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
	}

	mux.HandleFunc("GET /{$}", s.healthHandler.HandleWelcome)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	route("GET /api/health", "health", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	p := s.professorsHandler
	route("GET /api/professors", "professors", p.HandleDirectory)
	route("GET /api/professors/search", "professors_search", p.HandleSearch)
	route("GET /api/professors/{id}", "professor", p.HandleGet)
	route("GET /api/professors/department/{departmentID}", "professors_by_department", p.HandleByDepartment)

	a := s.articlesHandler
	route("GET /api/articles", "articles", a.HandleList)
	route("GET /api/articles/search", "articles_search", a.HandleSearch)
	route("GET /api/articles/{id}", "article", a.HandleGet)
	route("GET /api/articles/professor/{professorID}", "articles_by_professor", a.HandleByProfessor)
	route("GET /api/articles/department/{departmentID}", "articles_by_department", a.HandleByDepartment)
	route("GET /api/articles/year/{start}/{end}", "articles_by_year", a.HandleByYearRange)

	c := s.catalogHandler
	route("GET /api/universities", "universities", c.HandleUniversities)
	route("GET /api/universities/{id}", "university", c.HandleUniversity)
	route("GET /api/departments", "departments", c.HandleDepartments)
	route("GET /api/departments/{id}", "department", c.HandleDepartment)
	route("GET /api/departments/college/{collegeID}", "departments_by_college", c.HandleDepartmentsByCollege)
	route("GET /api/departments/field/{fieldID}", "departments_by_field", c.HandleFieldDepartments)
	route("GET /api/fields", "fields", c.HandleFields)
	route("GET /api/fields/{id}", "field", c.HandleField)
	route("GET /api/fields/department/{departmentID}", "field_by_department", c.HandleDepartmentField)

	mux.HandleFunc("/", MetricsMiddleware(handleNotFound, "not_found"))
}

// Handler wraps next with recovery, request ids, CORS and access logging.
func (s *Server) Handler(next http.Handler) http.Handler {
	return Recover(s.logger)(RequestID(CORS(s.corsOrigin)(AccessLog(s.logger)(next))))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", NewKind(r.Method+" "+r.URL.Path, ErrNotFound))
}
