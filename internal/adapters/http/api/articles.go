package api

import (
	"errors"
	"net/http"
	"strconv"
)

// ArticlesHandler handles research article requests.
type ArticlesHandler struct {
	deps ArticleDependencies
	responder
}

// NewArticlesHandler creates a new articles handler.
func NewArticlesHandler(deps ArticleDependencies, rs responder) *ArticlesHandler {
	return &ArticlesHandler{deps: deps, responder: rs}
}

// HandleList handles GET /api/articles requests.
func (h *ArticlesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Articles(r.Context())
	if err != nil {
		h.fail(w, r, "api.list_articles", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /api/articles/{id} requests.
func (h *ArticlesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.Article(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "api.get_article", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleByProfessor handles GET /api/articles/professor/{professorID}.
func (h *ArticlesHandler) HandleByProfessor(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.ProfessorPublications(r.Context(), r.PathValue("professorID"))
	if err != nil {
		h.fail(w, r, "api.articles_by_professor", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleByDepartment handles GET /api/articles/department/{departmentID}.
func (h *ArticlesHandler) HandleByDepartment(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.ArticlesByDepartment(r.Context(), r.PathValue("departmentID"))
	if err != nil {
		h.fail(w, r, "api.articles_by_department", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleByYearRange handles GET /api/articles/year/{start}/{end}.
func (h *ArticlesHandler) HandleByYearRange(w http.ResponseWriter, r *http.Request) {
	const op = "api.articles_by_year"
	from, err := strconv.Atoi(r.PathValue("start"))
	if err != nil {
		h.fail(w, r, op, WrapKind("start", ErrBadRequest, errors.New("must be a year")))
		return
	}
	to, err := strconv.Atoi(r.PathValue("end"))
	if err != nil {
		h.fail(w, r, op, WrapKind("end", ErrBadRequest, errors.New("must be a year")))
		return
	}
	list, err := h.deps.ArticlesByYearRange(r.Context(), from, to)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleSearch handles GET /api/articles/search?q= requests.
func (h *ArticlesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_articles"
	params := searchParams{Query: r.URL.Query().Get("q")}
	if err := params.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}
	list, err := h.deps.SearchArticles(r.Context(), params.Query)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
