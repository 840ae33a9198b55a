package api

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	service "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/domain/ranking"
)

// maxQueryLength bounds free-text search input.
const maxQueryLength = 200

// ProfessorsHandler handles directory and professor requests.
type ProfessorsHandler struct {
	deps ProfessorDependencies
	responder
}

// NewProfessorsHandler creates a new professors handler.
func NewProfessorsHandler(deps ProfessorDependencies, rs responder) *ProfessorsHandler {
	return &ProfessorsHandler{deps: deps, responder: rs}
}

// directoryParams mirrors the query string of GET /api/professors.
type directoryParams struct {
	Sort   string
	Order  string
	Offset int
	Limit  int
}

func (p directoryParams) Validate() error {
	keys := make([]interface{}, 0, len(ranking.SortKeys()))
	for _, k := range ranking.SortKeys() {
		keys = append(keys, string(k))
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Sort, validation.In(keys...)),
		validation.Field(&p.Order, validation.In(string(ranking.Asc), string(ranking.Desc))),
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit, validation.Min(0)),
	)
}

type searchParams struct {
	Query string
}

func (p searchParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Query, validation.Length(0, maxQueryLength)),
	)
}

// HandleDirectory handles GET /api/professors requests.
func (h *ProfessorsHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	const op = "api.directory"
	params := directoryParams{
		Sort:  strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort"))),
		Order: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("order"))),
	}
	var err error
	if params.Offset, err = queryInt(r, "offset"); err != nil {
		h.fail(w, r, op, err)
		return
	}
	if params.Limit, err = queryInt(r, "limit"); err != nil {
		h.fail(w, r, op, err)
		return
	}
	if err := params.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}

	page, err := h.deps.Directory(r.Context(), service.DirectoryQuery{
		Universities: queryList(r, "university"),
		Fields:       queryList(r, "field"),
		Sort:         params.Sort,
		Order:        params.Order,
		Offset:       params.Offset,
		Limit:        params.Limit,
	})
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleSearch handles GET /api/professors/search?q= requests.
func (h *ProfessorsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_professors"
	params := searchParams{Query: r.URL.Query().Get("q")}
	if err := params.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}
	found, err := h.deps.Search(r.Context(), params.Query)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// HandleGet handles GET /api/professors/{id} requests.
func (h *ProfessorsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_professor"
	p, err := h.deps.Professor(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleByDepartment handles GET /api/professors/department/{departmentID}.
func (h *ProfessorsHandler) HandleByDepartment(w http.ResponseWriter, r *http.Request) {
	const op = "api.professors_by_department"
	list, err := h.deps.ProfessorsByDepartment(r.Context(), r.PathValue("departmentID"))
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
