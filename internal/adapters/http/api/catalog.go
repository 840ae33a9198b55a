package api

import (
	"context"
	"net/http"
)

// CatalogHandler handles university, department and field requests.
type CatalogHandler struct {
	deps CatalogDependencies
	responder
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies, rs responder) *CatalogHandler {
	return &CatalogHandler{deps: deps, responder: rs}
}

// serve writes the result of load or its error.
func serve[T any](h *CatalogHandler, w http.ResponseWriter, r *http.Request, op string, load func(context.Context) (T, error)) {
	v, err := load(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// byPath adapts a lookup keyed by a path value.
func byPath[T any](r *http.Request, name string, get func(context.Context, string) (T, error)) func(context.Context) (T, error) {
	id := r.PathValue(name)
	return func(ctx context.Context) (T, error) { return get(ctx, id) }
}

// HandleUniversities handles GET /api/universities.
func (h *CatalogHandler) HandleUniversities(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.list_universities", h.deps.Universities)
}

// HandleUniversity handles GET /api/universities/{id}.
func (h *CatalogHandler) HandleUniversity(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.get_university", byPath(r, "id", h.deps.University))
}

// HandleDepartments handles GET /api/departments.
func (h *CatalogHandler) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.list_departments", h.deps.Departments)
}

// HandleDepartment handles GET /api/departments/{id}.
func (h *CatalogHandler) HandleDepartment(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.get_department", byPath(r, "id", h.deps.Department))
}

// HandleDepartmentsByCollege handles GET /api/departments/college/{collegeID}.
func (h *CatalogHandler) HandleDepartmentsByCollege(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.departments_by_college", byPath(r, "collegeID", h.deps.DepartmentsByCollege))
}

// HandleFieldDepartments handles GET /api/departments/field/{fieldID}.
func (h *CatalogHandler) HandleFieldDepartments(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.departments_by_field", byPath(r, "fieldID", h.deps.FieldDepartments))
}

// HandleFields handles GET /api/fields.
func (h *CatalogHandler) HandleFields(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.list_fields", h.deps.Fields)
}

// HandleField handles GET /api/fields/{id}.
func (h *CatalogHandler) HandleField(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.get_field", byPath(r, "id", h.deps.Field))
}

// HandleDepartmentField handles GET /api/fields/department/{departmentID}.
func (h *CatalogHandler) HandleDepartmentField(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "api.field_by_department", byPath(r, "departmentID", h.deps.DepartmentField))
}
