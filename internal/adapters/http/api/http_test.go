package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/facultyhub/internal/adapters/http/api"
	repository "github.com/okian/facultyhub/internal/adapters/repository"
	service "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/types"
	"github.com/okian/facultyhub/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

const apiFixture = `
universities:
  - {id: u1, name: Drexel University}
  - {id: u2, name: University of Pennsylvania}
colleges:
  - {id: c1, name: College of Computing, university_id: u1}
  - {id: c2, name: School of Engineering, university_id: u2}
departments:
  - {id: d1, name: Computer Science, college_id: c1}
  - {id: d2, name: Bioengineering, college_id: c2}
fields:
  - {id: f1, name: Computing}
department_fields:
  - {department_id: d1, field_id: f1}
professors:
  - {id: p1, name: Ada Lovelace, department_id: d1}
  - {id: p2, name: Zed Young, department_id: d2}
  - {id: p3, name: Grace Hopper, department_id: d1}
articles:
  - {id: a1, professor_id: p1, title: Engine Notes, publication_year: 2025}
  - {id: a2, professor_id: p1, title: Engine Notes, publication_year: 2024}
  - {id: a3, professor_id: p2, title: Tissue Scaffolds, publication_year: 2023}
`

// brokenStore fails every read the handlers reach first.
type brokenStore struct {
	repository.Store
}

var errStoreDown = errors.New("connection refused to db.internal:5432")

func (brokenStore) Driver() string             { return "broken" }
func (brokenStore) Ping(context.Context) error { return errStoreDown }
func (brokenStore) Close() error               { return nil }

func (brokenStore) Professors(context.Context) ([]model.Professor, error) {
	return nil, errStoreDown
}

func (brokenStore) Publications(context.Context) ([]model.Publication, error) {
	return nil, errStoreDown
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func newHandler(store repository.Store) http.Handler {
	svc := service.New(service.WithStore(store), service.WithClock(fixedClock))
	server := api.NewServer(svc, svc)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return server.Handler(mux)
}

func newFixtureHandler() http.Handler {
	f, err := repository.ParseFixture([]byte(apiFixture))
	So(err, ShouldBeNil)
	store, err := repository.NewMemoryStore(f)
	So(err, ShouldBeNil)
	return newHandler(store)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a server over the sample directory", t, func() {
		h := newFixtureHandler()

		Convey("The welcome route answers JSON", func() {
			w := get(h, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, "/api-docs")
		})

		Convey("Health reports the store as up", func() {
			w := get(h, "/api/health")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Metrics are exposed in Prometheus format", func() {
			_ = get(h, "/api/professors")
			w := get(h, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "facultyhub_")
		})

		Convey("Stats reflect the computed roster", func() {
			_ = get(h, "/api/professors")
			stats := decode[map[string]any](get(h, "/stats"))
			So(stats["professors"], ShouldEqual, 3.0)
			So(stats["publications"], ShouldEqual, 3.0)
		})

		Convey("Unknown routes answer a JSON 404", func() {
			w := get(h, "/api/nope")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode[errorBody](w).Code, ShouldEqual, "not_found")
		})

		Convey("Every response carries a request id", func() {
			w := get(h, "/api/fields")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

			req := httptest.NewRequest(http.MethodGet, "/api/fields", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "req-42")
			w = httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "req-42")
		})

		Convey("CORS headers are set and preflight short-circuits", func() {
			w := get(h, "/api/universities")
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")

			req := httptest.NewRequest(http.MethodOptions, "/api/universities", http.NoBody)
			w = httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNoContent)
		})
	})
}

func TestProfessorRoutes(t *testing.T) {
	Convey("Given a server over the sample directory", t, func() {
		h := newFixtureHandler()

		Convey("The directory is ranked and paged", func() {
			w := get(h, "/api/professors?sort=total_papers&order=desc&limit=2")
			So(w.Code, ShouldEqual, http.StatusOK)
			page := decode[types.DirectoryPage](w)
			So(page.Total, ShouldEqual, 3)
			So(page.Limit, ShouldEqual, 2)
			So(len(page.Professors), ShouldEqual, 2)
			So(page.Professors[0].Name, ShouldEqual, "Ada Lovelace")
			So(page.Professors[0].Rank, ShouldEqual, 1)
			So(page.Professors[0].PublishedThisYear, ShouldBeTrue)
			So(page.Professors[1].Name, ShouldEqual, "Zed Young")
		})

		Convey("Repeated filters are alternatives", func() {
			w := get(h, "/api/professors?university=University+of+Pennsylvania&university=Drexel+University&field=Computing")
			So(w.Code, ShouldEqual, http.StatusOK)
			page := decode[types.DirectoryPage](w)
			So(page.Total, ShouldEqual, 2)
			So(page.Professors[0].Field, ShouldEqual, "Computing")
		})

		Convey("Invalid parameters answer 400", func() {
			for _, target := range []string{
				"/api/professors?sort=h_index",
				"/api/professors?order=up",
				"/api/professors?offset=-1",
				"/api/professors?limit=ten",
				"/api/professors/search?q=" + strings.Repeat("x", 201),
			} {
				w := get(h, target)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "bad_request")
			}
		})

		Convey("Search returns matching entries", func() {
			w := get(h, "/api/professors/search?q=computer")
			So(w.Code, ShouldEqual, http.StatusOK)
			found := decode[[]types.ProfessorEntry](w)
			So(len(found), ShouldEqual, 2)
		})

		Convey("A single professor is found by id", func() {
			w := get(h, "/api/professors/p1")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[types.ProfessorEntry](w).Initials, ShouldEqual, "AL")

			w = get(h, "/api/professors/zz")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Professors are listed by department", func() {
			w := get(h, "/api/professors/department/d1")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]types.ProfessorEntry](w)), ShouldEqual, 2)
		})
	})
}

func TestArticleRoutes(t *testing.T) {
	Convey("Given a server over the sample directory", t, func() {
		h := newFixtureHandler()

		Convey("Articles are deduplicated by title", func() {
			list := decode[[]types.Article](get(h, "/api/articles"))
			So(len(list), ShouldEqual, 2)
			So(list[0].ID, ShouldEqual, "a1")
			So(list[0].ProfessorName, ShouldEqual, "Ada Lovelace")
		})

		Convey("Articles resolve by id, professor and department", func() {
			So(get(h, "/api/articles/a3").Code, ShouldEqual, http.StatusOK)
			So(get(h, "/api/articles/a9").Code, ShouldEqual, http.StatusNotFound)
			So(len(decode[[]types.Article](get(h, "/api/articles/professor/p1"))), ShouldEqual, 1)
			So(len(decode[[]types.Article](get(h, "/api/articles/department/d1"))), ShouldEqual, 2)
		})

		Convey("Year ranges are validated", func() {
			w := get(h, "/api/articles/year/2023/2024")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]types.Article](w)), ShouldEqual, 2)

			So(get(h, "/api/articles/year/2024/2023").Code, ShouldEqual, http.StatusBadRequest)
			So(get(h, "/api/articles/year/last/2023").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Article search matches titles", func() {
			list := decode[[]types.Article](get(h, "/api/articles/search?q=tissue"))
			So(len(list), ShouldEqual, 1)
			So(list[0].ID, ShouldEqual, "a3")
		})
	})
}

func TestCatalogRoutes(t *testing.T) {
	Convey("Given a server over the sample directory", t, func() {
		h := newFixtureHandler()

		So(len(decode[[]types.University](get(h, "/api/universities"))), ShouldEqual, 2)
		So(decode[types.University](get(h, "/api/universities/u2")).Name, ShouldEqual, "University of Pennsylvania")
		So(len(decode[[]types.Department](get(h, "/api/departments"))), ShouldEqual, 2)
		So(decode[types.Department](get(h, "/api/departments/d1")).CollegeName, ShouldEqual, "College of Computing")
		So(len(decode[[]types.Department](get(h, "/api/departments/college/c2"))), ShouldEqual, 1)
		So(len(decode[[]types.Department](get(h, "/api/departments/field/f1"))), ShouldEqual, 1)
		So(len(decode[[]types.Field](get(h, "/api/fields"))), ShouldEqual, 1)
		So(decode[types.Field](get(h, "/api/fields/f1")).Name, ShouldEqual, "Computing")
		So(decode[types.Field](get(h, "/api/fields/department/d1")).ID, ShouldEqual, "f1")

		So(get(h, "/api/fields/department/d2").Code, ShouldEqual, http.StatusNotFound)
		So(get(h, "/api/departments/field/f9").Code, ShouldEqual, http.StatusNotFound)
		So(get(h, "/api/universities/u9").Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestStoreFailures(t *testing.T) {
	Convey("Given a server whose store is down", t, func() {
		h := newHandler(brokenStore{})

		Convey("Store errors answer a generic 500", func() {
			w := get(h, "/api/professors")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			body := decode[errorBody](w)
			So(body.Code, ShouldEqual, "internal_error")
			So(body.Message, ShouldNotContainSubstring, "db.internal")
		})

		Convey("Health answers 503", func() {
			w := get(h, "/api/health")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Body.String(), ShouldContainSubstring, `"store":"down"`)
		})
	})
}

func TestRecover(t *testing.T) {
	Convey("Given a handler that panics", t, func() {
		h := api.Recover(logger.Get())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		Convey("The panic becomes a 500 JSON response", func() {
			w := get(h, "/")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode[errorBody](w).Code, ShouldEqual, "internal_error")
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given operation errors", t, func() {
		err := api.WrapKind("api.test", api.ErrBadRequest, errStoreDown)
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(errors.Is(err, errStoreDown), ShouldBeTrue)
		So(err.Error(), ShouldStartWith, "api.test: bad request")

		So(api.Wrap("api.test", nil), ShouldBeNil)
		So(errors.Is(api.NewKind("api.test", api.ErrNotFound), api.ErrNotFound), ShouldBeTrue)
		So(errors.Is(api.WrapKind("api.test", api.ErrNotFound, nil), api.ErrNotFound), ShouldBeTrue)
	})
}
