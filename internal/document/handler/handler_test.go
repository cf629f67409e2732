package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergroups/internal/document"
	"github.com/gogotex/usergroups/internal/document/repository"
	"github.com/gogotex/usergroups/internal/document/service"
	"github.com/gogotex/usergroups/internal/schema"
	"github.com/stretchr/testify/require"
)

var widgets = schema.Schema{
	Name:       "Widget",
	Collection: "widgets",
	Rules:      []schema.Rule{{Field: "label", Required: true, MinLength: 3, MaxLength: 50}},
}

func newRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterRoutes(g.Group("/widgets"), svc)
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHandler_CRUD(t *testing.T) {
	g := newRouter(service.New(widgets, repository.NewMemoryRepo()))

	// create
	w := do(g, http.MethodPost, "/widgets", `{"label":"gear"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	cr := decode(t, w)
	id, _ := cr["_id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, "gear", cr["label"])

	// get
	w = do(g, http.MethodGet, "/widgets/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gear", decode(t, w)["label"])

	// list
	w = do(g, http.MethodGet, "/widgets", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// update
	w = do(g, http.MethodPut, "/widgets/"+id, `{"label":"sprocket"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sprocket", decode(t, w)["label"])

	// delete
	w = do(g, http.MethodDelete, "/widgets/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]interface{}{"msg": "Deleted successfully"}, decode(t, w))

	w = do(g, http.MethodGet, "/widgets/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, map[string]interface{}{"error": "not found"}, decode(t, w))
}

func TestHandler_EmptyListIsArray(t *testing.T) {
	g := newRouter(service.New(widgets, repository.NewMemoryRepo()))
	w := do(g, http.MethodGet, "/widgets", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_ClientErrors(t *testing.T) {
	g := newRouter(service.New(widgets, repository.NewMemoryRepo()))
	missing := "0123456789abcdef01234567"

	cases := []struct {
		name, method, path, body string
		code                     int
		errMsg                   string
	}{
		{"create invalid", http.MethodPost, "/widgets", `{"label":"ab"}`, http.StatusBadRequest, "Widget validation failed: label: must be at least 3 characters"},
		{"create malformed json", http.MethodPost, "/widgets", `{"label":`, http.StatusBadRequest, ""},
		{"create empty body", http.MethodPost, "/widgets", "", http.StatusBadRequest, ""},
		{"get invalid id", http.MethodGet, "/widgets/abc", "", http.StatusBadRequest, "invalid id"},
		{"get missing", http.MethodGet, "/widgets/" + missing, "", http.StatusNotFound, "not found"},
		{"put invalid id", http.MethodPut, "/widgets/abc", `{"label":"okay"}`, http.StatusBadRequest, "invalid id"},
		{"put missing", http.MethodPut, "/widgets/" + missing, `{"label":"okay"}`, http.StatusNotFound, "not found"},
		{"delete invalid id", http.MethodDelete, "/widgets/abc", "", http.StatusBadRequest, "invalid id"},
		{"delete missing", http.MethodDelete, "/widgets/" + missing, "", http.StatusNotFound, "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(g, tc.method, tc.path, tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
			body := decode(t, w)
			require.Contains(t, body, "error")
			if tc.errMsg != "" {
				require.Equal(t, tc.errMsg, body["error"])
			}
		})
	}
}

type brokenService struct{ service.Service }

func (brokenService) List(context.Context) (document.Outcome, error) {
	return document.Outcome{}, errors.New("connection reset")
}

func TestHandler_StorageFaultIs500(t *testing.T) {
	g := newRouter(brokenService{service.New(widgets, repository.NewMemoryRepo())})
	w := do(g, http.MethodGet, "/widgets", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal error", decode(t, w)["error"])
}
