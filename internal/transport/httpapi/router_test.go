package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitflow/internal/bootstrap/config"
	"recruitflow/internal/bootstrap/database"
	"recruitflow/internal/infrastructure/cache"
	"recruitflow/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "recruitflow/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "recruitflow/internal/infrastructure/persistence/sqlite/uow"
	"recruitflow/internal/usecase/review"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "api.sqlite"),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	svc := review.NewService(
		sqliterepo.NewReviewRepository(db),
		sqliteuow.NewUnitOfWork(db),
		cache.NewSQLiteCache(db),
		review.Settings{PageSize: 2, NameCacheTTL: time.Minute},
	)

	today := time.Now().UTC()
	fixture := fmt.Sprintf(`
programs:
  - id: 1
    name: Cohort
    start_date: %q
    end_date: %q
postings:
  - id: 1
    program_id: 1
    title: Backend mentee
    published: true
    start_date: %q
    end_date: %q
  - id: 2
    program_id: 1
    title: Hidden
    published: false
    start_date: %q
    end_date: %q
reviewers:
  - ref: rev-1
    display_name: Lee
`,
		today.AddDate(0, 1, 0).Format("2006-01-02"), today.AddDate(0, 3, 0).Format("2006-01-02"),
		today.AddDate(0, 0, -7).Format("2006-01-02"), today.AddDate(0, 0, 7).Format("2006-01-02"),
		today.AddDate(0, 0, -7).Format("2006-01-02"), today.AddDate(0, 0, 7).Format("2006-01-02"),
	)
	_, err = svc.Seed(context.Background(), strings.NewReader(fixture))
	require.NoError(t, err)

	return NewRouter(svc)
}

func do(t *testing.T, h http.Handler, method string, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func submitApplication(t *testing.T, h http.Handler, name string) uint64 {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":"%s@example.com","attachments":[{"url":"https://files/%s.pdf","name":"%s.pdf"}]}`, name, name, name, name)
	resp := do(t, h, http.MethodPost, "/postings/1/applications", body, map[string]string{headerSubmitter: "user-" + name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var out submitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.NotZero(t, out.ApplicationID)
	return out.ApplicationID
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorDetail {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), resp.Body.String())
	return body.Error
}

func TestTransitionFlowOverHTTP(t *testing.T) {
	h := newTestServer(t)
	id := submitApplication(t, h, "kim")
	reviewer := map[string]string{headerReviewer: "rev-1"}

	resp := do(t, h, http.MethodPost, fmt.Sprintf("/applications/%d/transitions", id), `{"status":"final_pass"}`, reviewer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var moved transitionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &moved))
	assert.Equal(t, "final_pass", moved.Status)

	resp = do(t, h, http.MethodPost, fmt.Sprintf("/applications/%d/transitions", id), `{"status":"submitted"}`, reviewer)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, resp).Kind)

	resp = do(t, h, http.MethodGet, fmt.Sprintf("/applications/%d", id), "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var detail applicationDetailJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.Equal(t, "final_pass", detail.Status)
	assert.Equal(t, "Final pass", detail.StatusLabel)
	assert.Equal(t, []string{"rejected"}, detail.AllowedNext)
	assert.Equal(t, "Backend mentee", detail.PostingTitle)

	resp = do(t, h, http.MethodGet, fmt.Sprintf("/applications/%d/audit", id), "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var trail []auditItemJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &trail))
	require.Len(t, trail, 1)
	assert.Equal(t, "submitted", trail[0].FromStatus)
	assert.Equal(t, "rev-1", trail[0].Actor)
}

func TestErrorKindsMapToStatusCodes(t *testing.T) {
	h := newTestServer(t)
	id := submitApplication(t, h, "lee")

	cases := []struct {
		name    string
		method  string
		target  string
		body    string
		headers map[string]string
		status  int
		kind    string
	}{
		{name: "missing application", method: http.MethodGet, target: "/applications/999", status: http.StatusNotFound, kind: "not_found"},
		{name: "bad id", method: http.MethodGet, target: "/applications/abc", status: http.StatusUnprocessableEntity, kind: "validation"},
		{name: "missing reviewer", method: http.MethodPost, target: fmt.Sprintf("/applications/%d/transitions", id), body: `{"status":"first_pass"}`, status: http.StatusUnprocessableEntity, kind: "validation"},
		{name: "score out of range", method: http.MethodPost, target: fmt.Sprintf("/applications/%d/evaluations", id), body: `{"criterion1":101}`, headers: map[string]string{headerReviewer: "rev-1"}, status: http.StatusUnprocessableEntity, kind: "invalid_score"},
		{name: "unpublished posting", method: http.MethodPost, target: "/postings/2/applications", body: `{"name":"a","email":"a@b.c","attachments":[{"url":"u","name":"n"}]}`, headers: map[string]string{headerSubmitter: "u1"}, status: http.StatusConflict, kind: "window_closed"},
		{name: "unknown status filter", method: http.MethodGet, target: "/applications?status=archived", status: http.StatusUnprocessableEntity, kind: "validation"},
		{name: "missing evaluation", method: http.MethodDelete, target: "/evaluations/77", status: http.StatusNotFound, kind: "not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, h, tc.method, tc.target, tc.body, tc.headers)
			require.Equal(t, tc.status, resp.Code, resp.Body.String())
			assert.Equal(t, tc.kind, decodeError(t, resp).Kind)
		})
	}
}

func TestEvaluationsAndListOverHTTP(t *testing.T) {
	h := newTestServer(t)
	first := submitApplication(t, h, "a")
	second := submitApplication(t, h, "b")
	third := submitApplication(t, h, "c")
	reviewer := map[string]string{headerReviewer: "rev-1"}

	resp := do(t, h, http.MethodPost, fmt.Sprintf("/applications/%d/evaluations", second), `{"criterion1":70,"criterion2":80,"criterion3":90,"memo":"strong"}`, reviewer)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created evaluationJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, 240, created.Total)
	assert.Equal(t, "Lee", created.EvaluatorName)

	resp = do(t, h, http.MethodGet, fmt.Sprintf("/applications/%d/evaluations", second), "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var evals []evaluationJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &evals))
	require.Len(t, evals, 1)

	resp = do(t, h, http.MethodGet, "/applications?page=1", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var page applicationPageJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, third, page.Items[0].ApplicationID)
	require.NotNil(t, page.Items[1].LatestTotal)
	assert.Equal(t, 240, *page.Items[1].LatestTotal)

	resp = do(t, h, http.MethodGet, fmt.Sprintf("/applications/%d/adjacent", second), "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var adj adjacentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &adj))
	require.NotNil(t, adj.PrevID)
	require.NotNil(t, adj.NextID)
	assert.Equal(t, third, *adj.PrevID)
	assert.Equal(t, first, *adj.NextID)

	resp = do(t, h, http.MethodGet, "/applications/export?posting=1", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(review.ExportColumns, ","), lines[0])

	resp = do(t, h, http.MethodDelete, fmt.Sprintf("/evaluations/%d", created.EvaluationID), "", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t)

	resp := do(t, h, http.MethodGet, "/applications", "", map[string]string{headerRequestID: "req-42"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "req-42", resp.Header().Get(headerRequestID))

	resp = do(t, h, http.MethodGet, "/applications", "", nil)
	assert.NotEmpty(t, resp.Header().Get(headerRequestID))
}
