package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/balbriggan-gardens/garden/internal/content"
	"github.com/balbriggan-gardens/garden/internal/domain"
	"github.com/balbriggan-gardens/garden/internal/forms"
	"github.com/balbriggan-gardens/garden/internal/logger"
	"github.com/balbriggan-gardens/garden/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testTips = `[
  {"id": 1, "title": "Sow peas", "season": "Spring", "seasonal": true},
  {"id": 2, "title": "Water early", "season": "Summer", "seasonal": false},
  {"id": 3, "title": "Plant bulbs", "season": "Autumn", "seasonal": true},
  {"id": 4, "title": "Compost", "season": "All Year", "seasonal": false}
]`

type testEnv struct {
	handler http.Handler
	logs    *observer.ObservedLogs
	dir     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	views, err := web.NewRenderer("")
	require.NoError(t, err)
	return newTestEnvWithViews(t, views)
}

func newTestEnvWithViews(t *testing.T, views *web.Renderer) *testEnv {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tips.json"), []byte(testTips), 0o644))

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	s := New(content.NewLoader(dir, log), views, forms.NewRecorder(log), log, Options{
		SiteTitle:  "Test Garden",
		HomeTips:   2,
		HomePlants: 1,
	})
	s.now = func() time.Time { return time.Date(2024, time.October, 1, 9, 0, 0, 0, time.UTC) }

	return &testEnv{handler: s.Handler(), logs: logs, dir: dir}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) postForm(t *testing.T, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func decodeTips(t *testing.T, rec *httptest.ResponseRecorder) []domain.Tip {
	t.Helper()
	var tips []domain.Tip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tips))
	return tips
}

func TestAPITips(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/tips")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, decodeTips(t, rec), 4)

	rec = env.get(t, "/api/tips?seasonal=true")
	tips := decodeTips(t, rec)
	require.Len(t, tips, 2)
	assert.Equal(t, 1, tips[0].ID)
	assert.Equal(t, 3, tips[1].ID)

	rec = env.get(t, "/api/tips?seasonal=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPITipsBySeason(t *testing.T) {
	env := newTestEnv(t)

	for _, season := range []string{"summer", "SUMMER", "Summer"} {
		tips := decodeTips(t, env.get(t, "/api/tips/"+season))
		require.Len(t, tips, 1, season)
		assert.Equal(t, 2, tips[0].ID)
	}

	rec := env.get(t, "/api/tips/all%20year")
	assert.Len(t, decodeTips(t, rec), 1)

	rec = env.get(t, "/api/tips/winter")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestAPIFallsBackWhenFileMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/plants")
	require.Equal(t, http.StatusOK, rec.Code)
	var plants []domain.Plant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plants))
	assert.Len(t, plants, 4)
	assert.Equal(t, 1, env.logs.FilterMessage("content fallback").Len())

	rec = env.get(t, "/api/plants?type=herb")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plants))
	require.Len(t, plants, 1)
	assert.Equal(t, "Coastal Herbs", plants[0].Name)
}

func TestAPIFallsBackWhenFileCorrupt(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "tips.json"), []byte("{broken"), 0o644))

	rec := env.get(t, "/api/tips")
	require.Equal(t, http.StatusOK, rec.Code)
	tips := decodeTips(t, rec)
	assert.Equal(t, "Start Small", tips[0].Title)
}

func TestAPIVideosEventsSeason(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/videos")
	require.Equal(t, http.StatusOK, rec.Code)
	var videos []domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &videos))
	assert.NotEmpty(t, videos)

	rec = env.get(t, "/api/events")
	var events []domain.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Equal(t, content.Events(), events)

	rec = env.get(t, "/api/season")
	var season map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &season))
	assert.Equal(t, "autumn", season["season"])
	assert.Equal(t, "Autumn", season["label"])
}

func TestPages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path     string
		contains []string
		absent   []string
	}{
		{"/", []string{"Sow peas", "Water early", "Sea Kale"}, []string{"Plant bulbs", "Balbriggan Berries"}},
		{"/tips", []string{"Sow peas", "Compost"}, nil},
		{"/seasonal", []string{"Sow peas", "Plant bulbs", "It's Autumn"}, []string{"Water early"}},
		{"/plants", []string{"Sea Kale", "Coastal Herbs"}, nil},
		{"/plants?type=fruit", []string{"Balbriggan Berries"}, []string{"Sea Kale"}},
		{"/videos", []string{"Container Herbs for Beginners"}, nil},
		{"/events", []string{"Seed Swap"}, nil},
		{"/contact", []string{`id="contact-form"`}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(t, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			assert.Contains(t, body, "Test Garden")
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestContactSubmission(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/contact", url.Values{
		"name":    {"Aoife"},
		"email":   {"aoife@example.ie"},
		"message": {"Is the seed swap on this month?"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks!")

	entries := env.logs.FilterMessage("contact form submitted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Aoife", fields["name"])
	assert.Equal(t, "[REDACTED]", fields["email"])
	assert.Contains(t, rec.Body.String(), fields["submission_id"])
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/contact", url.Values{
		"name":  {"Aoife"},
		"email": {"nope"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please enter a valid email address")
	assert.Contains(t, body, "Please enter a message")
	assert.Contains(t, body, `value="Aoife"`)
	assert.Zero(t, env.logs.FilterMessage("contact form submitted").Len())
}

func TestOversizedFormRendersPage(t *testing.T) {
	env := newTestEnv(t)
	big := strings.Repeat("a", maxFormBytes+1)

	rec := env.postForm(t, "/contact", url.Values{
		"name":    {"Aoife"},
		"email":   {"aoife@example.ie"},
		"message": {big},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `id="contact-form"`)
	assert.Contains(t, rec.Body.String(), "read that form")

	rec = env.postForm(t, "/subscribe", url.Values{"email": {big}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "read that form")

	assert.Zero(t, env.logs.FilterMessage("contact form submitted").Len())
	assert.Zero(t, env.logs.FilterMessage("newsletter subscription").Len())
	assert.Equal(t, 2, env.logs.FilterMessage("parse form").Len())
}

func TestSubscribe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/subscribe", url.Values{"email": {"a@b.co"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "on the list")
	assert.Equal(t, 1, env.logs.FilterMessage("newsletter subscription").Len())

	rec = env.postForm(t, "/subscribe", url.Values{"email": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 1, env.logs.FilterMessage("newsletter subscription").Len())
}

func TestHealthAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = env.get(t, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestWrongMethod(t *testing.T) {
	env := newTestEnv(t)

	for _, tt := range []struct{ method, target string }{
		{http.MethodDelete, "/api/tips"},
		{http.MethodPost, "/api/plants"},
		{http.MethodPut, "/contact"},
	} {
		rec := env.do(t, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, tt.method+" "+tt.target)
		assert.NotEmpty(t, rec.Header().Get("Allow"), tt.method+" "+tt.target)
	}

	rec := env.do(t, httptest.NewRequest(http.MethodDelete, "/nowhere", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRenderErrorSendsNoPartialPage(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadDir("../web/templates")
	require.NoError(t, err)
	for _, f := range src {
		data, err := os.ReadFile(filepath.Join("../web/templates", f.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name()), data, 0o644))
	}
	broken := `{{define "content"}}<p>half a page</p>{{index .Tips 99}}{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tips.html"), []byte(broken), 0o644))

	views, err := web.NewRenderer(dir)
	require.NoError(t, err)
	env := newTestEnvWithViews(t, views)

	rec := env.get(t, "/tips")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half a page")
	assert.NotContains(t, rec.Body.String(), "<html")
	assert.Equal(t, 1, env.logs.FilterMessage("render page").Len())

	rec = env.get(t, "/plants")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/static/js/site.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "menu-toggle")
}

func TestMiddleware(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/health")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "8f14e45f-ceea-467f-a0e6-4b1a5b2c7d11")
	rec = env.do(t, req)
	assert.Equal(t, "8f14e45f-ceea-467f-a0e6-4b1a5b2c7d11", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "not a uuid")
	rec = env.do(t, req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get("X-Request-ID"))

	rec = env.do(t, httptest.NewRequest(http.MethodOptions, "/api/tips", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	access := env.logs.FilterMessage("request").All()
	require.NotEmpty(t, access)
	fields := access[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Contains(t, fields["remote_addr"], "hash:")
}
