package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/db"
	"github.com/sagrop_cms/pkg/logging"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Secret123"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type recordingMailer struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[to] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

type testServer struct {
	router *gin.Engine
	cfg    *config.Configuration
	mailer *recordingMailer
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl := filepath.Join(t.TempDir(), "notification.html")
	require.NoError(t, os.WriteFile(tmpl, []byte("<h1>{{articleTitle}}</h1>{{articleContent}}"), 0o644))

	cfg := &config.Configuration{
		AppName:            "Sagrop",
		APIVersion:         "1.0.0",
		JWTSecret:          "router-test-secret",
		APIEndpoint:        "http://localhost",
		Port:               "5000",
		APIPath:            "/api",
		DatabaseURL:        "sqlite://:memory:",
		MaxUploadSize:      64 * 1024,
		UploadsDir:         t.TempDir(),
		UploadAllowedTypes: []string{"image/png", "image/jpeg"},
		EmailTemplatePath:  tmpl,
		EmailConcurrency:   2,
	}

	gormDB, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gormDB) })
	require.NoError(t, db.Migrate(gormDB))

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	require.NoError(t, repositories.NewGormUserRepository(gormDB).Create(context.Background(),
		&models.User{Email: adminEmail, PasswordHash: hash}))

	mailer := &recordingMailer{failOn: map[string]bool{}}
	deps, err := NewDependencies(cfg, gormDB, mailer, logging.Discard())
	require.NoError(t, err)

	s := &testServer{router: SetupRouter(deps), cfg: cfg, mailer: mailer}
	s.token = s.login(t)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/login", gin.H{"email": adminEmail, "password": adminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.IsAdmin)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default-src 'self'; script-src 'self'; style-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/login", gin.H{"email": adminEmail, "password": "Wrong1234"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", decode[map[string]any](t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/v1/login", gin.H{"email": "not-an-email", "password": adminPassword}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/login", gin.H{"email": adminEmail, "password": "alllowercase1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/check-admin", nil, s.token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAdmin":true}`, w.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/articles"},
		{http.MethodPut, "/api/v1/articles/1"},
		{http.MethodDelete, "/api/v1/articles/1"},
		{http.MethodPost, "/api/v1/commodities"},
		{http.MethodPut, "/api/v1/commodities/1"},
		{http.MethodDelete, "/api/v1/commodities/1"},
		{http.MethodPost, "/api/v1/send-article-email"},
		{http.MethodPut, "/api/v1/config"},
		{http.MethodGet, "/api/v1/check-admin"},
	} {
		w := s.do(t, tc.method, tc.path, gin.H{}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)

		w = s.do(t, tc.method, tc.path, gin.H{}, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/logout", nil, s.token)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/check-admin", nil, s.token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArticleLifecycleKeepsIDsDense(t *testing.T) {
	s := newTestServer(t)

	for _, title := range []string{"A", "B", "C"} {
		w := s.do(t, http.MethodPost, "/api/v1/articles", gin.H{
			"articleTitle":       title,
			"articleContent":     "content " + title,
			"articlePublication": "2024-01-15T10:00:00Z",
		}, s.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	type article struct {
		ID    int64  `json:"id"`
		Title string `json:"articleTitle"`
	}

	list := decode[[]article](t, s.do(t, http.MethodGet, "/api/v1/articles", nil, ""))
	require.Len(t, list, 3)
	assert.Equal(t, []article{{3, "C"}, {2, "B"}, {1, "A"}}, list)

	w := s.do(t, http.MethodDelete, "/api/v1/articles/2", nil, s.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Article deleted successfully."}`, w.Body.String())

	list = decode[[]article](t, s.do(t, http.MethodGet, "/api/v1/articles", nil, ""))
	assert.Equal(t, []article{{2, "C"}, {1, "A"}}, list)

	w = s.do(t, http.MethodPut, "/api/v1/articles/2", gin.H{"articleTitle": "C2"}, s.token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "C2", got["articleTitle"])
	assert.Equal(t, "content C", got["articleContent"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/articles/9", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/articles/9", nil, s.token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/v1/articles/9", gin.H{"articleTitle": "x"}, s.token).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/api/v1/articles/abc", nil, s.token).Code)
}

func TestArticlesEmptyListAndValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/articles", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/articles", gin.H{"articleTitle": "A", "articleContent": "B"}, s.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "articlePublication is required.", decode[map[string]any](t, w)["message"])
}

func TestCommodities(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/commodities", gin.H{
		"name": "Wheat", "inquiry": "buy", "offer": "sell", "price": "12.5", "amount": 3, "date": "2024-03-01", "parita": "FCA",
	}, s.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, 12.5, created["price"])
	assert.Equal(t, 3.0, created["amount"])

	w = s.do(t, http.MethodPost, "/api/v1/commodities", gin.H{"name": "Corn", "price": "abc", "amount": 1}, s.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/commodities", gin.H{"name": "X", "price": "NaN", "amount": "Inf"}, s.token)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "price must be a number", decode[map[string]any](t, w)["message"])

	w = s.do(t, http.MethodPut, "/api/v1/commodities/1", gin.H{"name": "Wheat", "price": 13, "amount": "4"}, s.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/v1/commodities", nil, ""))
	require.Len(t, list, 1)
	assert.Equal(t, 13.0, list[0]["price"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/v1/commodities/42", gin.H{"name": "x", "price": 1, "amount": 1}, s.token).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/commodities/1", nil, s.token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/commodities/1", nil, s.token).Code)
}

func TestMailingList(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/add-email", gin.H{"email": "reader@example.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Email address added successfully."}`, w.Body.String())

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/v1/add-email", gin.H{"email": "reader@example.com"}, "").Code)

	w = s.do(t, http.MethodPost, "/api/v1/add-email", gin.H{"email": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email address.", decode[map[string]any](t, w)["message"])
}

func TestSendArticleEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/send-article-email", gin.H{"articleTitle": "T", "articleContent": "C"}, s.token)
	require.Equal(t, http.StatusOK, w.Code, "zero subscribers is a no-op")
	assert.Empty(t, s.mailer.sent)

	for _, e := range []string{"a@example.com", "b@example.com"} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/add-email", gin.H{"email": e}, "").Code)
	}

	w = s.do(t, http.MethodPost, "/api/v1/send-article-email", gin.H{"articleTitle": "T", "articleContent": "C"}, s.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, s.mailer.sent)

	s.mailer.failOn["b@example.com"] = true
	w = s.do(t, http.MethodPost, "/api/v1/send-article-email", gin.H{"articleTitle": "T", "articleContent": "C"}, s.token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[struct {
		Details struct {
			Failed []string `json:"failed"`
		} `json:"details"`
	}](t, w)
	assert.Equal(t, []string{"b@example.com"}, resp.Details.Failed)

	w = s.do(t, http.MethodPost, "/api/v1/send-article-email", gin.H{"articleTitle": "T"}, s.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func (s *testServer) upload(t *testing.T, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)

	w := s.upload(t, "image", "photo.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	url := decode[map[string]string](t, w)["imageUrl"]
	assert.Regexp(t, `^/uploads/\d+-photo\.png$`, url)

	_, err := os.Stat(filepath.Join(s.cfg.UploadsDir, filepath.Base(url)))
	require.NoError(t, err)

	served := s.do(t, http.MethodGet, url, nil, "")
	assert.Equal(t, http.StatusOK, served.Code)

	assert.Equal(t, http.StatusBadRequest, s.upload(t, "file", "photo.png", pngHeader).Code, "wrong field name")
	assert.Equal(t, http.StatusBadRequest, s.upload(t, "image", "notes.txt", []byte("plain text")).Code, "type not allowed")
}

func TestUploadHonoursRuntimeMaxSize(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/api/v1/config", gin.H{"maxUploadSize": 512}, s.token)
	require.Equal(t, http.StatusOK, w.Code)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 4096)...)
	assert.Equal(t, http.StatusBadRequest, s.upload(t, "image", "big.png", big).Code)
}

func TestArticleDeleteRemovesImage(t *testing.T) {
	s := newTestServer(t)

	url := decode[map[string]string](t, s.upload(t, "image", "cover.png", pngHeader))["imageUrl"]
	w := s.do(t, http.MethodPost, "/api/v1/articles", gin.H{
		"articleTitle": "A", "articleContent": "B", "articlePublication": "2024-01-15", "articleImageUrl": url,
	}, s.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/articles/1", nil, s.token).Code)
	_, err := os.Stat(filepath.Join(s.cfg.UploadsDir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigEndpoints(t *testing.T) {
	s := newTestServer(t)

	cfg := decode[map[string]any](t, s.do(t, http.MethodGet, "/api/v1/config", nil, ""))
	assert.Equal(t, "Sagrop", cfg["appName"])
	assert.Equal(t, "http://localhost:5000/api/v1", cfg["apiUrl"])
	assert.NotEmpty(t, cfg["configHash"])

	w := s.do(t, http.MethodPut, "/api/v1/config", `["not","an","object"]`, s.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/config", gin.H{"appName": "Renamed"}, s.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode[map[string]any](t, s.do(t, http.MethodGet, "/api/v1/config", nil, ""))["appName"])
}

func TestClientLog(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/log", gin.H{"source": "App.vue", "message": "mounted"}, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/log", gin.H{"source": "App.vue"}, "").Code)
}
