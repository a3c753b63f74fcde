package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medical-data-app/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAntiForgery struct {
	mock.Mock
}

func (m *mockAntiForgery) Issue(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockAntiForgery) Validate(ctx context.Context, sessionID, token string) error {
	return m.Called(ctx, sessionID, token).Error(0)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := GetSessionIDFromContext(r.Context())
	w.Write([]byte(sessionID))
})

func TestSession_IssuesCookie(t *testing.T) {
	m := NewAntiForgeryMiddleware(&mockAntiForgery{}, quietLogger())

	rec := httptest.NewRecorder()
	m.Session(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Patients", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
}

func TestSession_ReusesCookie(t *testing.T) {
	m := NewAntiForgeryMiddleware(&mockAntiForgery{}, quietLogger())
	sessionID := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/Patients", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	m.Session(okHandler).ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, sessionID, rec.Body.String())
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	m := NewAntiForgeryMiddleware(&mockAntiForgery{}, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/Patients", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	m.Session(okHandler).ServeHTTP(rec, req)

	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "not-a-uuid", rec.Body.String())
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		header     string
		form       url.Values
		validate   error
		wantToken  string
		wantStatus int
	}{
		{name: "get passes through", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "form field", method: http.MethodPost, form: url.Values{AntiForgeryFormField: {"tok-form"}}, wantToken: "tok-form", wantStatus: http.StatusOK},
		{name: "header", method: http.MethodPost, header: "tok-header", wantToken: "tok-header", wantStatus: http.StatusOK},
		{name: "missing", method: http.MethodPost, validate: service.ErrAntiForgeryMissing, wantStatus: http.StatusForbidden},
		{name: "other session", method: http.MethodPost, header: "tok", wantToken: "tok", validate: service.ErrAntiForgerySession, wantStatus: http.StatusForbidden},
		{name: "store down", method: http.MethodPost, header: "tok", wantToken: "tok", validate: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			af := &mockAntiForgery{}
			af.On("Validate", mock.Anything, "session-1", tt.wantToken).Return(tt.validate)
			m := NewAntiForgeryMiddleware(af, quietLogger())

			req := httptest.NewRequest(tt.method, "/Patients/Create", strings.NewReader(tt.form.Encode()))
			if tt.form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if tt.header != "" {
				req.Header.Set(AntiForgeryHeader, tt.header)
			}
			req = req.WithContext(context.WithValue(req.Context(), SessionIDKey, "session-1"))

			rec := httptest.NewRecorder()
			m.Verify(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.method == http.MethodGet {
				af.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := NewCORSMiddleware("").Handle(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/Patients/Create", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), AntiForgeryHeader)

	h = NewCORSMiddleware("https://clinic.example").Handle(okHandler)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Patients", nil))
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLogging_RecordsStatus(t *testing.T) {
	log := logrus.New()
	var buf strings.Builder
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/health"`)
}
