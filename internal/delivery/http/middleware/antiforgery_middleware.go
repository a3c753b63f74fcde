package middleware

import (
	"context"
	"errors"
	"net/http"

	"medical-data-app/internal/service"
	"medical-data-app/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"

	SessionCookieName = "medical_session"

	AntiForgeryFormField = "__RequestVerificationToken"
	AntiForgeryHeader    = "RequestVerificationToken"
)

type AntiForgeryMiddleware struct {
	antiForgery service.AntiForgeryService
	log         *logrus.Logger
}

func NewAntiForgeryMiddleware(antiForgery service.AntiForgeryService, log *logrus.Logger) *AntiForgeryMiddleware {
	return &AntiForgeryMiddleware{
		antiForgery: antiForgery,
		log:         log,
	}
}

// Session makes sure every request carries a session id, issuing the cookie
// on first contact.
func (m *AntiForgeryMiddleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verify rejects a POST whose anti-forgery token is missing, forged, expired
// or issued to another session. Other methods pass through.
func (m *AntiForgeryMiddleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, _ := GetSessionIDFromContext(r.Context())

		token := r.Header.Get(AntiForgeryHeader)
		if token == "" {
			// ParseForm leaves JSON bodies untouched
			if err := r.ParseForm(); err == nil {
				token = r.PostForm.Get(AntiForgeryFormField)
			}
		}

		if err := m.antiForgery.Validate(r.Context(), sessionID, token); err != nil {
			if isAntiForgeryRejection(err) {
				m.log.Warnf("Rejected %s %s: %v", r.Method, r.URL.Path, err)
				response.Forbidden(w, "Invalid anti-forgery token")
				return
			}
			response.InternalServerError(w, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAntiForgeryRejection(err error) bool {
	return errors.Is(err, service.ErrAntiForgeryMissing) ||
		errors.Is(err, service.ErrAntiForgeryInvalid) ||
		errors.Is(err, service.ErrAntiForgerySession) ||
		errors.Is(err, service.ErrAntiForgeryRevoked)
}

// GetSessionIDFromContext extracts the session id set by Session
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
