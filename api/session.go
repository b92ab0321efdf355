package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookieName = "admin_session"
	sessionTTL        = 30 * 24 * time.Hour

	loginPath = "/admin/login"
)

// sessionManager issues and verifies the admin session cookie, a signed
// JWT holding the user id.
type sessionManager struct {
	secret []byte
	users  *database.UserRepo
	logger zerolog.Logger
}

func newSessionManager(secret string, users *database.UserRepo) *sessionManager {
	return &sessionManager{
		secret: []byte(secret),
		users:  users,
		logger: log.With().Str("handlerName", "sessionManager").Logger(),
	}
}

// issue signs a session token for the user and sets it as an HTTP-only
// cookie.
func (m *sessionManager) issue(w http.ResponseWriter, userID uuid.UUID) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clear expires the session cookie.
func (m *sessionManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// authenticate resolves the request's session cookie to a user, or nil
// when the request carries no valid session.
func (m *sessionManager) authenticate(r *http.Request) *models.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}

	user, err := m.users.FindByID(userID)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load session user")
		return nil
	}
	return user
}

// require redirects unauthenticated requests to the login page with the
// original path carried in a next parameter, honored after a successful
// login.
func (m *sessionManager) require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.authenticate(r)
		if user == nil {
			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
	})
}
