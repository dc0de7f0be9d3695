package http

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const sessionCookie = "frota_session"

type session struct {
	phone     string
	expiresAt time.Time
}

// sessionStore keeps logged-in sessions in memory. Restarting the
// process logs everyone out, which is acceptable for a household tool.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create registers a new session and returns its token.
func (st *sessionStore) Create(phone string) string {
	token := newToken()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[token] = session{phone: phone, expiresAt: time.Now().Add(st.ttl)}
	return token
}

// Get returns the phone bound to the token, if the session is live.
func (st *sessionStore) Get(token string) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[token]
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		delete(st.sessions, token)
		return "", false
	}
	return sess.phone, true
}

// Delete forgets the token.
func (st *sessionStore) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

// CleanExpired implements cache.Cleaner.
func (st *sessionStore) CleanExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, sess := range st.sessions {
		if now.After(sess.expiresAt) {
			delete(st.sessions, token)
			removed++
		}
	}
	return removed
}

func newToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// requireAuth gates the app pages behind a live session. Browsers get
// a redirect to the login screen; non-GET requests get a plain 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err == nil {
			if _, ok := s.sessions.Get(cookie.Value); ok {
				next.ServeHTTP(w, r)
				return
			}
		}
		if r.Method == http.MethodGet {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Error(w, "Sessão expirada. Entre novamente.", http.StatusUnauthorized)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
