package auth

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/speedbike/speedbike/internal/shared"
)

func newAuthServer(t *testing.T, repo RepositoryPort) (*httptest.Server, *miniredis.Miniredis, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := NewHandler(logger, NewService(repo), sessions, 10, time.Minute)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			ctx := shared.ContextWithSession(req.Context(), sess)
			rec := httptest.NewRecorder()
			next.ServeHTTP(rec, req.WithContext(ctx))
			if err := sessions.Commit(ctx, w, req, sess); err != nil {
				t.Errorf("commit session: %v", err)
			}
			for k, vv := range rec.Header() {
				for _, v := range vv {
					w.Header().Add(k, v)
				}
			}
			w.WriteHeader(rec.Code)
			_, _ = w.Write(rec.Body.Bytes())
		})
	})
	r.Route("/auth", h.MountRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mr, sessions
}

func activeUser(t *testing.T, password string) *User {
	t.Helper()
	u := &User{ID: 1, Username: "karim", Role: "manager", IsActive: true}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		u.PasswordHash = string(hashed)
	}
	return u
}

func sessionCookie(t *testing.T, resp *http.Response, sessions *shared.SessionManager) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == sessions.CookieName() {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginFlow(t *testing.T) {
	srv, mr, sessions := newAuthServer(t, &stubUserRepo{user: activeUser(t, "correctpass")})

	body := `{"username":"karim","password":"correctpass"}`
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "karim", view.Username)
	assert.Equal(t, "manager", view.Role)

	cookie := sessionCookie(t, resp, sessions)
	stored, err := mr.Get("session:" + cookie.Value)
	require.NoError(t, err)
	assert.Contains(t, stored, `"username":"karim"`)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, _, _ := newAuthServer(t, &stubUserRepo{user: activeUser(t, "correctpass")})

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"username":"karim","password":"wrongpass"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithoutSession(t *testing.T) {
	srv, _, _ := newAuthServer(t, &stubUserRepo{})

	resp, err := http.Get(srv.URL + "/auth/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutDestroysSession(t *testing.T) {
	srv, mr, sessions := newAuthServer(t, &stubUserRepo{user: activeUser(t, "")})

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"username":"karim"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp, sessions)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/logout", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	outResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	outResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, outResp.StatusCode)

	_, err = mr.Get("session:" + cookie.Value)
	assert.Error(t, err)
}
