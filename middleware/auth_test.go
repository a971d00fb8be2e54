package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserDB struct {
	users map[string]*model.User
}

func (fu *fakeUserDB) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	fu.users[user.FirebaseId] = user
	return user.Id, nil
}

func (fu *fakeUserDB) GetUser(ctx context.Context, firebaseId string) (*model.User, error) {
	return fu.users[firebaseId], nil
}

func (fu *fakeUserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range fu.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func newAuthEngine() *gin.Engine {
	userDB := &fakeUserDB{users: map[string]*model.User{
		"uid-leo": {Id: 1, FirebaseId: "uid-leo", Username: "leo"},
	}}
	r := gin.New()
	r.Use(middleware.GenAuth(userDB, testutil.FakeSessionAuth{}))
	r.GET("/whoami", func(c *gin.Context) {
		uid := ""
		if token, ok := c.Get(middleware.TOKEN_KEY); ok {
			uid = token.(*auth.Token).UID
		}
		c.String(http.StatusOK, "%v|%v", middleware.Username(c), uid)
	})
	r.GET("/create/", middleware.RequireLogin("/auth/login/"), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.MustGetUser(c).Username)
	})
	return r
}

func get(r http.Handler, target string, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SESSION_COOKIE, Value: session})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenAuth(t *testing.T) {
	r := newAuthEngine()

	for name, tc := range map[string]struct {
		session  string
		expected string
	}{
		"anonymous":       {"", "|"},
		"invalid session": {testutil.InvalidToken, "|"},
		"known user":      {"uid-leo", "leo|uid-leo"},
		"no profile yet":  {"uid-new", "|uid-new"},
	} {
		t.Run(name, func(t *testing.T) {
			w := get(r, "/whoami", tc.session)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestRequireLogin(t *testing.T) {
	r := newAuthEngine()

	w := get(r, "/create/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))

	// a firebase account without a profile is not logged in
	w = get(r, "/create/", "uid-new")
	assert.Equal(t, http.StatusFound, w.Code)

	w = get(r, "/create/", "uid-leo")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "leo", w.Body.String())
}

func TestLoginRedirectURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/create/", middleware.LoginRedirectURL("/auth/login/", "/create/"))
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", middleware.LoginRedirectURL("/auth/login/", "/follow/?page=2"))
	assert.Equal(t, "/auth/login/?next=/profile/a%20b/follow/", middleware.LoginRedirectURL("/auth/login/", "/profile/a b/follow/"))
}
