package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/model"
)

var log = logging.NewPackageLogger("middleware")

const (
	TOKEN_KEY      = "authToken"
	USER_KEY       = "user"
	SESSION_COOKIE = "session"
)

// SessionAuth is the part of the firebase auth client used for browser sessions.
// *auth.Client satisfies it.
type SessionAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

var _ SessionAuth = (*auth.Client)(nil)

// GenAuth resolves the session cookie into a token and, when the account has a
// local profile, a user. It never rejects a request; see RequireLogin.
func GenAuth(userDB db.UserDatabase, sessionAuth SessionAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SESSION_COOKIE)
		if err != nil || cookie == "" {
			return
		}
		token, err := sessionAuth.VerifySessionCookie(c, cookie)
		if err != nil {
			log.Debug().Err(err).Str(logging.EVENT, "invalid_session").Msg("ignoring session cookie")
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			log.Error().Err(err).Str(logging.EVENT, "db_error").Msg("failed to load session user")
			return
		}
		if user != nil {
			c.Set(USER_KEY, user)
		}
	}
}

// RequireLogin sends anonymous visitors to loginPath, remembering where they were headed
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) != nil {
			return
		}
		c.Redirect(http.StatusFound, LoginRedirectURL(loginPath, c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginRedirectURL builds loginPath?next=<next>, leaving slashes in next unescaped
func LoginRedirectURL(loginPath string, next string) string {
	escaped := url.QueryEscape(next)
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return loginPath + "?next=" + escaped
}

func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// MustGetUser should only be used behind RequireLogin
func MustGetUser(c *gin.Context) *model.User {
	return c.MustGet(USER_KEY).(*model.User)
}

// Username is used by the request logger
func Username(c *gin.Context) string {
	if user := GetUserMaybe(c); user != nil {
		return user.Username
	}
	return ""
}
