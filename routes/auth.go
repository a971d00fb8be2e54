package routes

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

const (
	LoginPath  = "/auth/login/"
	LogoutPath = "/auth/logout/"
	FollowPath = "/follow/"

	invalidTokenMsg  = "Your sign-in could not be verified. Please try again."
	usernameTakenMsg = "A user with that username already exists."
)

type SessionOpts struct {
	TTL    time.Duration
	Secure bool
}

type authRoutes struct {
	db          db.Database
	sessionAuth middleware.SessionAuth
	session     *SessionOpts
}

// AddAuthRoutes registers login and logout. Credentials are checked by firebase,
// the browser posts the ID token it obtained there.
func AddAuthRoutes(group *gin.RouterGroup, db db.Database, sessionAuth middleware.SessionAuth, session *SessionOpts) {
	routes := authRoutes{db: db, sessionAuth: sessionAuth, session: session}
	group.GET(LoginPath, util.HandlerWrapper(routes.getLogin, &util.HandlerOpts{}))
	group.POST(LoginPath, util.HandlerWrapper(routes.login, &util.HandlerOpts{}))
	group.GET(LogoutPath, util.HandlerWrapper(routes.logout, &util.HandlerOpts{}))
	group.POST(LogoutPath, util.HandlerWrapper(routes.logout, &util.HandlerOpts{}))
}

func renderLogin(c *gin.Context, form *LoginForm) {
	message := ""
	for _, errs := range form.Errors {
		if len(errs) > 0 {
			message = errs[0]
			break
		}
	}
	renderPage(c, "users/login.html", gin.H{
		"next":     form.Next,
		"username": form.Username,
		"error":    message,
	})
}

func (ar *authRoutes) getLogin(c *gin.Context) *util.HTTPError {
	renderLogin(c, &LoginForm{Next: c.Query("next"), Errors: FormErrors{}})
	return nil
}

func (ar *authRoutes) login(c *gin.Context) *util.HTTPError {
	form := &LoginForm{}
	if err := c.ShouldBindWith(form, binding.Form); err != nil {
		return util.BuildFormBindHTTPErr(err)
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Errors = validateForm(form)
	if !form.Errors.Valid() {
		renderLogin(c, form)
		return nil
	}

	token, err := ar.sessionAuth.VerifyIDToken(c, form.IdToken)
	if err != nil {
		log.Info().Err(err).Str(logging.EVENT, "login_rejected").Msg("invalid id token")
		form.Errors.Add("id_token", invalidTokenMsg)
		renderLogin(c, form)
		return nil
	}

	user, err := ar.db.GetUser(c, token.UID)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if user == nil {
		created, httpErr := ar.createUser(c, token.UID, form)
		if httpErr != nil || created == nil {
			return httpErr
		}
	}

	cookie, err := ar.sessionAuth.SessionCookie(c, form.IdToken, ar.session.TTL)
	if err != nil {
		log.Info().Err(err).Str(logging.EVENT, "login_rejected").Msg("failed to create session cookie")
		form.Errors.Add("id_token", invalidTokenMsg)
		renderLogin(c, form)
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SESSION_COOKIE, cookie, int(ar.session.TTL.Seconds()), "/", "", ar.session.Secure, true)
	c.Redirect(http.StatusFound, safeNext(form.Next))
	return nil
}

// createUser binds a first time firebase account to a username. A nil user
// without error means the form was re-rendered.
func (ar *authRoutes) createUser(c *gin.Context, uid string, form *LoginForm) (*model.User, *util.HTTPError) {
	if form.Username == "" {
		form.Errors.Add("username", requiredMsg)
		renderLogin(c, form)
		return nil, nil
	}
	existing, err := ar.db.GetUserByUsername(c, form.Username)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if existing != nil {
		form.Errors.Add("username", usernameTakenMsg)
		renderLogin(c, form)
		return nil, nil
	}

	user := &model.User{
		FirebaseId: uid,
		Username:   form.Username,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := ar.db.CreateUser(c, user)
	if err != nil {
		if db.IsDupKeyErr(err) {
			form.Errors.Add("username", usernameTakenMsg)
			renderLogin(c, form)
			return nil, nil
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	user.Id = id
	log.Info().Str(logging.EVENT, "user_created").Str(logging.USER, user.Username).Msg("new user")
	return user, nil
}

func (ar *authRoutes) logout(c *gin.Context) *util.HTTPError {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SESSION_COOKIE, "", -1, "/", "", ar.session.Secure, true)
	c.Redirect(http.StatusFound, "/")
	return nil
}

// safeNext only allows redirects to local paths
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "/"
	}
	return next
}
