package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/metrics"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/templates"
	"github.com/navbryce/yatube/util"
)

var log = logging.NewPackageLogger("routes")

type EngineOpts struct {
	DB          db.Database
	SessionAuth middleware.SessionAuth
	Images      services.ImageStore
	Groups      GroupChoices
	// PageCache serves the home listing, nil disables caching
	PageCache *middleware.PageCache
	PageOpts  *app.PageOpts
	Session   *SessionOpts
	Origins   []string
	// MediaRoot is served at /media/ when set
	MediaRoot string
}

// NewEngine builds the gin engine with every route registered
func NewEngine(opts *EngineOpts) (*gin.Engine, error) {
	renderer, err := templates.New(TemplateFuncs(opts.Images))
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(middleware.Username))
	r.Use(metrics.Middleware())
	if len(opts.Origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.Origins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.GenAuth(opts.DB, opts.SessionAuth))
	r.NoRoute(func(c *gin.Context) {
		util.HandleHTTPErrorRes(c, &util.NotFoundHTTPErr)
	})

	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	session := opts.Session
	if session == nil {
		session = &SessionOpts{TTL: 14 * 24 * time.Hour, Secure: true}
	}

	AddFeedRoutes(&r.RouterGroup, opts.DB, opts.PageCache, opts.PageOpts)
	AddGroupRoutes(&r.RouterGroup, opts.DB, opts.PageOpts)
	AddUserRoutes(&r.RouterGroup, opts.DB, opts.PageOpts)
	AddPostRoutes(&r.RouterGroup, opts.DB, opts.Groups, opts.Images)
	AddAuthRoutes(&r.RouterGroup, opts.DB, opts.SessionAuth, session)
	AddHealthCheckRoutes(&r.RouterGroup, opts.DB)
	return r, nil
}
