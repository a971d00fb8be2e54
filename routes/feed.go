package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/util"
)

type feedRoutes struct {
	db       db.Database
	pageOpts *app.PageOpts
}

// AddFeedRoutes registers the home listing, served through pageCache, and the following feed
func AddFeedRoutes(group *gin.RouterGroup, db db.Database, pageCache *middleware.PageCache, pageOpts *app.PageOpts) {
	routes := feedRoutes{db: db, pageOpts: pageOpts}
	index := []gin.HandlerFunc{util.HandlerWrapper(routes.getIndex, &util.HandlerOpts{})}
	if pageCache != nil {
		index = append([]gin.HandlerFunc{pageCache.Handler()}, index...)
	}
	group.GET("/", index...)
	group.GET("/follow/",
		middleware.RequireLogin(LoginPath),
		util.HandlerWrapper(routes.getFollowFeed, &util.HandlerOpts{}))
}

func (fr *feedRoutes) getIndex(c *gin.Context) *util.HTTPError {
	page, err := app.GetAllPosts(c, fr.db, c.Query("page"), fr.pageOpts)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	renderPage(c, "posts/index.html", gin.H{
		"page_obj": page,
	})
	return nil
}

func (fr *feedRoutes) getFollowFeed(c *gin.Context) *util.HTTPError {
	page, err := app.GetFeedForUser(c, fr.db, middleware.MustGetUser(c), c.Query("page"), fr.pageOpts)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	renderPage(c, "posts/follow.html", gin.H{
		"page_obj": page,
	})
	return nil
}
