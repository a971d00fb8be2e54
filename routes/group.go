package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/util"
)

type groupRoutes struct {
	db       db.Database
	pageOpts *app.PageOpts
}

func AddGroupRoutes(group *gin.RouterGroup, db db.Database, pageOpts *app.PageOpts) {
	routes := groupRoutes{db: db, pageOpts: pageOpts}
	group.GET("/group/:slug/", util.HandlerWrapper(routes.getGroupPosts, &util.HandlerOpts{}))
}

func (gr *groupRoutes) getGroupPosts(c *gin.Context) *util.HTTPError {
	postGroup, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if postGroup == nil {
		return util.BuildNotFoundHTTPErr("group")
	}
	page, err := app.GetGroupPosts(c, gr.db, postGroup, c.Query("page"), gr.pageOpts)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	renderPage(c, "posts/group_list.html", gin.H{
		"group":    postGroup,
		"page_obj": page,
	})
	return nil
}
