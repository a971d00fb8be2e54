package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type userRoutes struct {
	db       db.Database
	pageOpts *app.PageOpts
}

// AddUserRoutes registers the author profile and the follow/unfollow actions
func AddUserRoutes(group *gin.RouterGroup, db db.Database, pageOpts *app.PageOpts) {
	routes := userRoutes{db: db, pageOpts: pageOpts}
	group.GET("/profile/:username/", util.HandlerWrapper(routes.getProfile, &util.HandlerOpts{}))

	follows := group.Group("/profile/:username", middleware.RequireLogin(LoginPath))
	follows.GET("/follow/", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	follows.GET("/unfollow/", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

func (ur *userRoutes) getAuthor(c *gin.Context) (*model.User, *util.HTTPError) {
	author, err := ur.db.GetUserByUsername(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if author == nil {
		return nil, util.BuildNotFoundHTTPErr("author")
	}
	return author, nil
}

func (ur *userRoutes) getProfile(c *gin.Context) *util.HTTPError {
	author, httpErr := ur.getAuthor(c)
	if httpErr != nil {
		return httpErr
	}
	page, err := app.GetAuthorPosts(c, ur.db, author, c.Query("page"), ur.pageOpts)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}

	following := false
	if viewer := middleware.GetUserMaybe(c); viewer != nil {
		if following, err = ur.db.IsFollowing(c, viewer.Id, author.Id); err != nil {
			return util.BuildDbHTTPErr(err)
		}
	}
	renderPage(c, "posts/profile.html", gin.H{
		"author":     author,
		"count_post": page.TotalEntries,
		"following":  following,
		"page_obj":   page,
	})
	return nil
}

// follow is a no-op for the author themselves and for an existing follow
func (ur *userRoutes) follow(c *gin.Context) *util.HTTPError {
	author, httpErr := ur.getAuthor(c)
	if httpErr != nil {
		return httpErr
	}
	user := middleware.MustGetUser(c)
	if !user.Is(author) {
		if err := ur.db.CreateFollow(c, &model.Follow{
			UserId:   user.Id,
			AuthorId: author.Id,
		}); err != nil {
			return util.BuildDbHTTPErr(err)
		}
	}
	c.Redirect(http.StatusFound, FollowPath)
	return nil
}

func (ur *userRoutes) unfollow(c *gin.Context) *util.HTTPError {
	author, httpErr := ur.getAuthor(c)
	if httpErr != nil {
		return httpErr
	}
	if err := ur.db.DeleteFollow(c, &model.Follow{
		UserId:   middleware.MustGetUser(c).Id,
		AuthorId: author.Id,
	}); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	c.Redirect(http.StatusFound, FollowPath)
	return nil
}
