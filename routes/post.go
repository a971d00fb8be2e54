package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/metrics"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
)

type postRoutes struct {
	db     db.Database
	groups GroupChoices
	images services.ImageStore
}

func AddPostRoutes(group *gin.RouterGroup, db db.Database, groups GroupChoices, images services.ImageStore) {
	routes := postRoutes{db: db, groups: groups, images: images}
	requireLogin := middleware.RequireLogin(LoginPath)

	group.GET("/posts/:id/", util.HandlerWrapper(routes.getPostDetail, &util.HandlerOpts{}))

	posts := group.Group("", requireLogin)
	posts.GET("/create/", util.HandlerWrapper(routes.getCreatePost, &util.HandlerOpts{}))
	posts.POST("/create/", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.GET("/posts/:id/edit/", util.HandlerWrapper(routes.getEditPost, &util.HandlerOpts{}))
	posts.POST("/posts/:id/edit/", util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
	posts.POST("/posts/:id/delete/", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.GET("/posts/:id/comment/", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
	posts.POST("/posts/:id/comment/", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
}

// getPost loads the post named by the :id path param
func (pr *postRoutes) getPost(c *gin.Context) (*model.Post, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	return post, nil
}

func (pr *postRoutes) getPostDetail(c *gin.Context) *util.HTTPError {
	post, httpErr := pr.getPost(c)
	if httpErr != nil {
		return httpErr
	}
	comments, err := pr.db.GetCommentsForPost(c, post.Id)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	countPost, err := pr.db.CountPosts(c, &db.PostsListQuery{AuthorId: post.Author.Id})
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	renderPage(c, "posts/post_detail.html", gin.H{
		"post":       post,
		"comments":   comments,
		"count_post": countPost,
		"form":       &CommentForm{Errors: FormErrors{}},
	})
	return nil
}

func (pr *postRoutes) renderPostForm(c *gin.Context, form *PostForm, post *model.Post) {
	data := gin.H{
		"form":   form,
		"groups": pr.groups.GetGroups(c),
	}
	if post != nil {
		data["post"] = post
		data["is_edit"] = true
	}
	renderPage(c, "posts/create_post.html", data)
}

func (pr *postRoutes) getCreatePost(c *gin.Context) *util.HTTPError {
	pr.renderPostForm(c, &PostForm{Errors: FormErrors{}}, nil)
	return nil
}

func (pr *postRoutes) createPost(c *gin.Context) *util.HTTPError {
	user := middleware.MustGetUser(c)
	form, httpErr := bindPostForm(c, pr.groups)
	if httpErr != nil {
		return httpErr
	}
	if !form.Valid() {
		pr.renderPostForm(c, form, nil)
		return nil
	}

	image, err := storeImage(c, pr.images, form)
	if err != nil {
		return util.BuildInternalHTTPErr(err, "failed to store image")
	}
	if _, err := pr.db.CreatePost(c, &db.CreatePost{
		AuthorId: user.Id,
		Text:     form.Text,
		GroupId:  form.Group,
		Image:    image,
	}); err != nil {
		pr.discardImage(c, image)
		return util.BuildDbHTTPErr(err)
	}
	metrics.PostsCreated.Inc()
	c.Redirect(http.StatusFound, profilePath(user.Username))
	return nil
}

func (pr *postRoutes) getEditPost(c *gin.Context) *util.HTTPError {
	post, httpErr := pr.getPost(c)
	if httpErr != nil {
		return httpErr
	}
	if !post.CanEdit(middleware.MustGetUser(c)) {
		c.Redirect(http.StatusFound, postPath(post.Id))
		return nil
	}
	pr.renderPostForm(c, postFormFromPost(post), post)
	return nil
}

func (pr *postRoutes) editPost(c *gin.Context) *util.HTTPError {
	post, httpErr := pr.getPost(c)
	if httpErr != nil {
		return httpErr
	}
	if !post.CanEdit(middleware.MustGetUser(c)) {
		c.Redirect(http.StatusFound, postPath(post.Id))
		return nil
	}
	form, httpErr := bindPostForm(c, pr.groups)
	if httpErr != nil {
		return httpErr
	}
	if !form.Valid() {
		pr.renderPostForm(c, form, post)
		return nil
	}

	image, err := storeImage(c, pr.images, form)
	if err != nil {
		return util.BuildInternalHTTPErr(err, "failed to store image")
	}
	if image == "" {
		image = post.Image
	}
	if err := pr.db.UpdatePost(c, post.Id, &db.UpdatePost{
		Text:    form.Text,
		GroupId: form.Group,
		Image:   image,
	}); err != nil {
		if image != post.Image {
			pr.discardImage(c, image)
		}
		return util.BuildDbHTTPErr(err)
	}
	if image != post.Image {
		pr.discardImage(c, post.Image)
	}
	c.Redirect(http.StatusFound, postPath(post.Id))
	return nil
}

func (pr *postRoutes) deletePost(c *gin.Context) *util.HTTPError {
	post, httpErr := pr.getPost(c)
	if httpErr != nil {
		return httpErr
	}
	user := middleware.MustGetUser(c)
	if !post.CanEdit(user) {
		c.Redirect(http.StatusFound, postPath(post.Id))
		return nil
	}
	if err := pr.db.DeletePost(c, post.Id); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	pr.discardImage(c, post.Image)
	c.Redirect(http.StatusFound, profilePath(user.Username))
	return nil
}

// addComment always ends on the post's page, invalid comments are dropped
func (pr *postRoutes) addComment(c *gin.Context) *util.HTTPError {
	post, httpErr := pr.getPost(c)
	if httpErr != nil {
		return httpErr
	}
	form, httpErr := bindCommentForm(c)
	if httpErr != nil {
		return httpErr
	}
	if form.Errors.Valid() {
		if _, err := pr.db.CreateComment(c, &db.CreateComment{
			PostId:   post.Id,
			AuthorId: middleware.MustGetUser(c).Id,
			Text:     form.Text,
		}); err != nil {
			return util.BuildDbHTTPErr(err)
		}
	}
	c.Redirect(http.StatusFound, postPath(post.Id))
	return nil
}

// discardImage removes a blob that is no longer referenced, failures are only logged
func (pr *postRoutes) discardImage(c *gin.Context, blobName string) {
	if blobName == "" {
		return
	}
	if err := pr.images.Delete(c, blobName); err != nil {
		log.Warn().Err(err).Str("blob", blobName).Msg("failed to delete image")
	}
}
