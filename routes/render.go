package routes

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
)

const dateLayout = "2 January 2006"

// TemplateFuncs are the helpers available to every page
func TemplateFuncs(images services.ImageStore) template.FuncMap {
	return template.FuncMap{
		"imageURL": func(blobName string) string {
			if images == nil || blobName == "" {
				return ""
			}
			return images.URL(blobName)
		},
		"avatar": util.Avatar,
		"linebreaksbr": util.LineBreaksBR,
		"formatDate": func(t time.Time) string {
			return t.Format(dateLayout)
		},
	}
}

// renderPage renders a page with the current user added to data
func renderPage(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = middleware.GetUserMaybe(c)
	c.HTML(http.StatusOK, name, data)
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}
