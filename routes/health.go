package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/metrics"
	"github.com/navbryce/yatube/util"
)

func AddHealthCheckRoutes(group *gin.RouterGroup, database db.Database) {
	health := group.Group("/health")
	health.GET("", util.HandlerWrapper(func(c *gin.Context) *util.HTTPError {
		return AliveCheck(c, database)
	}, &util.HandlerOpts{}))
	group.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// AliveCheck also pings the database
func AliveCheck(c *gin.Context, database db.Database) *util.HTTPError {
	if database != nil {
		if err := database.GetSQLDB().PingContext(c); err != nil {
			return util.BuildDbHTTPErr(err)
		}
	}
	c.String(http.StatusOK, "ok")
	return nil
}
