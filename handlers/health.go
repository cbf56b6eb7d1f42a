package handlers

import (
	"net/http"

	"deskhive/database"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with a live dependency check.
func HealthHandler(c *gin.Context) {
	status := utils.CheckHealth(c.Request.Context(), database.MongoClient,
		utils.GetCacheClient(), utils.GetSessionCacheClient())

	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
