package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotbook/utils"
)

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	snapshot := utils.GetHealthStatus()
	status := http.StatusOK
	if snapshot.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, snapshot)
}
