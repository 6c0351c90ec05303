package reminder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
)

// ReminderController declares the reminders surface ahead of its
// implementation; every route answers 501.
func ReminderController(router *gin.Engine, authMW gin.HandlerFunc) {
	reminders := router.Group("/api/reminders", authMW)
	reminders.Any("", notImplemented)
	reminders.Any("/:id", notImplemented)
}

func notImplemented(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, dto.NewError("NOT_IMPLEMENTED", "Reminders API not implemented"))
}
