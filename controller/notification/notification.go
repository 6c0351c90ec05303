package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func NotificationController(router *gin.Engine, authMW gin.HandlerFunc, repo services.NotificationRepository) {
	notifications := router.Group("/api/notifications", authMW)
	notifications.GET("", func(c *gin.Context) { listNotifications(c, repo) })
	notifications.POST("", func(c *gin.Context) { createNotification(c, repo) })
	notifications.PATCH("/:id/read", func(c *gin.Context) { markRead(c, repo) })
	notifications.POST("/read-all", func(c *gin.Context) { markAllRead(c, repo) })
	notifications.DELETE("/:id", func(c *gin.Context) { deleteNotification(c, repo) })
	notifications.GET("/unread-count", func(c *gin.Context) { unreadCount(c, repo) })
}

func listNotifications(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	limit, _ := strconv.Atoi(c.Query("limit"))
	cursor := c.Query("cursor")

	page, err := repo.List(c.Request.Context(), uid, limit, cursor)
	if err != nil {
		log.Printf("list notifications for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, page)
}

func createNotification(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	notification, err := repo.Upsert(c.Request.Context(), uid, req.ID, req.Fields())
	if err != nil {
		log.Printf("create notification for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func markRead(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	notification, err := repo.MarkRead(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Notification not found"))
			return
		}
		log.Printf("mark notification %s read for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, notification)
}

func markAllRead(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	count, err := repo.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		log.Printf("mark all notifications read for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updatedCount": count})
}

func deleteNotification(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	deleted, err := repo.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		log.Printf("delete notification %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NotFoundError("Notification not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func unreadCount(c *gin.Context, repo services.NotificationRepository) {
	uid := c.GetString("uid")
	count, err := repo.GetUnreadCount(c.Request.Context(), uid)
	if err != nil {
		log.Printf("count unread notifications for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}
