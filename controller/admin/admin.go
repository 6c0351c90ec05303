package admin

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

// AdminController exposes the campaign triggers normally driven by the
// scheduler, plus direct-send and audience inspection for operators.
func AdminController(router *gin.Engine, adminMW gin.HandlerFunc, campaigns services.CampaignRunner, push services.PushService) {
	grp := router.Group("/api/admin", adminMW)
	grp.POST("/notifications/holiday-greeting", func(c *gin.Context) { holidayGreeting(c, campaigns) })
	grp.POST("/notifications/reengagement", func(c *gin.Context) { reengagement(c, campaigns) })
	grp.POST("/notifications/announcement", func(c *gin.Context) { announcement(c, campaigns) })
	grp.POST("/notifications/send", func(c *gin.Context) { directSend(c, push) })
	grp.GET("/users/inactive", func(c *gin.Context) { inactiveUsers(c, push) })
}

func holidayGreeting(c *gin.Context, campaigns services.CampaignRunner) {
	result, err := campaigns.SendHolidayGreetings(c.Request.Context())
	if err != nil {
		log.Printf("holiday greeting dispatch: %v", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func reengagement(c *gin.Context, campaigns services.CampaignRunner) {
	var req dto.ReengagementRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	result, err := campaigns.SendReengagementNotifications(c.Request.Context(), req.DaysInactive)
	if err != nil {
		log.Printf("re-engagement dispatch: %v", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func announcement(c *gin.Context, campaigns services.CampaignRunner) {
	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	result, err := campaigns.SendAnnouncement(c.Request.Context(), req.Title, req.Body, req.Data)
	if err != nil {
		log.Printf("announcement dispatch: %v", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func directSend(c *gin.Context, push services.PushService) {
	var req dto.DirectSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	result, err := push.SendToUser(c.Request.Context(), req.UID, services.PushMessage{
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	if err != nil {
		log.Printf("direct send to %s: %v", req.UID, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func inactiveUsers(c *gin.Context, push services.PushService) {
	days, _ := strconv.Atoi(c.Query("days"))
	if days <= 0 {
		days = 30
	}

	users, err := push.GetInactiveUsers(c.Request.Context(), days)
	if err != nil {
		log.Printf("inactive users query: %v", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	summaries := make([]gin.H, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, gin.H{"uid": u.UID, "lastActive": u.LastActive})
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(users),
		"daysInactive": days,
		"users":        summaries,
	})
}
