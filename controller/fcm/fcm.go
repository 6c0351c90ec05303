package fcm

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func FCMController(router *gin.Engine, authMW gin.HandlerFunc, push services.PushService) {
	fcm := router.Group("/api/fcm", authMW)
	fcm.POST("/token", func(c *gin.Context) { saveToken(c, push) })
	fcm.POST("/activity", func(c *gin.Context) { updateActivity(c, push) })
	fcm.GET("/preferences", func(c *gin.Context) { getPreferences(c, push) })
	fcm.PUT("/preferences", func(c *gin.Context) { updatePreferences(c, push) })
}

func saveToken(c *gin.Context, push services.PushService) {
	uid := c.GetString("uid")
	var req dto.SaveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	if err := push.SaveToken(c.Request.Context(), uid, req.Token); err != nil {
		if errors.Is(err, services.ErrTokenRequired) {
			c.JSON(http.StatusBadRequest, dto.NewError("VALIDATION_ERROR", err.Error()))
			return
		}
		log.Printf("save token for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token saved successfully"})
}

func updateActivity(c *gin.Context, push services.PushService) {
	uid := c.GetString("uid")
	if err := push.UpdateLastActive(c.Request.Context(), uid); err != nil {
		log.Printf("update activity for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func getPreferences(c *gin.Context, push services.PushService) {
	uid := c.GetString("uid")
	prefs, err := push.GetPreferences(c.Request.Context(), uid)
	if err != nil {
		log.Printf("get preferences for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func updatePreferences(c *gin.Context, push services.PushService) {
	uid := c.GetString("uid")
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	prefs, err := push.UpdatePreferences(c.Request.Context(), uid, services.PrefsUpdate{
		HolidayGreetings: req.HolidayGreetings,
		ReEngagement:     req.ReEngagement,
		AppUpdates:       req.AppUpdates,
	})
	if err != nil {
		log.Printf("update preferences for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, prefs)
}
