package habit

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func HabitController(router *gin.Engine, authMW gin.HandlerFunc, repo services.HabitRepository) {
	habits := router.Group("/api/habits", authMW)
	habits.GET("", func(c *gin.Context) { listHabits(c, repo) })
	habits.POST("", func(c *gin.Context) { createHabit(c, repo) })
	habits.PUT("/:id", func(c *gin.Context) { updateHabit(c, repo) })
	habits.DELETE("/:id", func(c *gin.Context) { deleteHabit(c, repo) })
	habits.POST("/:id/toggle", func(c *gin.Context) { toggleCompletion(c, repo) })
}

func listHabits(c *gin.Context, repo services.HabitRepository) {
	uid := c.GetString("uid")
	habits, err := repo.List(c.Request.Context(), uid)
	if err != nil {
		log.Printf("list habits for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func createHabit(c *gin.Context, repo services.HabitRepository) {
	uid := c.GetString("uid")
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	habit, err := repo.Upsert(c.Request.Context(), uid, req.ID, req.Fields())
	if err != nil {
		log.Printf("create habit for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func updateHabit(c *gin.Context, repo services.HabitRepository) {
	uid := c.GetString("uid")
	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	habit, err := repo.Upsert(c.Request.Context(), uid, c.Param("id"), req.Fields())
	if err != nil {
		log.Printf("update habit %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, habit)
}

func deleteHabit(c *gin.Context, repo services.HabitRepository) {
	uid := c.GetString("uid")
	deleted, err := repo.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		log.Printf("delete habit %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NotFoundError("Habit not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func toggleCompletion(c *gin.Context, repo services.HabitRepository) {
	uid := c.GetString("uid")
	var req dto.ToggleHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	result, err := repo.ToggleCompletion(c.Request.Context(), uid, c.Param("id"), req.DateKey)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Habit not found"))
			return
		}
		log.Printf("toggle habit %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}
