package task

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func TaskController(router *gin.Engine, authMW gin.HandlerFunc, repo services.TaskRepository) {
	tasks := router.Group("/api/tasks", authMW)
	tasks.GET("", func(c *gin.Context) { listTasks(c, repo) })
	tasks.POST("", func(c *gin.Context) { createTask(c, repo) })
	tasks.PUT("/:id", func(c *gin.Context) { updateTask(c, repo) })
	tasks.DELETE("/:id", func(c *gin.Context) { deleteTask(c, repo) })
	tasks.POST("/:id/toggle-complete", func(c *gin.Context) { toggleComplete(c, repo) })
	tasks.POST("/:id/subtasks/:subtaskId/toggle", func(c *gin.Context) { toggleSubtask(c, repo) })
}

func listTasks(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	tasks, err := repo.List(c.Request.Context(), uid)
	if err != nil {
		log.Printf("list tasks for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func createTask(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	task, err := repo.Upsert(c.Request.Context(), uid, req.ID, req.Fields())
	if err != nil {
		log.Printf("create task for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusCreated, task)
}

func updateTask(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	task, err := repo.Upsert(c.Request.Context(), uid, c.Param("id"), req.Fields())
	if err != nil {
		log.Printf("update task %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, task)
}

func deleteTask(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	deleted, err := repo.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		log.Printf("delete task %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NotFoundError("Task not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func toggleComplete(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	task, err := repo.ToggleComplete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Task not found"))
			return
		}
		log.Printf("toggle task %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, task)
}

func toggleSubtask(c *gin.Context, repo services.TaskRepository) {
	uid := c.GetString("uid")
	task, err := repo.ToggleSubtask(c.Request.Context(), uid, c.Param("id"), c.Param("subtaskId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, dto.NotFoundError("Task not found"))
		case errors.Is(err, services.ErrSubtaskNotFound):
			c.JSON(http.StatusNotFound, dto.NotFoundError("Subtask not found"))
		default:
			log.Printf("toggle subtask %s/%s for %s: %v", c.Param("id"), c.Param("subtaskId"), uid, err)
			c.JSON(http.StatusInternalServerError, dto.InternalError())
		}
		return
	}
	c.JSON(http.StatusOK, task)
}
