package note

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func NoteController(router *gin.Engine, authMW gin.HandlerFunc, repo services.NoteRepository) {
	notes := router.Group("/api/notes", authMW)
	notes.GET("", func(c *gin.Context) { listNotes(c, repo) })
	notes.POST("", func(c *gin.Context) { createNote(c, repo) })
	notes.PUT("/:id", func(c *gin.Context) { updateNote(c, repo) })
	notes.DELETE("/:id", func(c *gin.Context) { deleteNote(c, repo) })
	notes.POST("/:id/toggle-pin", func(c *gin.Context) { togglePin(c, repo) })
	notes.POST("/:id/lock", func(c *gin.Context) { lockNote(c, repo) })
	notes.POST("/:id/unlock", func(c *gin.Context) { unlockNote(c, repo) })
}

func listNotes(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	filter := services.NoteFilter{
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
	}
	notes, err := repo.List(c.Request.Context(), uid, filter)
	if err != nil {
		log.Printf("list notes for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func createNote(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	note, err := repo.Upsert(c.Request.Context(), uid, req.ID, req.Fields())
	if err != nil {
		log.Printf("create note for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusCreated, note)
}

func updateNote(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	note, err := repo.Upsert(c.Request.Context(), uid, c.Param("id"), req.Fields())
	if err != nil {
		log.Printf("update note %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, note)
}

func deleteNote(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	deleted, err := repo.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		log.Printf("delete note %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NotFoundError("Note not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func togglePin(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	note, err := repo.TogglePin(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Note not found"))
			return
		}
		log.Printf("toggle pin %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, note)
}

func lockNote(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	var req dto.LockNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}
	if req.LockPin == "" && !req.UseBiometric {
		c.JSON(http.StatusBadRequest, dto.NewError("VALIDATION_ERROR",
			"lockPin or useBiometric is required",
			dto.FieldError{Field: "lockPin", Message: "Provide lockPin or useBiometric"}))
		return
	}

	note, err := repo.Lock(c.Request.Context(), uid, c.Param("id"), req.LockPin, req.UseBiometric)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Note not found"))
			return
		}
		log.Printf("lock note %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, note)
}

func unlockNote(c *gin.Context, repo services.NoteRepository) {
	uid := c.GetString("uid")
	note, err := repo.Unlock(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("Note not found"))
			return
		}
		log.Printf("unlock note %s for %s: %v", c.Param("id"), uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, note)
}
