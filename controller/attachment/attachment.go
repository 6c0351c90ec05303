package attachment

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/dto"
	"dayflow/services"
)

func AttachmentController(router *gin.Engine, authMW gin.HandlerFunc, attachments services.AttachmentManager) {
	grp := router.Group("/api/attachments", authMW)
	grp.POST("/presign", func(c *gin.Context) { presignUpload(c, attachments) })
	grp.POST("/delete", func(c *gin.Context) { deleteAttachment(c, attachments) })
}

func presignUpload(c *gin.Context, attachments services.AttachmentManager) {
	uid := c.GetString("uid")
	var req dto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}
	if !services.IsAllowedExtension(req.Filename) {
		c.JSON(http.StatusBadRequest, dto.NewError("VALIDATION_ERROR", "Invalid filename",
			dto.FieldError{Field: "filename", Message: "Filename must have an allowed extension"}))
		return
	}

	result, err := attachments.PresignUpload(c.Request.Context(), uid, req.Filename, req.ContentType)
	if err != nil {
		log.Printf("presign upload for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func deleteAttachment(c *gin.Context, attachments services.AttachmentManager) {
	uid := c.GetString("uid")
	var req dto.DeleteAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err))
		return
	}

	path := req.Path
	if path == "" && req.URL != "" {
		path = attachments.PathFromURL(req.URL)
	}
	if path == "" {
		c.JSON(http.StatusBadRequest, dto.NewError("VALIDATION_ERROR", "path or url is required",
			dto.FieldError{Field: "path", Message: "Provide path or url"}))
		return
	}

	if err := attachments.Delete(c.Request.Context(), uid, path); err != nil {
		if errors.Is(err, services.ErrAttachmentOutOfScope) {
			c.JSON(http.StatusForbidden, dto.NewError("FORBIDDEN",
				"Cannot delete attachments outside your scope"))
			return
		}
		log.Printf("delete attachment for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.Status(http.StatusNoContent)
}
