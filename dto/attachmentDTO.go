package dto

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
}

// DeleteAttachmentRequest accepts either the raw object path or the
// public download URL it was served from.
type DeleteAttachmentRequest struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
