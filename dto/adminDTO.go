package dto

type ReengagementRequest struct {
	DaysInactive int `json:"daysInactive"`
}

type AnnouncementRequest struct {
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}

type DirectSendRequest struct {
	UID   string            `json:"uid" binding:"required"`
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}
