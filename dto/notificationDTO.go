package dto

type CreateNotificationRequest struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title" binding:"required"`
	Body      string                  `json:"body" binding:"required"`
	Timestamp *string                 `json:"timestamp"`
	IsRead    *bool                   `json:"isRead"`
	Payload   *map[string]interface{} `json:"payload"`
}

func (r *CreateNotificationRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"title": r.Title,
		"body":  r.Body,
	}
	put(fields, "timestamp", r.Timestamp)
	put(fields, "isRead", r.IsRead)
	put(fields, "payload", r.Payload)
	return fields
}
