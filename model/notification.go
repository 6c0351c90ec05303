package model

type Notification struct {
	ID        string                 `firestore:"-" json:"id"`
	Title     string                 `firestore:"title" json:"title"`
	Body      string                 `firestore:"body" json:"body"`
	Timestamp string                 `firestore:"timestamp" json:"timestamp"` // RFC3339; also the pagination cursor
	IsRead    bool                   `firestore:"isRead" json:"isRead"`
	Payload   map[string]interface{} `firestore:"payload,omitempty" json:"payload,omitempty"`
}

// NotificationPage is one cursor page of a user's notifications, newest
// first. NextCursor is the timestamp of the last item, or empty when the
// page came up short of the requested limit (end of stream).
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	NextCursor    string         `json:"nextCursor,omitempty"`
}
