package model

type Note struct {
	ID           string   `firestore:"-" json:"id"`
	Title        string   `firestore:"title" json:"title"`
	Content      string   `firestore:"content,omitempty" json:"content,omitempty"`
	Type         string   `firestore:"type,omitempty" json:"type,omitempty"` // "text", "checklist", "richText"
	Tags         []string `firestore:"tags,omitempty" json:"tags,omitempty"`
	Category     string   `firestore:"category,omitempty" json:"category,omitempty"`
	ColorValue   int64    `firestore:"colorValue,omitempty" json:"colorValue,omitempty"`
	IsPinned     bool     `firestore:"isPinned" json:"isPinned"`
	IsLocked     bool     `firestore:"isLocked" json:"isLocked"`
	LockPin      string   `firestore:"lockPin,omitempty" json:"-"` // bcrypt hash, never serialized back to clients
	UseBiometric bool     `firestore:"useBiometric" json:"useBiometric"`
	CreatedAt    string   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    string   `firestore:"updatedAt" json:"updatedAt"` // refreshed on every mutating write
}
