package dto

type CreateNoteRequest struct {
	ID         string    `json:"id"`
	Title      string    `json:"title" binding:"required"`
	Content    *string   `json:"content"`
	Type       *string   `json:"type" binding:"omitempty,oneof=text checklist richText"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	ColorValue *int64    `json:"colorValue"`
	IsPinned   *bool     `json:"isPinned"`
	CreatedAt  *string   `json:"createdAt"`
}

func (r *CreateNoteRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{"title": r.Title}
	put(fields, "content", r.Content)
	put(fields, "type", r.Type)
	put(fields, "tags", r.Tags)
	put(fields, "category", r.Category)
	put(fields, "colorValue", r.ColorValue)
	put(fields, "isPinned", r.IsPinned)
	put(fields, "createdAt", r.CreatedAt)
	if r.IsPinned == nil {
		fields["isPinned"] = false
	}
	return fields
}

type UpdateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Type       *string   `json:"type" binding:"omitempty,oneof=text checklist richText"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	ColorValue *int64    `json:"colorValue"`
	IsPinned   *bool     `json:"isPinned"`
	CreatedAt  *string   `json:"createdAt"`
}

func (r *UpdateNoteRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "title", r.Title)
	put(fields, "content", r.Content)
	put(fields, "type", r.Type)
	put(fields, "tags", r.Tags)
	put(fields, "category", r.Category)
	put(fields, "colorValue", r.ColorValue)
	put(fields, "isPinned", r.IsPinned)
	put(fields, "createdAt", r.CreatedAt)
	return fields
}

// LockNoteRequest needs at least one credential; the handler enforces
// the "one of" rule since binding tags cannot express it across fields.
type LockNoteRequest struct {
	LockPin      string `json:"lockPin"`
	UseBiometric bool   `json:"useBiometric"`
}
