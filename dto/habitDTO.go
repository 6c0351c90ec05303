package dto

type CreateHabitRequest struct {
	ID                string           `json:"id"`
	Name              string           `json:"name" binding:"required"`
	Description       *string          `json:"description"`
	Icon              *string          `json:"icon"`
	Frequency         *string          `json:"frequency" binding:"omitempty,oneof=daily weekly custom"`
	GoalCount         *int             `json:"goalCount"`
	LinkedTaskTags    *[]string        `json:"linkedTaskTags"`
	ColorValue        *int64           `json:"colorValue"`
	CompletionHistory *map[string]bool `json:"completionHistory"`
	CreatedAt         *string          `json:"createdAt"`
}

func (r *CreateHabitRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{"name": r.Name}
	put(fields, "description", r.Description)
	put(fields, "icon", r.Icon)
	put(fields, "frequency", r.Frequency)
	put(fields, "goalCount", r.GoalCount)
	put(fields, "linkedTaskTags", r.LinkedTaskTags)
	put(fields, "colorValue", r.ColorValue)
	put(fields, "completionHistory", r.CompletionHistory)
	put(fields, "createdAt", r.CreatedAt)
	return fields
}

type UpdateHabitRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Icon              *string          `json:"icon"`
	Frequency         *string          `json:"frequency" binding:"omitempty,oneof=daily weekly custom"`
	GoalCount         *int             `json:"goalCount"`
	LinkedTaskTags    *[]string        `json:"linkedTaskTags"`
	ColorValue        *int64           `json:"colorValue"`
	CompletionHistory *map[string]bool `json:"completionHistory"`
	CreatedAt         *string          `json:"createdAt"`
}

func (r *UpdateHabitRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "name", r.Name)
	put(fields, "description", r.Description)
	put(fields, "icon", r.Icon)
	put(fields, "frequency", r.Frequency)
	put(fields, "goalCount", r.GoalCount)
	put(fields, "linkedTaskTags", r.LinkedTaskTags)
	put(fields, "colorValue", r.ColorValue)
	put(fields, "completionHistory", r.CompletionHistory)
	put(fields, "createdAt", r.CreatedAt)
	return fields
}

type ToggleHabitRequest struct {
	DateKey string `json:"dateKey" binding:"required,datetime=2006-01-02"`
}
