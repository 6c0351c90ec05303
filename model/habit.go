package model

type Habit struct {
	ID                string          `firestore:"-" json:"id"`
	Name              string          `firestore:"name" json:"name"`
	Description       string          `firestore:"description,omitempty" json:"description,omitempty"`
	Icon              string          `firestore:"icon,omitempty" json:"icon,omitempty"`
	Frequency         string          `firestore:"frequency,omitempty" json:"frequency,omitempty"` // "daily", "weekly", "custom"
	GoalCount         int             `firestore:"goalCount,omitempty" json:"goalCount,omitempty"`
	LinkedTaskTags    []string        `firestore:"linkedTaskTags,omitempty" json:"linkedTaskTags,omitempty"`
	ColorValue        int64           `firestore:"colorValue,omitempty" json:"colorValue,omitempty"`
	CompletionHistory map[string]bool `firestore:"completionHistory" json:"completionHistory"` // keyed by "YYYY-MM-DD"
	CreatedAt         string          `firestore:"createdAt" json:"createdAt"`
}

// HabitToggleResult reports which date was flipped and the value it
// landed on, alongside the post-toggle habit.
type HabitToggleResult struct {
	Habit
	ToggledDate string `json:"toggledDate"`
	Value       bool   `json:"value"`
}
