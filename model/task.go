package model

type Subtask struct {
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	IsCompleted bool   `firestore:"isCompleted" json:"isCompleted"`
}

type Task struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	Priority    string    `firestore:"priority,omitempty" json:"priority,omitempty"` // "none", "low", "medium", "high"
	DueDate     string    `firestore:"dueDate,omitempty" json:"dueDate,omitempty"`
	Tags        []string  `firestore:"tags,omitempty" json:"tags,omitempty"`
	IsCompleted bool      `firestore:"isCompleted" json:"isCompleted"`
	Subtasks    []Subtask `firestore:"subtasks,omitempty" json:"subtasks,omitempty"`
	Attachments []string  `firestore:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   string    `firestore:"createdAt" json:"createdAt"` // set once on first write, preserved by later upserts
}
