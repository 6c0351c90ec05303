package dto

import "dayflow/model"

type CreateTaskRequest struct {
	ID          string           `json:"id"`
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=none low medium high"`
	DueDate     *string          `json:"dueDate"`
	Tags        *[]string        `json:"tags"`
	IsCompleted *bool            `json:"isCompleted"`
	Subtasks    *[]model.Subtask `json:"subtasks"`
	Attachments *[]string        `json:"attachments"`
	CreatedAt   *string          `json:"createdAt"`
}

func (r *CreateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{"title": r.Title}
	put(fields, "description", r.Description)
	put(fields, "priority", r.Priority)
	put(fields, "dueDate", r.DueDate)
	put(fields, "tags", r.Tags)
	put(fields, "isCompleted", r.IsCompleted)
	put(fields, "subtasks", r.Subtasks)
	put(fields, "attachments", r.Attachments)
	put(fields, "createdAt", r.CreatedAt)
	return fields
}

type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=none low medium high"`
	DueDate     *string          `json:"dueDate"`
	Tags        *[]string        `json:"tags"`
	IsCompleted *bool            `json:"isCompleted"`
	Subtasks    *[]model.Subtask `json:"subtasks"`
	Attachments *[]string        `json:"attachments"`
	CreatedAt   *string          `json:"createdAt"`
}

func (r *UpdateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "title", r.Title)
	put(fields, "description", r.Description)
	put(fields, "priority", r.Priority)
	put(fields, "dueDate", r.DueDate)
	put(fields, "tags", r.Tags)
	put(fields, "isCompleted", r.IsCompleted)
	put(fields, "subtasks", r.Subtasks)
	put(fields, "attachments", r.Attachments)
	put(fields, "createdAt", r.CreatedAt)
	return fields
}
