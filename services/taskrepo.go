package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"dayflow/model"
)

// TaskRepository is the contract the task handlers depend on.
type TaskRepository interface {
	List(ctx context.Context, uid string) ([]model.Task, error)
	Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Task, error)
	Delete(ctx context.Context, uid, id string) (bool, error)
	ToggleComplete(ctx context.Context, uid, id string) (*model.Task, error)
	ToggleSubtask(ctx context.Context, uid, taskID, subtaskID string) (*model.Task, error)
}

type TaskRepo struct {
	store *Store
}

var _ TaskRepository = (*TaskRepo)(nil)

func NewTaskRepo(store *Store) *TaskRepo {
	return &TaskRepo{store: store}
}

func docToTask(doc *firestore.DocumentSnapshot) (*model.Task, error) {
	var t model.Task
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", doc.Ref.ID, err)
	}
	t.ID = doc.Ref.ID
	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context, uid string) ([]model.Task, error) {
	docs, err := r.store.UserCollection(uid, "tasks").
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		t, err := docToTask(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (r *TaskRepo) Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Task, error) {
	if id == "" {
		id = uuid.New().String()
	}
	ref := r.store.UserCollection(uid, "tasks").Doc(id)

	if _, err := preserveCreatedAt(ctx, ref, fields); err != nil {
		return nil, fmt.Errorf("failed to read task %s: %w", id, err)
	}
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to save task %s: %w", id, err)
	}

	saved, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back task %s: %w", id, err)
	}
	return docToTask(saved)
}

func (r *TaskRepo) Delete(ctx context.Context, uid, id string) (bool, error) {
	ref := r.store.UserCollection(uid, "tasks").Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read task %s: %w", id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return true, nil
}

// ToggleComplete flips isCompleted inside a transaction so concurrent
// toggles on the same task are computed against the latest committed
// state rather than both observing the pre-toggle value.
func (r *TaskRepo) ToggleComplete(ctx context.Context, uid, id string) (*model.Task, error) {
	ref := r.store.UserCollection(uid, "tasks").Doc(id)

	var toggled *model.Task
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		toggled = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		t, err := docToTask(snap)
		if err != nil {
			return err
		}
		t.IsCompleted = !t.IsCompleted
		if err := tx.Update(ref, []firestore.Update{
			{Path: "isCompleted", Value: t.IsCompleted},
		}); err != nil {
			return err
		}
		toggled = t
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle task %s: %w", id, err)
	}
	return toggled, nil
}

// toggleSubtaskIn flips the matching subtask in place and reports whether
// the id was present. The whole slice is rewritten on commit since the
// array has no independent document identity.
func toggleSubtaskIn(subtasks []model.Subtask, subtaskID string) ([]model.Subtask, bool) {
	for i := range subtasks {
		if subtasks[i].ID == subtaskID {
			subtasks[i].IsCompleted = !subtasks[i].IsCompleted
			return subtasks, true
		}
	}
	return subtasks, false
}

// ToggleSubtask distinguishes a missing task from a missing subtask so
// the boundary can report the correct resource.
func (r *TaskRepo) ToggleSubtask(ctx context.Context, uid, taskID, subtaskID string) (*model.Task, error) {
	ref := r.store.UserCollection(uid, "tasks").Doc(taskID)

	var toggled *model.Task
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		toggled = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrTaskNotFound
			}
			return err
		}
		t, err := docToTask(snap)
		if err != nil {
			return err
		}
		subtasks, found := toggleSubtaskIn(t.Subtasks, subtaskID)
		if !found {
			return ErrSubtaskNotFound
		}
		t.Subtasks = subtasks
		if err := tx.Update(ref, []firestore.Update{
			{Path: "subtasks", Value: subtasks},
		}); err != nil {
			return err
		}
		toggled = t
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrSubtaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle subtask %s/%s: %w", taskID, subtaskID, err)
	}
	return toggled, nil
}
