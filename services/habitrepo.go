package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"dayflow/model"
)

type HabitRepository interface {
	List(ctx context.Context, uid string) ([]model.Habit, error)
	Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Habit, error)
	Delete(ctx context.Context, uid, id string) (bool, error)
	ToggleCompletion(ctx context.Context, uid, id, dateKey string) (*model.HabitToggleResult, error)
}

type HabitRepo struct {
	store *Store
}

var _ HabitRepository = (*HabitRepo)(nil)

func NewHabitRepo(store *Store) *HabitRepo {
	return &HabitRepo{store: store}
}

func docToHabit(doc *firestore.DocumentSnapshot) (*model.Habit, error) {
	var h model.Habit
	if err := doc.DataTo(&h); err != nil {
		return nil, fmt.Errorf("failed to decode habit %s: %w", doc.Ref.ID, err)
	}
	h.ID = doc.Ref.ID
	return &h, nil
}

func (r *HabitRepo) List(ctx context.Context, uid string) ([]model.Habit, error) {
	docs, err := r.store.UserCollection(uid, "habits").
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits := make([]model.Habit, 0, len(docs))
	for _, doc := range docs {
		h, err := docToHabit(doc)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, nil
}

func (r *HabitRepo) Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Habit, error) {
	if id == "" {
		id = uuid.New().String()
	}
	ref := r.store.UserCollection(uid, "habits").Doc(id)

	exists, err := preserveCreatedAt(ctx, ref, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to read habit %s: %w", id, err)
	}
	// Default the history on create only; on update an omitted key must
	// leave the stored history untouched.
	if _, ok := fields["completionHistory"]; !ok && !exists {
		fields["completionHistory"] = map[string]bool{}
	}
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to save habit %s: %w", id, err)
	}

	saved, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back habit %s: %w", id, err)
	}
	return docToHabit(saved)
}

func (r *HabitRepo) Delete(ctx context.Context, uid, id string) (bool, error) {
	ref := r.store.UserCollection(uid, "habits").Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read habit %s: %w", id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete habit %s: %w", id, err)
	}
	return true, nil
}

// ToggleCompletion flips completionHistory[dateKey] transactionally; an
// absent key counts as false before the flip.
func (r *HabitRepo) ToggleCompletion(ctx context.Context, uid, id, dateKey string) (*model.HabitToggleResult, error) {
	ref := r.store.UserCollection(uid, "habits").Doc(id)

	var result *model.HabitToggleResult
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		h, err := docToHabit(snap)
		if err != nil {
			return err
		}
		if h.CompletionHistory == nil {
			h.CompletionHistory = map[string]bool{}
		}
		newValue := !h.CompletionHistory[dateKey]
		h.CompletionHistory[dateKey] = newValue

		if err := tx.Update(ref, []firestore.Update{
			{Path: "completionHistory", Value: h.CompletionHistory},
		}); err != nil {
			return err
		}
		result = &model.HabitToggleResult{Habit: *h, ToggledDate: dateKey, Value: newValue}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle habit %s: %w", id, err)
	}
	return result, nil
}
