package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dayflow/model"
)

// NoteFilter narrows List to a single tag and/or category. Zero values
// mean no filtering.
type NoteFilter struct {
	Tag      string
	Category string
}

type NoteRepository interface {
	List(ctx context.Context, uid string, filter NoteFilter) ([]model.Note, error)
	Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Note, error)
	Delete(ctx context.Context, uid, id string) (bool, error)
	TogglePin(ctx context.Context, uid, id string) (*model.Note, error)
	Lock(ctx context.Context, uid, id, lockPin string, useBiometric bool) (*model.Note, error)
	Unlock(ctx context.Context, uid, id string) (*model.Note, error)
}

type NoteRepo struct {
	store *Store
}

var _ NoteRepository = (*NoteRepo)(nil)

func NewNoteRepo(store *Store) *NoteRepo {
	return &NoteRepo{store: store}
}

func docToNote(doc *firestore.DocumentSnapshot) (*model.Note, error) {
	var n model.Note
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to decode note %s: %w", doc.Ref.ID, err)
	}
	n.ID = doc.Ref.ID
	return &n, nil
}

func (r *NoteRepo) List(ctx context.Context, uid string, filter NoteFilter) ([]model.Note, error) {
	query := r.store.UserCollection(uid, "notes").Query
	if filter.Tag != "" {
		query = query.Where("tags", "array-contains", filter.Tag)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}

	docs, err := query.
		OrderBy("isPinned", firestore.Desc).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]model.Note, 0, len(docs))
	for _, doc := range docs {
		n, err := docToNote(doc)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, nil
}

func (r *NoteRepo) Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Note, error) {
	if id == "" {
		id = uuid.New().String()
	}
	ref := r.store.UserCollection(uid, "notes").Doc(id)

	if _, err := preserveCreatedAt(ctx, ref, fields); err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	fields["updatedAt"] = nowISO()
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to save note %s: %w", id, err)
	}

	saved, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back note %s: %w", id, err)
	}
	return docToNote(saved)
}

func (r *NoteRepo) Delete(ctx context.Context, uid, id string) (bool, error) {
	ref := r.store.UserCollection(uid, "notes").Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return true, nil
}

func (r *NoteRepo) TogglePin(ctx context.Context, uid, id string) (*model.Note, error) {
	ref := r.store.UserCollection(uid, "notes").Doc(id)

	var toggled *model.Note
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		toggled = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		n, err := docToNote(snap)
		if err != nil {
			return err
		}
		n.IsPinned = !n.IsPinned
		n.UpdatedAt = nowISO()
		if err := tx.Update(ref, []firestore.Update{
			{Path: "isPinned", Value: n.IsPinned},
			{Path: "updatedAt", Value: n.UpdatedAt},
		}); err != nil {
			return err
		}
		toggled = n
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle pin %s: %w", id, err)
	}
	return toggled, nil
}

func hashPin(lockPin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(lockPin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash lock pin: %w", err)
	}
	return string(hash), nil
}

// applyLock and applyUnlock hold the lock-state mutation in one place;
// the transactions below persist exactly these fields.
func applyLock(n *model.Note, hashedPin string, useBiometric bool, at string) {
	n.IsLocked = true
	n.LockPin = hashedPin
	n.UseBiometric = useBiometric
	n.UpdatedAt = at
}

func applyUnlock(n *model.Note, at string) {
	n.IsLocked = false
	n.LockPin = ""
	n.UseBiometric = false
	n.UpdatedAt = at
}

// lockStateUpdates writes the cleared pin as null so the stored hash is
// removed rather than left as an empty string.
func lockStateUpdates(n *model.Note) []firestore.Update {
	var pin interface{}
	if n.LockPin != "" {
		pin = n.LockPin
	}
	return []firestore.Update{
		{Path: "isLocked", Value: n.IsLocked},
		{Path: "lockPin", Value: pin},
		{Path: "useBiometric", Value: n.UseBiometric},
		{Path: "updatedAt", Value: n.UpdatedAt},
	}
}

// Lock stores the pin bcrypt-hashed; the plaintext never reaches the
// store. The read and write share one transaction so a note deleted
// concurrently stays deleted instead of being partially recreated by
// the lock write. The caller guarantees at least one of
// lockPin/useBiometric.
func (r *NoteRepo) Lock(ctx context.Context, uid, id, lockPin string, useBiometric bool) (*model.Note, error) {
	var hashedPin string
	if lockPin != "" {
		var err error
		if hashedPin, err = hashPin(lockPin); err != nil {
			return nil, err
		}
	}

	ref := r.store.UserCollection(uid, "notes").Doc(id)
	var locked *model.Note
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		locked = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		n, err := docToNote(snap)
		if err != nil {
			return err
		}
		applyLock(n, hashedPin, useBiometric, nowISO())
		if err := tx.Update(ref, lockStateUpdates(n)); err != nil {
			return err
		}
		locked = n
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock note %s: %w", id, err)
	}
	return locked, nil
}

// Unlock clears the lock state transactionally. Unlocking an
// already-unlocked note is a no-op that returns the same state.
func (r *NoteRepo) Unlock(ctx context.Context, uid, id string) (*model.Note, error) {
	ref := r.store.UserCollection(uid, "notes").Doc(id)

	var unlocked *model.Note
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		unlocked = nil
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		n, err := docToNote(snap)
		if err != nil {
			return err
		}
		applyUnlock(n, nowISO())
		if err := tx.Update(ref, lockStateUpdates(n)); err != nil {
			return err
		}
		unlocked = n
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("unlock note %s: %w", id, err)
	}
	return unlocked, nil
}
