package services

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinels for absent targets. Store/transport failures are wrapped and
// propagated as-is, never mapped onto these.
var (
	ErrNotFound        = errors.New("not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
)

// Store scopes Firestore access to a user's namespace
// (users/{uid}/{collection}/{id}). All repositories share one Store.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) UserDoc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid)
}

func (s *Store) UserCollection(uid, collection string) *firestore.CollectionRef {
	return s.UserDoc(uid).Collection(collection)
}

func (s *Store) Users() *firestore.CollectionRef {
	return s.client.Collection("users")
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx *firestore.Transaction) error) error {
	return s.client.RunTransaction(ctx, fn)
}

func (s *Store) Batch() *firestore.WriteBatch {
	return s.client.Batch()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// resolveCreatedAt fills fields["createdAt"] for a merge write:
// a caller-supplied value wins, then the stored document's value, then
// the current time. existing is the stored document data, nil for a
// document that does not exist yet.
func resolveCreatedAt(existing, fields map[string]interface{}) {
	if _, ok := fields["createdAt"]; ok {
		return
	}
	if v, ok := existing["createdAt"]; ok {
		fields["createdAt"] = v
		return
	}
	fields["createdAt"] = nowISO()
}

// preserveCreatedAt reads the target document and applies the createdAt
// rule. It reports whether the document already exists so callers can
// apply create-only defaults.
func preserveCreatedAt(ctx context.Context, ref *firestore.DocumentRef, fields map[string]interface{}) (exists bool, err error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			resolveCreatedAt(nil, fields)
			return false, nil
		}
		return false, err
	}
	resolveCreatedAt(snap.Data(), fields)
	return true, nil
}
