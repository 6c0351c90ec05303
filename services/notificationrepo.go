package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/google/uuid"

	"dayflow/model"
)

const maxNotificationPageSize = 100

type NotificationRepository interface {
	List(ctx context.Context, uid string, limit int, cursor string) (*model.NotificationPage, error)
	Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Notification, error)
	Delete(ctx context.Context, uid, id string) (bool, error)
	MarkRead(ctx context.Context, uid, id string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, uid string) (int, error)
	GetUnreadCount(ctx context.Context, uid string) (int64, error)
}

type NotificationRepo struct {
	store *Store
}

var _ NotificationRepository = (*NotificationRepo)(nil)

func NewNotificationRepo(store *Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

func docToNotification(doc *firestore.DocumentSnapshot) (*model.Notification, error) {
	var n model.Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to decode notification %s: %w", doc.Ref.ID, err)
	}
	n.ID = doc.Ref.ID
	return &n, nil
}

// clampPageSize applies the default and the hard cap of the page size.
func clampPageSize(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > maxNotificationPageSize {
		return maxNotificationPageSize
	}
	return limit
}

// List pages newest-first by timestamp. The cursor is the timestamp of
// the last item of the previous page; a short page means end of stream
// and yields an empty NextCursor.
func (r *NotificationRepo) List(ctx context.Context, uid string, limit int, cursor string) (*model.NotificationPage, error) {
	limit = clampPageSize(limit)

	query := r.store.UserCollection(uid, "notifications").
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)
	if cursor != "" {
		query = query.StartAfter(cursor)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]model.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := docToNotification(doc)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return buildPage(notifications, limit), nil
}

// buildPage attaches the next cursor: a full page points at its last
// item's timestamp, a short page signals end of stream with no cursor.
func buildPage(notifications []model.Notification, limit int) *model.NotificationPage {
	page := &model.NotificationPage{Notifications: notifications}
	if len(notifications) == limit && limit > 0 {
		page.NextCursor = notifications[len(notifications)-1].Timestamp
	}
	return page
}

func (r *NotificationRepo) Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Notification, error) {
	if id == "" {
		id = uuid.New().String()
	}
	ref := r.store.UserCollection(uid, "notifications").Doc(id)

	if _, ok := fields["timestamp"]; !ok {
		fields["timestamp"] = nowISO()
	}
	if _, ok := fields["isRead"]; !ok {
		fields["isRead"] = false
	}
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to save notification %s: %w", id, err)
	}

	saved, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back notification %s: %w", id, err)
	}
	return docToNotification(saved)
}

func (r *NotificationRepo) Delete(ctx context.Context, uid, id string) (bool, error) {
	ref := r.store.UserCollection(uid, "notifications").Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read notification %s: %w", id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return true, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, uid, id string) (*model.Notification, error) {
	ref := r.store.UserCollection(uid, "notifications").Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read notification %s: %w", id, err)
	}
	if _, err := ref.Set(ctx, map[string]interface{}{"isRead": true}, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}

	saved, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back notification %s: %w", id, err)
	}
	return docToNotification(saved)
}

// MarkAllRead flips every currently-unread notification in one batch
// write. The batch commits or fails as a whole; a notification created
// concurrently may or may not be included, which is acceptable here.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, uid string) (int, error) {
	docs, err := r.store.UserCollection(uid, "notifications").
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to query unread notifications: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	batch := r.store.Batch()
	for _, doc := range docs {
		batch.Update(doc.Ref, []firestore.Update{{Path: "isRead", Value: true}})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to mark all read: %w", err)
	}
	return len(docs), nil
}

// GetUnreadCount uses a server-side aggregation so the documents never
// cross the wire.
func (r *NotificationRepo) GetUnreadCount(ctx context.Context, uid string) (int64, error) {
	query := r.store.UserCollection(uid, "notifications").Where("isRead", "==", false)
	result, err := query.NewAggregationQuery().WithCount("unread").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	value, ok := result["unread"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result type %T", result["unread"])
	}
	return value.GetIntegerValue(), nil
}
