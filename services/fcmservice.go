package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/iterator"

	"dayflow/model"
)

var ErrTokenRequired = errors.New("uid and token are required")

// PushMessage is the content of one push, independent of how it is
// addressed (tokens or topic).
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendResult is the business outcome of a send. "No tokens" and delivery
// failures are degraded outcomes reported here, never surfaced as errors.
type SendResult struct {
	Success      bool   `json:"success"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"`
	MessageID    string `json:"messageId,omitempty"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
}

// PrefsUpdate carries a partial preference change; nil fields keep their
// prior value.
type PrefsUpdate struct {
	HolidayGreetings *bool
	ReEngagement     *bool
	AppUpdates       *bool
}

// Messenger is the slice of the FCM client the service uses.
// *messaging.Client satisfies it.
type Messenger interface {
	SendMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushService interface {
	SaveToken(ctx context.Context, uid, token string) error
	GetUserTokens(ctx context.Context, uid string) ([]string, error)
	SendToUser(ctx context.Context, uid string, msg PushMessage) (*SendResult, error)
	SendToTopic(ctx context.Context, topic string, msg PushMessage) (*SendResult, error)
	UpdateLastActive(ctx context.Context, uid string) error
	GetPreferences(ctx context.Context, uid string) (model.NotificationPrefs, error)
	UpdatePreferences(ctx context.Context, uid string, update PrefsUpdate) (model.NotificationPrefs, error)
	GetInactiveUsers(ctx context.Context, daysInactive int) ([]model.UserProfile, error)
	GetHolidayGreetingUsers(ctx context.Context) ([]model.UserProfile, error)
}

type FCMService struct {
	store     *Store
	messenger Messenger
}

var _ PushService = (*FCMService)(nil)

func NewFCMService(store *Store, messenger Messenger) *FCMService {
	return &FCMService{store: store, messenger: messenger}
}

// hashToken derives a short stable document id from the raw token, so
// re-registering the same device overwrites its record.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:20]
}

func (s *FCMService) tokenRef(uid, token string) *firestore.DocumentRef {
	return s.store.UserCollection(uid, "fcmTokens").Doc(hashToken(token))
}

func (s *FCMService) SaveToken(ctx context.Context, uid, token string) error {
	if uid == "" || token == "" {
		return ErrTokenRequired
	}

	_, err := s.tokenRef(uid, token).Set(ctx, map[string]interface{}{
		"token":     token,
		"tokenId":   hashToken(token),
		"active":    true,
		"createdAt": firestore.ServerTimestamp,
		"lastUsed":  firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return s.UpdateLastActive(ctx, uid)
}

func (s *FCMService) UpdateLastActive(ctx context.Context, uid string) error {
	_, err := s.store.UserDoc(uid).Set(ctx, map[string]interface{}{
		"lastActive": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}
	return nil
}

func (s *FCMService) GetUserTokens(ctx context.Context, uid string) ([]string, error) {
	docs, err := s.store.UserCollection(uid, "fcmTokens").
		Where("active", "==", true).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}

	tokens := make([]string, 0, len(docs))
	for _, doc := range docs {
		var t model.PushToken
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode token %s: %w", doc.Ref.ID, err)
		}
		tokens = append(tokens, t.Token)
	}
	return tokens, nil
}

// SendToUser fans one message out to every active device of a user.
// Tokens the provider rejects are deactivated so dead registrations do
// not receive repeated sends.
func (s *FCMService) SendToUser(ctx context.Context, uid string, msg PushMessage) (*SendResult, error) {
	tokens, err := s.GetUserTokens(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		log.Printf("no FCM tokens found for user %s", uid)
		return &SendResult{Success: false, Reason: "No tokens"}, nil
	}

	resp, err := s.messenger.SendMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Tokens:       tokens,
	})
	if err != nil {
		log.Printf("error sending FCM notification to %s: %v", uid, err)
		return &SendResult{Success: false, Error: err.Error()}, nil
	}

	if resp.FailureCount > 0 {
		for idx, r := range resp.Responses {
			if r.Success {
				continue
			}
			if err := s.deactivateToken(ctx, uid, tokens[idx]); err != nil {
				log.Printf("failed to deactivate token for %s: %v", uid, err)
			}
		}
	}

	return &SendResult{
		Success:      true,
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}, nil
}

func (s *FCMService) deactivateToken(ctx context.Context, uid, token string) error {
	_, err := s.tokenRef(uid, token).Set(ctx, map[string]interface{}{
		"active": false,
	}, firestore.MergeAll)
	return err
}

func (s *FCMService) SendToTopic(ctx context.Context, topic string, msg PushMessage) (*SendResult, error) {
	id, err := s.messenger.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Topic:        topic,
	})
	if err != nil {
		log.Printf("error sending FCM to topic %s: %v", topic, err)
		return &SendResult{Success: false, Error: err.Error()}, nil
	}
	return &SendResult{Success: true, MessageID: id}, nil
}

// prefsFromDoc reads preferences out of a raw user document, falling
// back to the all-true defaults for any key the document lacks.
func prefsFromDoc(data map[string]interface{}) model.NotificationPrefs {
	prefs := model.DefaultPrefs()
	raw, ok := data["notificationPrefs"].(map[string]interface{})
	if !ok {
		return prefs
	}
	if v, ok := raw["holidayGreetings"].(bool); ok {
		prefs.HolidayGreetings = v
	}
	if v, ok := raw["reEngagement"].(bool); ok {
		prefs.ReEngagement = v
	}
	if v, ok := raw["appUpdates"].(bool); ok {
		prefs.AppUpdates = v
	}
	return prefs
}

func (s *FCMService) GetPreferences(ctx context.Context, uid string) (model.NotificationPrefs, error) {
	snap, err := s.store.UserDoc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return model.DefaultPrefs(), nil
		}
		return model.NotificationPrefs{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	return prefsFromDoc(snap.Data()), nil
}

// UpdatePreferences merges only the explicitly-provided keys; the write
// names exact field paths so untouched preferences survive.
func (s *FCMService) UpdatePreferences(ctx context.Context, uid string, update PrefsUpdate) (model.NotificationPrefs, error) {
	prefs := map[string]interface{}{}
	var paths []firestore.FieldPath
	if update.HolidayGreetings != nil {
		prefs["holidayGreetings"] = *update.HolidayGreetings
		paths = append(paths, firestore.FieldPath{"notificationPrefs", "holidayGreetings"})
	}
	if update.ReEngagement != nil {
		prefs["reEngagement"] = *update.ReEngagement
		paths = append(paths, firestore.FieldPath{"notificationPrefs", "reEngagement"})
	}
	if update.AppUpdates != nil {
		prefs["appUpdates"] = *update.AppUpdates
		paths = append(paths, firestore.FieldPath{"notificationPrefs", "appUpdates"})
	}

	if len(paths) > 0 {
		data := map[string]interface{}{"notificationPrefs": prefs}
		if _, err := s.store.UserDoc(uid).Set(ctx, data, firestore.Merge(paths...)); err != nil {
			return model.NotificationPrefs{}, fmt.Errorf("failed to update preferences: %w", err)
		}
	}
	return s.GetPreferences(ctx, uid)
}

// GetInactiveUsers returns users whose lastActive predates the cutoff
// AND who still have re-engagement enabled. Both conditions are
// required.
func (s *FCMService) GetInactiveUsers(ctx context.Context, daysInactive int) ([]model.UserProfile, error) {
	cutoff := time.Now().AddDate(0, 0, -daysInactive)

	iter := s.store.Users().
		Where("lastActive", "<", cutoff).
		Where("notificationPrefs.reEngagement", "==", true).
		Documents(ctx)
	return collectProfiles(iter)
}

func (s *FCMService) GetHolidayGreetingUsers(ctx context.Context) ([]model.UserProfile, error) {
	iter := s.store.Users().
		Where("notificationPrefs.holidayGreetings", "==", true).
		Documents(ctx)
	return collectProfiles(iter)
}

func collectProfiles(iter *firestore.DocumentIterator) ([]model.UserProfile, error) {
	var users []model.UserProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		var p model.UserProfile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", doc.Ref.ID, err)
		}
		p.UID = doc.Ref.ID
		users = append(users, p)
	}
	return users, nil
}
