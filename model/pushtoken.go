package model

import "time"

// PushToken is one registered device. TokenID is a short hash of the raw
// token so re-registering the same device overwrites instead of
// duplicating. Dead registrations are kept with Active=false.
type PushToken struct {
	TokenID   string    `firestore:"tokenId" json:"tokenId"`
	Token     string    `firestore:"token" json:"token"`
	Active    bool      `firestore:"active" json:"active"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	LastUsed  time.Time `firestore:"lastUsed" json:"lastUsed"`
}
