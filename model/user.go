package model

import "time"

type NotificationPrefs struct {
	HolidayGreetings bool `firestore:"holidayGreetings" json:"holidayGreetings"`
	ReEngagement     bool `firestore:"reEngagement" json:"reEngagement"`
	AppUpdates       bool `firestore:"appUpdates" json:"appUpdates"`
}

// DefaultPrefs applies when a user has no preference document yet.
func DefaultPrefs() NotificationPrefs {
	return NotificationPrefs{
		HolidayGreetings: true,
		ReEngagement:     true,
		AppUpdates:       true,
	}
}

type UserProfile struct {
	UID        string            `firestore:"-" json:"uid"`
	LastActive time.Time         `firestore:"lastActive" json:"lastActive"`
	Prefs      NotificationPrefs `firestore:"notificationPrefs" json:"notificationPrefs"`
}
