package dto

type SaveTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdatePreferencesRequest is a partial update: nil fields keep the
// user's prior value.
type UpdatePreferencesRequest struct {
	HolidayGreetings *bool `json:"holidayGreetings"`
	ReEngagement     *bool `json:"reEngagement"`
	AppUpdates       *bool `json:"appUpdates"`
}
