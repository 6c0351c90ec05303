package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/model"
	"dayflow/services"
)

type fakeCampaigns struct {
	holidayResult *services.HolidayResult
	reengDays     int
	lastTitle     string
	lastData      map[string]string
}

func (f *fakeCampaigns) SendHolidayGreetings(ctx context.Context) (*services.HolidayResult, error) {
	return f.holidayResult, nil
}

func (f *fakeCampaigns) SendReengagementNotifications(ctx context.Context, daysInactive int) (*services.ReengagementResult, error) {
	f.reengDays = daysInactive
	return &services.ReengagementResult{Sent: 1, Total: 2}, nil
}

func (f *fakeCampaigns) SendAnnouncement(ctx context.Context, title, body string, data map[string]string) (*services.SendResult, error) {
	f.lastTitle = title
	f.lastData = data
	return &services.SendResult{Success: true, MessageID: "m1"}, nil
}

type fakePush struct {
	services.PushService

	sendResult *services.SendResult
	sentTo     string
	inactive   []model.UserProfile
	gotDays    int
}

func (f *fakePush) SendToUser(ctx context.Context, uid string, msg services.PushMessage) (*services.SendResult, error) {
	f.sentTo = uid
	return f.sendResult, nil
}

func (f *fakePush) GetInactiveUsers(ctx context.Context, daysInactive int) ([]model.UserProfile, error) {
	f.gotDays = daysInactive
	return f.inactive, nil
}

func adminRouter(campaigns services.CampaignRunner, push services.PushService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	AdminController(router, func(c *gin.Context) { c.Next() }, campaigns, push)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHolidayGreetingPassthrough(t *testing.T) {
	campaigns := &fakeCampaigns{holidayResult: &services.HolidayResult{Sent: false, Reason: "No holiday today"}}
	router := adminRouter(campaigns, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/holiday-greeting", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No holiday today")
}

func TestReengagementForwardsDays(t *testing.T) {
	campaigns := &fakeCampaigns{}
	router := adminRouter(campaigns, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/reengagement", `{"daysInactive":7}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, campaigns.reengDays)
	assert.Contains(t, w.Body.String(), `"sent":1`)
}

func TestReengagementAcceptsEmptyBody(t *testing.T) {
	campaigns := &fakeCampaigns{}
	router := adminRouter(campaigns, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/reengagement", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, campaigns.reengDays, "service applies the default window")
}

func TestAnnouncementValidation(t *testing.T) {
	router := adminRouter(&fakeCampaigns{}, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/announcement", `{"title":"no body"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"body"`)
}

func TestAnnouncement(t *testing.T) {
	campaigns := &fakeCampaigns{}
	router := adminRouter(campaigns, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/announcement",
		`{"title":"Release","body":"v2 is out","data":{"version":"2.0"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Release", campaigns.lastTitle)
	assert.Equal(t, "2.0", campaigns.lastData["version"])
}

func TestDirectSendNoTokensStillOK(t *testing.T) {
	push := &fakePush{sendResult: &services.SendResult{Success: false, Reason: "No tokens"}}
	router := adminRouter(&fakeCampaigns{}, push)

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/send",
		`{"uid":"u1","title":"Hi","body":"There"}`)

	assert.Equal(t, http.StatusOK, w.Code, "missing tokens is a business outcome, not a server error")
	assert.Equal(t, "u1", push.sentTo)
	assert.Contains(t, w.Body.String(), "No tokens")
}

func TestDirectSendRequiresUID(t *testing.T) {
	router := adminRouter(&fakeCampaigns{}, &fakePush{})

	w := doJSON(router, http.MethodPost, "/api/admin/notifications/send", `{"title":"Hi","body":"There"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"uid"`)
}

func TestInactiveUsersDefaultsTo30Days(t *testing.T) {
	push := &fakePush{inactive: []model.UserProfile{{UID: "u1"}, {UID: "u2"}}}
	router := adminRouter(&fakeCampaigns{}, push)

	w := doJSON(router, http.MethodGet, "/api/admin/users/inactive", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, push.gotDays)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestInactiveUsersCustomWindow(t *testing.T) {
	push := &fakePush{}
	router := adminRouter(&fakeCampaigns{}, push)

	w := doJSON(router, http.MethodGet, "/api/admin/users/inactive?days=7", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, push.gotDays)
}
