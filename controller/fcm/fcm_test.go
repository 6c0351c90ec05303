package fcm

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

type fakePush struct {
	services.PushService

	savedToken string
	activity   int
	prefs      model.NotificationPrefs
	lastUpdate services.PrefsUpdate
}

func (f *fakePush) SaveToken(ctx context.Context, uid, token string) error {
	if token == "" {
		return services.ErrTokenRequired
	}
	f.savedToken = token
	return nil
}

func (f *fakePush) UpdateLastActive(ctx context.Context, uid string) error {
	f.activity++
	return nil
}

func (f *fakePush) GetPreferences(ctx context.Context, uid string) (model.NotificationPrefs, error) {
	return f.prefs, nil
}

func (f *fakePush) UpdatePreferences(ctx context.Context, uid string, update services.PrefsUpdate) (model.NotificationPrefs, error) {
	f.lastUpdate = update
	prefs := f.prefs
	if update.HolidayGreetings != nil {
		prefs.HolidayGreetings = *update.HolidayGreetings
	}
	if update.ReEngagement != nil {
		prefs.ReEngagement = *update.ReEngagement
	}
	if update.AppUpdates != nil {
		prefs.AppUpdates = *update.AppUpdates
	}
	return prefs, nil
}

func fcmRouter(push services.PushService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	FCMController(router, func(c *gin.Context) { c.Set("uid", "user-1") }, push)
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

func TestSaveToken(t *testing.T) {
	push := &fakePush{}
	router := fcmRouter(push)

	w := doJSON(router, http.MethodPost, "/api/fcm/token", `{"token":"device-abc"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "device-abc", push.savedToken)
	assert.Contains(t, w.Body.String(), "Token saved successfully")
}

func TestSaveTokenRequiresToken(t *testing.T) {
	router := fcmRouter(&fakePush{})

	w := doJSON(router, http.MethodPost, "/api/fcm/token", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"token"`)
}

func TestUpdateActivity(t *testing.T) {
	push := &fakePush{}
	router := fcmRouter(push)

	w := doJSON(router, http.MethodPost, "/api/fcm/activity", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, push.activity)
}

func TestGetPreferencesDefaults(t *testing.T) {
	router := fcmRouter(&fakePush{prefs: model.DefaultPrefs()})

	w := doJSON(router, http.MethodGet, "/api/fcm/preferences", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"holidayGreetings":true`)
	assert.Contains(t, w.Body.String(), `"reEngagement":true`)
	assert.Contains(t, w.Body.String(), `"appUpdates":true`)
}

func TestUpdatePreferencesPartial(t *testing.T) {
	push := &fakePush{prefs: model.DefaultPrefs()}
	router := fcmRouter(push)

	w := doJSON(router, http.MethodPut, "/api/fcm/preferences", `{"reEngagement":false}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, push.lastUpdate.ReEngagement)
	assert.False(t, *push.lastUpdate.ReEngagement)
	assert.Nil(t, push.lastUpdate.HolidayGreetings, "untouched keys stay nil")
	assert.Nil(t, push.lastUpdate.AppUpdates)

	assert.Contains(t, w.Body.String(), `"reEngagement":false`)
	assert.Contains(t, w.Body.String(), `"holidayGreetings":true`)
}
