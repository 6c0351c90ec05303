package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dayflow/model"
)

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 20},
		{-5, 20},
		{7, 7},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampPageSize(tt.in), fmt.Sprintf("limit=%d", tt.in))
	}
}

func notificationsAt(timestamps ...string) []model.Notification {
	out := make([]model.Notification, 0, len(timestamps))
	for i, ts := range timestamps {
		out = append(out, model.Notification{ID: fmt.Sprintf("n%d", i), Timestamp: ts})
	}
	return out
}

func TestBuildPageFullPageCarriesCursor(t *testing.T) {
	page := buildPage(notificationsAt("2026-02-10T10:00:00Z", "2026-02-09T10:00:00Z"), 2)

	assert.Len(t, page.Notifications, 2)
	assert.Equal(t, "2026-02-09T10:00:00Z", page.NextCursor,
		"cursor is the timestamp of the last returned item")
}

func TestBuildPageShortPageEndsStream(t *testing.T) {
	page := buildPage(notificationsAt("2026-02-08T10:00:00Z"), 2)

	assert.Len(t, page.Notifications, 1)
	assert.Empty(t, page.NextCursor)
}

func TestBuildPageEmpty(t *testing.T) {
	page := buildPage(nil, 20)
	assert.Empty(t, page.Notifications)
	assert.Empty(t, page.NextCursor)
}
