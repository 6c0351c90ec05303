package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatedAt(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]interface{}
		fields   map[string]interface{}
		want     string
	}{
		{
			name:     "caller-supplied value wins over stored",
			existing: map[string]interface{}{"createdAt": "2024-01-01T00:00:00Z"},
			fields:   map[string]interface{}{"createdAt": "2023-06-15T12:00:00Z"},
			want:     "2023-06-15T12:00:00Z",
		},
		{
			name:     "stored value survives an upsert that omits the key",
			existing: map[string]interface{}{"createdAt": "2024-01-01T00:00:00Z", "title": "old"},
			fields:   map[string]interface{}{"title": "renamed"},
			want:     "2024-01-01T00:00:00Z",
		},
		{
			name:     "existing document without the field gets a fresh stamp",
			existing: map[string]interface{}{"title": "legacy"},
			fields:   map[string]interface{}{"title": "renamed"},
		},
		{
			name:   "absent document gets a fresh stamp",
			fields: map[string]interface{}{"title": "new"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolveCreatedAt(tt.existing, tt.fields)

			got, ok := tt.fields["createdAt"].(string)
			require.True(t, ok, "createdAt must always be present after resolution")
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
				return
			}
			stamp, err := time.Parse(time.RFC3339, got)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), stamp, time.Minute)
		})
	}
}
