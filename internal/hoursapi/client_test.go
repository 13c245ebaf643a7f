package hoursapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hoursJSON = `{
	"regularHours": {
		"tuesday": {"opens": "16:00", "closes": "22:00", "kitchen": {"opens": "18:00", "closes": "21:00"}}
	},
	"specialHours": [
		{"date": "2025-12-25", "status": "closed", "note": "Christmas Day"}
	]
}`

func TestGetBusinessHours_Enveloped(t *testing.T) {
	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": ` + hoursJSON + `}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", 5*time.Second)
	hours, err := client.GetBusinessHours(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "/business/hours", gotPath)

	tuesday, ok := hours.RegularHours["tuesday"]
	require.True(t, ok)
	assert.Equal(t, "16:00", tuesday.Opens)
	require.NotNil(t, tuesday.Kitchen)
	assert.Equal(t, "18:00", tuesday.Kitchen.Opens)

	require.Len(t, hours.SpecialHours, 1)
	assert.Equal(t, "2025-12-25", hours.SpecialHours[0].Date)
	assert.Equal(t, "closed", hours.SpecialHours[0].Status)
}

func TestGetBusinessHours_BareBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hoursJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	hours, err := client.GetBusinessHours(context.Background())
	require.NoError(t, err)
	assert.Contains(t, hours.RegularHours, "tuesday")
}

func TestGetBusinessHours_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)
	_, err := client.GetBusinessHours(context.Background())
	assert.Error(t, err)
}

func TestGetBusinessHours_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"regularHours": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)
	_, err := client.GetBusinessHours(context.Background())
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)
	assert.NoError(t, client.HealthCheck(context.Background()))

	down := NewClient("http://127.0.0.1:1", "key", time.Second)
	assert.Error(t, down.HealthCheck(context.Background()))
}
