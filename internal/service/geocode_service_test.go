package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Dadar, Mumbai, India", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		fmt.Fprint(w, `[{"lat":"19.0178","lon":"72.8478","display_name":"Dadar, Mumbai, Maharashtra, India"}]`)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, time.Second)
	result, found, err := client.Geocode(context.Background(), "Dadar, Mumbai, India")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 19.0178, result.Lat)
	assert.Equal(t, 72.8478, result.Lng)
	assert.Equal(t, "Dadar, Mumbai, Maharashtra, India", result.DisplayName)
}

func TestNominatimClient_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, time.Second)
	_, found, err := client.Geocode(context.Background(), "gibberish")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestNominatimClient_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, time.Second)
	_, _, err := client.Geocode(context.Background(), "Dadar")

	assert.Error(t, err)
}

func TestNominatimClient_MalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"lat":"not-a-number","lon":"72.8478","display_name":"x"}]`)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, time.Second)
	_, _, err := client.Geocode(context.Background(), "Dadar")

	assert.Error(t, err)
}
