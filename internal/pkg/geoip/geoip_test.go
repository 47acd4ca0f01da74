package geoip

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(handler http.HandlerFunc) (*Resolver, *httptest.Server) {
	srv := httptest.NewServer(handler)
	r := &Resolver{BaseURL: srv.URL, Client: srv.Client()}
	return r, srv
}

func TestResolveSuccess(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"success","country":"Germany","city":"Berlin","countryCode":"DE"}`))
	})
	defer srv.Close()

	loc := r.Resolve("203.0.113.7")
	require.NotNil(t, loc.Country)
	assert.Equal(t, "Germany", *loc.Country)
	require.NotNil(t, loc.City)
	assert.Equal(t, "Berlin", *loc.City)
	require.NotNil(t, loc.CountryCode)
	assert.Equal(t, "DE", *loc.CountryCode)
}

func TestResolveProviderFailureStatus(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	})
	defer srv.Close()

	loc := r.Resolve("203.0.113.7")
	assert.Nil(t, loc.Country)
	assert.Nil(t, loc.City)
	assert.Nil(t, loc.CountryCode)
}

func TestResolveNonOKStatusCode(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	assert.Equal(t, Location{}, r.Resolve("203.0.113.7"))
}

func TestResolveNetworkError(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {})
	srv.Close()
	r.Client = &http.Client{Timeout: time.Second}

	assert.Equal(t, Location{}, r.Resolve("203.0.113.7"))
}

func TestResolveSkipsNonPublicAddresses(t *testing.T) {
	called := false
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		called = true
	})
	defer srv.Close()

	for _, ip := range []string{"127.0.0.1", "::1", "10.1.2.3", "192.168.0.5", "0.0.0.0", "not-an-ip", ""} {
		assert.Equal(t, Location{}, r.Resolve(ip), ip)
	}
	assert.False(t, called)
}
