package geoip

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Location is a coarse city-level lookup result. All fields are nil when
// the lookup failed or was skipped; callers proceed either way.
type Location struct {
	Country     *string
	City        *string
	CountryCode *string
}

type providerResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

// Resolver looks up a client address against the ip-api.com JSON
// endpoint. Every failure mode degrades to an empty Location; Resolve
// never blocks the write it is attached to for longer than the client
// timeout and never returns an error.
type Resolver struct {
	BaseURL string
	Client  *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		BaseURL: "http://ip-api.com/json",
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (r *Resolver) Resolve(ip string) Location {
	if !isPublicAddress(ip) {
		return Location{}
	}

	url := fmt.Sprintf("%s/%s?fields=status,message,country,city,countryCode", r.BaseURL, ip)
	resp, err := r.Client.Get(url)
	if err != nil {
		log.Printf("geoip lookup failed for %s: %v", ip, err)
		return Location{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geoip lookup for %s returned status %d", ip, resp.StatusCode)
		return Location{}
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("geoip response decode failed for %s: %v", ip, err)
		return Location{}
	}

	if body.Status != "success" {
		log.Printf("geoip provider reported failure for %s: %s", ip, body.Message)
		return Location{}
	}

	loc := Location{}
	if body.Country != "" {
		loc.Country = &body.Country
	}
	if body.City != "" {
		loc.City = &body.City
	}
	if body.CountryCode != "" {
		loc.CountryCode = &body.CountryCode
	}
	return loc
}

// isPublicAddress filters loopback, private and malformed addresses so
// they are never sent to the external provider.
func isPublicAddress(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast() {
		return false
	}
	return true
}
