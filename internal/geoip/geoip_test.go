package geoip

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSkippable(t *testing.T) {
	cases := map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"192.168.0.9": true,
		"::1":         true,
		"not-an-ip":   true,
		"8.8.8.8":     false,
		"211.45.1.10": false,
	}
	for ip, want := range cases {
		if got := Skippable(ip); got != want {
			t.Fatalf("Skippable(%s) want %v, got %v", ip, want, got)
		}
	}
}

func TestLookupSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/8.8.8.8") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","country":"South Korea","countryCode":"KR","city":"Seoul"}`))
	}))
	defer server.Close()

	location, err := New(server.URL+"/json", time.Second).Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if location.CountryCode != "KR" || location.City != "Seoul" {
		t.Fatalf("unexpected location: %+v", location)
	}
}

func TestLookupFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	if _, err := client.Lookup(context.Background(), "8.8.4.4"); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("want ErrResponseInvalid, got %v", err)
	}
	location, err := client.Lookup(context.Background(), "192.168.1.1")
	if err != nil || location != nil {
		t.Fatalf("private ip should be skipped: %+v %v", location, err)
	}
}
