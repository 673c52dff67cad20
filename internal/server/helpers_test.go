package server

import (
	"net/http/httptest"
	"testing"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"with suffix", "/api/scenarios/alpha/action-items", "/api/scenarios/", "/action-items", "alpha"},
		{"no suffix given", "/api/scenarios/alpha", "/api/scenarios/", "", "alpha"},
		{"no suffix stops at slash", "/api/scenarios/alpha/extra", "/api/scenarios/", "", "alpha"},
		{"prefix mismatch", "/api/messages", "/api/scenarios/", "", ""},
		{"suffix absent returns rest", "/api/scenarios/alpha", "/api/scenarios/", "/action-items", "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.path, nil)
			if got := PathParam(r, tt.prefix, tt.suffix); got != tt.want {
				t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.want)
			}
		})
	}
}
