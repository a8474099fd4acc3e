package util

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		remote    string
		forwarded string
		expected  string
	}{
		{name: "RemoteAddr", remote: "10.0.0.5:48210", expected: "10.0.0.5"},
		{name: "RemoteAddrNoPort", remote: "10.0.0.5", expected: "10.0.0.5"},
		{name: "ForwardedSingle", remote: "10.0.0.5:48210", forwarded: "203.0.113.7", expected: "203.0.113.7"},
		{name: "ForwardedChain", remote: "10.0.0.5:48210", forwarded: "203.0.113.7, 198.51.100.1", expected: "203.0.113.7"},
		{name: "ForwardedEmpty", remote: "10.0.0.5:48210", forwarded: "  ", expected: "10.0.0.5"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := GetClientIP(req); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	got := SortedStringKeys(m)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
