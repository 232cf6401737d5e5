package main

import (
	"strings"
	"testing"
)

func TestIsWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		weak   bool
	}{
		{"", true},
		{"short", true},
		{"change-me-in-production", true},
		{strings.Repeat("a", 32) + "change-me", true},
		{"0f6c1d7e9b2a4c8e5f3d1b7a9c2e4f6a8b", false},
	}
	for _, tc := range cases {
		if got := isWeakSecret(tc.secret); got != tc.weak {
			t.Fatalf("secret %q want weak=%v got %v", tc.secret, tc.weak, got)
		}
	}
}
