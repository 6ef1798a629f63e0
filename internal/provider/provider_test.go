package provider

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai", Config{Name: "openai", APIKey: "sk-test"}, false},
		{"ollama", Config{Name: "ollama"}, false},
		{"unsupported", Config{Name: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if p == nil {
				t.Fatal("expected a provider")
			}
		})
	}
}

func TestErrorFormat(t *testing.T) {
	withStatus := &Error{Provider: "openai", StatusCode: 429, Message: "rate limited"}
	if got := withStatus.Error(); !strings.Contains(got, "429") || !strings.Contains(got, "rate limited") {
		t.Errorf("expected status and message in %q", got)
	}

	withoutStatus := &Error{Provider: "ollama", Message: "connection refused"}
	if got := withoutStatus.Error(); strings.Contains(got, "status") {
		t.Errorf("expected no status segment in %q", got)
	}
}
