package provider

import (
	"strings"
	"testing"
)

func TestPrepareText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     string
	}{
		{
			name:     "strips markup",
			input:    "<h1>Title</h1>\n<p>Body with a <a href=\"/x\">link</a>.</p>",
			maxChars: 0,
			want:     "Title Body with a link.",
		},
		{
			name:     "unescapes entities",
			input:    "Fish &amp; Chips &lt;3",
			maxChars: 0,
			want:     "Fish & Chips <3",
		},
		{
			name:     "collapses whitespace",
			input:    "  lots \n\n of \t  space  ",
			maxChars: 0,
			want:     "lots of space",
		},
		{
			name:     "truncates to budget",
			input:    "abcdefghij",
			maxChars: 4,
			want:     "abcd",
		},
		{
			name:     "zero budget disables truncation",
			input:    strings.Repeat("a", 100),
			maxChars: 0,
			want:     strings.Repeat("a", 100),
		},
		{
			name:     "strips script content",
			input:    `before<script>alert("x")</script>after`,
			maxChars: 0,
			want:     "beforeafter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrepareText(tt.input, tt.maxChars); got != tt.want {
				t.Errorf("PrepareText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrepareTextRuneSafeTruncation(t *testing.T) {
	got := PrepareText("héllo wörld", 6)
	if got != "héllo " {
		t.Errorf("expected rune-safe cut, got %q", got)
	}
	if !strings.HasPrefix("héllo wörld", got) {
		t.Errorf("truncation produced a non-prefix: %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     string
	}{
		{"short passes through", "short", 10, "short"},
		{"exact length passes through", "exact", 5, "exact"},
		{"long gets ellipsis", "a longer excerpt here", 8, "a longer..."},
		{"trailing space trimmed before ellipsis", "cut here please", 9, "cut here..."},
		{"zero budget disables", "anything at all", 0, "anything at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.input, tt.maxChars); got != tt.want {
				t.Errorf("TruncateText() = %q, want %q", got, tt.want)
			}
		})
	}
}
