package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/youthportal/internal/app/system/htmlsanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Basketball, Volleyball", "Basketball, Volleyball"},
		{"trims", "  Chess  ", "Chess"},
		{"script removed", "Swimming<script>alert('xss')</script>", "Swimming"},
		{"tags stripped", "<b>Bold</b> and <em>italic</em>", "Bold and italic"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"iframe removed", `Work<iframe src="https://evil.example"></iframe>`, "Work"},
		{"attributes gone", `<a href="javascript:alert(1)">link</a>`, "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	a, b := "<i>one</i>", " two "
	htmlsanitize.Fields(&a, &b, nil)
	if a != "one" || b != "two" {
		t.Errorf("Fields: got %q, %q", a, b)
	}
}

