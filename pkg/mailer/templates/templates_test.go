package templates

import (
	"strings"
	"testing"
)

func TestRenderLoginNotification(t *testing.T) {
	subject, text, html, err := Render(LoginNotification, map[string]any{
		"UserName":  "alice",
		"Time":      "2024-03-01T10:00:00Z",
		"UserAgent": "test-agent/1.0",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject == "" {
		t.Fatal("empty subject")
	}
	for _, body := range []string{text, html} {
		if !strings.Contains(body, "alice") || !strings.Contains(body, "test-agent/1.0") {
			t.Fatalf("body missing data: %q", body)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("no_such_template", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
