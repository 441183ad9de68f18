package markup

import (
	"strings"
	"testing"
)

func TestSafeTextEscapesHTML(t *testing.T) {
	t.Parallel()

	got := string(Text("<b>ok</b> & more").HTML())
	if strings.ContainsAny(got, "<>") && !strings.Contains(got, "&lt;") {
		t.Fatalf("HTML() left markup unescaped: %q", got)
	}
	want := "&lt;b&gt;ok&lt;/b&gt; &amp; more"
	if got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestSafeTextRawRoundTrip(t *testing.T) {
	t.Parallel()

	raw := "line one\nline <two>"
	if got := Text(raw).Raw(); got != raw {
		t.Errorf("Raw() = %q, want %q", got, raw)
	}
}

func TestSafeTextPlaceholders(t *testing.T) {
	t.Parallel()

	var zero SafeText
	if !zero.IsZero() {
		t.Fatal("zero SafeText should report IsZero")
	}
	if got := zero.OrPlaceholder().Raw(); got != Placeholder {
		t.Errorf("OrPlaceholder() = %q, want %q", got, Placeholder)
	}
	if got := zero.Or("(untitled)").Raw(); got != "(untitled)" {
		t.Errorf("Or() = %q, want %q", got, "(untitled)")
	}
	if got := Text("set").OrPlaceholder().Raw(); got != "set" {
		t.Errorf("OrPlaceholder() on non-zero = %q, want %q", got, "set")
	}
}
