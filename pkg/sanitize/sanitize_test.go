package sanitize_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formrules/pkg/sanitize"
)

func TestStripTags(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":                      "Jane Doe",
		"<b>Jane</b> Doe":               "Jane Doe",
		"<script>alert(1)</script>Jane": "Jane",
		"Tom & Jerry":                   "Tom & Jerry",
		"":                              "",
	}
	for input, want := range cases {
		if got := sanitize.StripTags(input); got != want {
			t.Fatalf("StripTags(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStripTags_EncodedMarkup(t *testing.T) {
	cases := map[string]string{
		"&lt;script&gt;alert(1)&lt;/script&gt;":         "",
		"&lt;b&gt;Jane&lt;/b&gt; Doe":                   "Jane Doe",
		"&amp;lt;i&amp;gt;Jane&amp;lt;/i&amp;gt;":       "Jane",
		"<b>&lt;script&gt;alert(1)&lt;/script&gt;</b>x": "x",
		"Tom &amp; Jerry":                               "Tom & Jerry",
	}
	for input, want := range cases {
		got := sanitize.StripTags(input)
		if got != want {
			t.Fatalf("StripTags(%q) = %q, want %q", input, got, want)
		}
		if strings.Contains(strings.ToLower(got), "<script") {
			t.Fatalf("StripTags(%q) left a script element: %q", input, got)
		}
		if again := sanitize.StripTags(got); again != got {
			t.Fatalf("StripTags not stable for %q: %q then %q", input, got, again)
		}
	}
}

func TestFromNames(t *testing.T) {
	fn, err := sanitize.FromNames([]string{"strip_tags", "trim"})
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	if got := fn("  <i>Jane</i>  "); got != "Jane" {
		t.Fatalf("unexpected normalised value %q", got)
	}

	if _, err := sanitize.FromNames([]string{"shout"}); err == nil {
		t.Fatalf("expected unknown normaliser error")
	}

	if fn, err := sanitize.FromNames(nil); err != nil || fn != nil {
		t.Fatalf("expected nil normaliser for empty list, got %v %v", fn, err)
	}
}
