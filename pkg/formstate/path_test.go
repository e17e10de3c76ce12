package formstate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaform/pkg/formstate"
)

func TestPathString(t *testing.T) {
	cases := []struct {
		name string
		path formstate.Path
		want string
	}{
		{"field only", formstate.FieldPath("short_name"), "short_name"},
		{"entry", formstate.FieldPath("tags").At(1), "tags[1]"},
		{"group child", formstate.FieldPath("contact").At(1).ChildAt("phone", 0), "contact[1].phone[0]"},
		{"templated key", formstate.FieldPath("field.name.1"), "field.name.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.path.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePathRoundTrips(t *testing.T) {
	cases := []string{
		"short_name",
		"tags[0]",
		"tags[12]",
		"contact[1].phone",
		"contact[1].phone[0]",
		"field.name.1",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			path, err := formstate.ParsePath(raw)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", raw, err)
			}
			if got := path.String(); got != raw {
				t.Fatalf("round trip = %q, want %q", got, raw)
			}
		})
	}
}

func TestParsePathComponents(t *testing.T) {
	path, err := formstate.ParsePath("contact[1].phone[0]")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := formstate.FieldPath("contact").At(1).ChildAt("phone", 0)
	if diff := cmp.Diff(want, path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"tags[",
		"tags[]",
		"tags[x]",
		"contact[0]phone",
		"contact[0].phone[1]x",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			if _, err := formstate.ParsePath(raw); err == nil {
				t.Fatalf("ParsePath(%q) accepted malformed input", raw)
			}
		})
	}
}
