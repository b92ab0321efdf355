package models

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Título Épico", "titulo-epico"},
		{"  spaced  out  ", "spaced-out"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadingTimeFloor(t *testing.T) {
	post := Post{Content: "just a few words"}
	if got := post.ReadingTime(); got != 1 {
		t.Fatalf("short content should read as 1 minute, got %d", got)
	}
}

func TestReadingTimeLongContent(t *testing.T) {
	post := Post{Content: strings.Repeat("word ", 600)}
	if got := post.ReadingTime(); got != 3 {
		t.Fatalf("600 words should read as 3 minutes, got %d", got)
	}
}

func TestSkillCategoryDisplay(t *testing.T) {
	if got := SkillCategoryDisplay("programming"); got != "Programming Languages" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := SkillCategoryDisplay("made-up"); got != "made-up" {
		t.Fatalf("unknown categories should fall back to the key, got %q", got)
	}
}

func TestIsPublished(t *testing.T) {
	if (&Post{Status: StatusDraft}).IsPublished() {
		t.Fatal("draft should not be published")
	}
	if !(&Post{Status: StatusPublished}).IsPublished() {
		t.Fatal("published post should report published")
	}
}
