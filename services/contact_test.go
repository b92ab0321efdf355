package services

import (
	"strings"
	"testing"
)

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("owner@example.com", ContactMessage{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Hello there",
		Message: "I would like to talk about a project.",
	})

	if !strings.HasPrefix(link, "mailto:owner@example.com?subject=Hello%20there&body=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must encode as %%20, not '+': %q", link)
	}
	if !strings.Contains(link, "Name%3A%20Jane%20Doe") {
		t.Fatalf("body should carry the sender name: %q", link)
	}
	if !strings.Contains(link, "jane%40example.com") {
		t.Fatalf("body should carry the sender email: %q", link)
	}
}

func TestMailtoLinkBodyLayout(t *testing.T) {
	link := MailtoLink("owner@example.com", ContactMessage{
		Name:    "A",
		Email:   "a@b.c",
		Subject: "s",
		Message: "msg",
	})

	// Name/Email block, blank line, then the message.
	want := "body=Name%3A%20A%0AEmail%3A%20a%40b.c%0A%0AMessage%3A%0Amsg"
	if !strings.HasSuffix(link, want) {
		t.Fatalf("unexpected body encoding: %q", link)
	}
}
