package utils

import "testing"

func TestFormatEvent(t *testing.T) {
	got := FormatEvent(" abc ", "trips", "list", "store error: line1\nline2")
	want := "[TRIPS] action=list request_id=abc msg=store error: line1 line2"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := FormatEvent("", "auth", "login", "accepted"); got != "[AUTH] action=login request_id=- msg=accepted" {
		t.Fatalf("unexpected %q", got)
	}
}
