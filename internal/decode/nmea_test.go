package decode

import "testing"

func TestNmeaTag(t *testing.T) {
	tag, err := nmeaTag([]byte("$GPGGA,123519,*47\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != "GPGGA" {
		t.Errorf("tag: got %q", tag)
	}
}

func TestNmeaTagTooShort(t *testing.T) {
	if _, err := nmeaTag([]byte("$AB")); err == nil {
		t.Fatal("expected error")
	}
}
