package helper

import "testing"

func str(s string) *string { return &s }

func TestEmailDigest(t *testing.T) {
	a := EmailDigest(str("a@b.com"))
	if len(a) != 16 {
		t.Fatalf("len=%d", len(a))
	}
	if a != EmailDigest(str(" A@B.com ")) {
		t.Fatal("digest must ignore case and spaces")
	}
	if a == EmailDigest(str("c@d.com")) {
		t.Fatal("expected different digests")
	}
	if EmailDigest(nil) != "" || EmailDigest(str("  ")) != "" {
		t.Fatal("missing email must give empty digest")
	}
}
