package nearby

import "testing"

func TestUUID16(t *testing.T) {
	u := UUID16(0xfcf1)
	if u.String() != "fcf1" {
		t.Fatalf("got %q", u.String())
	}
	if !u.Equal(MustParse("fcf1")) {
		t.Fatal("UUID16 and Parse disagree")
	}
}

func TestParseLengths(t *testing.T) {
	for _, s := range []string{"fcf1", "0000fcf1", "34DA3AD1-7110-41A1-B1EF-4430F509CDE7"} {
		if _, err := Parse(s); err != nil {
			t.Fatalf("parse %q failed: %s", s, err)
		}
	}
	if _, err := Parse("abcdef"); err == nil {
		t.Fatal("3-byte uuid parsed")
	}
	if _, err := Parse("zz"); err == nil {
		t.Fatal("non-hex uuid parsed")
	}
}

func TestContains(t *testing.T) {
	ss := []UUID{FastPairUUID, PresenceUUID}
	if !Contains(ss, PresenceUUID) {
		t.Fatal("known uuid not found")
	}
	if Contains(ss, UUID16(0x180d)) {
		t.Fatal("unknown uuid found")
	}
	if !Contains(nil, UUID16(0x180d)) {
		t.Fatal("nil slice must match everything")
	}
}
