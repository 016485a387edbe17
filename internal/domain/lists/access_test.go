package lists

import "testing"

func TestDecide(t *testing.T) {
	owner := Identity{UserID: "owner"}
	other := Identity{UserID: "other"}
	admin := Identity{UserID: "admin", IsAdmin: true}
	anonymous := Identity{}

	cases := []struct {
		name     string
		isPublic bool
		who      Identity
		want     Access
	}{
		{"owner private", false, owner, AccessOwner},
		{"owner public", true, owner, AccessOwner},
		{"other private", false, other, AccessDenied},
		{"other public", true, other, AccessPublicRead},
		{"anonymous private", false, anonymous, AccessDenied},
		{"anonymous public", true, anonymous, AccessPublicRead},
		{"admin private", false, admin, AccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide("owner", tc.isPublic, tc.who); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecideAnonymousNeverOwnsOwnerlessList(t *testing.T) {
	if got := Decide("", false, Identity{}); got != AccessDenied {
		t.Fatalf("expected denied, got %s", got)
	}
}

func TestAccessPredicates(t *testing.T) {
	if AccessDenied.CanRead() || AccessDenied.CanWrite() {
		t.Fatalf("denied must not read or write")
	}
	if !AccessPublicRead.CanRead() || AccessPublicRead.CanWrite() {
		t.Fatalf("public read must read only")
	}
	if !AccessOwner.CanRead() || !AccessOwner.CanWrite() {
		t.Fatalf("owner must read and write")
	}
}
