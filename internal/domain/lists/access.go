package lists

// Access is the outcome of the ownership/visibility decision for one list.
type Access uint8

const (
	AccessDenied Access = iota
	AccessPublicRead
	AccessOwner
)

// Decide is the single ownership/visibility rule shared by lists, items and
// metadata. The admin flag plays no part in it.
func Decide(ownerID string, isPublic bool, who Identity) Access {
	if !who.Anonymous() && who.UserID == ownerID {
		return AccessOwner
	}
	if isPublic {
		return AccessPublicRead
	}
	return AccessDenied
}

func (a Access) CanRead() bool {
	return a == AccessOwner || a == AccessPublicRead
}

func (a Access) CanWrite() bool {
	return a == AccessOwner
}

func (a Access) String() string {
	switch a {
	case AccessOwner:
		return "owner"
	case AccessPublicRead:
		return "public_read"
	default:
		return "denied"
	}
}
