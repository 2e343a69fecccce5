package domain

type FriendshipStatus string

const (
	FriendshipAbsent    FriendshipStatus = ""
	FriendshipPending   FriendshipStatus = "PENDING"
	FriendshipConfirmed FriendshipStatus = "CONFIRMED"
)

// Valid reports whether s is one of the known statuses, Absent included.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipAbsent, FriendshipPending, FriendshipConfirmed:
		return true
	default:
		return false
	}
}

// Edges holds both directed friendship edges between a user and another user.
// Out is user->other, In is other->user.
type Edges struct {
	Out FriendshipStatus
	In  FriendshipStatus
}

// Reverse returns the same pair as seen by the other user.
func (e Edges) Reverse() Edges {
	return Edges{Out: e.In, In: e.Out}
}

// ProposeFriendship applies a friend request from user to other.
// A request that meets a pending request in the other direction confirms both edges.
func ProposeFriendship(e Edges) Edges {
	if e.Out != FriendshipAbsent {
		return e
	}
	if e.In == FriendshipPending {
		return Edges{Out: FriendshipConfirmed, In: FriendshipConfirmed}
	}
	return Edges{Out: FriendshipPending, In: e.In}
}

// RevokeFriendship removes the user->other edge. Revoking a confirmed
// friendship leaves the other user with a pending edge back.
func RevokeFriendship(e Edges) Edges {
	switch e.Out {
	case FriendshipAbsent:
		return e
	case FriendshipConfirmed:
		if e.In == FriendshipConfirmed {
			return Edges{Out: FriendshipAbsent, In: FriendshipPending}
		}
	}
	return Edges{Out: FriendshipAbsent, In: e.In}
}

// Friendship is the view of both edges between two users.
type Friendship struct {
	UserID        int64            `json:"userId"`
	FriendID      int64            `json:"friendId"`
	Status        FriendshipStatus `json:"status,omitempty"`
	ReverseStatus FriendshipStatus `json:"reverseStatus,omitempty"`
}

func NewFriendship(userID, friendID int64, e Edges) Friendship {
	return Friendship{UserID: userID, FriendID: friendID, Status: e.Out, ReverseStatus: e.In}
}
