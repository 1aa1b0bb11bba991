package swaps

import (
	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Actor captures which side of a swap the caller is on.
type Actor struct {
	IsRequester bool
	IsOwner     bool
}

// Involved reports whether the caller is a party to the swap at all.
func (a Actor) Involved() bool {
	return a.IsRequester || a.IsOwner
}

// ResolveActor determines the caller's role relative to a swap. It is computed
// before every lifecycle or message mutation.
func ResolveActor(swap *models.SwapRequest, itemOwnerID, userID uuid.UUID) Actor {
	if swap == nil || userID == uuid.Nil {
		return Actor{}
	}
	return Actor{
		IsRequester: swap.RequesterID == userID,
		IsOwner:     itemOwnerID == userID,
	}
}
