package friendship

import "dailyjournal/internal/apperr"

// Pair status values reported by the status endpoint.
const (
	PairFriends         = "FRIENDS"
	PairRequestSent     = "REQUEST_SENT"
	PairRequestReceived = "REQUEST_RECEIVED"
	PairRejected        = "REJECTED"
	PairNone            = "NONE"
)

// SendDecision is the outcome of evaluating a send against the current pair
// state. Informational outcomes (already friends, already requested) are not
// errors.
type SendDecision struct {
	Create  bool
	Message string
}

func DecideSend(senderID, receiverID uint64, alreadyFriends bool, existing *FriendRequest) (SendDecision, error) {
	if senderID == receiverID {
		return SendDecision{}, apperr.E(apperr.InvalidArgument, "cannot send friend request to yourself")
	}
	if alreadyFriends {
		return SendDecision{Message: "Already friends"}, nil
	}
	if existing != nil && existing.Status == StatusPending {
		if existing.SenderID == senderID {
			return SendDecision{Message: "Friend request already sent"}, nil
		}
		return SendDecision{Message: "This user has already sent you a friend request"}, nil
	}
	return SendDecision{Create: true, Message: "Friend request sent successfully"}, nil
}

// Accept transitions PENDING to ACCEPTED. Only the receiver may accept; a
// request that is no longer pending yields an informational no-op.
func (r *FriendRequest) Accept(callerID uint64) (msg string, changed bool, err error) {
	if r.ReceiverID != callerID {
		return "", false, apperr.E(apperr.Forbidden, "you can only accept requests sent to you")
	}
	if r.Status != StatusPending {
		return "Friend request is no longer pending", false, nil
	}
	r.Status = StatusAccepted
	return "Friend request accepted", true, nil
}

// Reject transitions PENDING to REJECTED, symmetric to Accept.
func (r *FriendRequest) Reject(callerID uint64) (msg string, changed bool, err error) {
	if r.ReceiverID != callerID {
		return "", false, apperr.E(apperr.Forbidden, "you can only reject requests sent to you")
	}
	if r.Status != StatusPending {
		return "Friend request is no longer pending", false, nil
	}
	r.Status = StatusRejected
	return "Friend request rejected", true, nil
}

// PairStatus derives the relation as seen from userID: friendship wins, then
// the most recent request row.
func PairStatus(userID uint64, friends bool, latest *FriendRequest) string {
	if friends {
		return PairFriends
	}
	if latest != nil {
		switch latest.Status {
		case StatusPending:
			if latest.SenderID == userID {
				return PairRequestSent
			}
			return PairRequestReceived
		case StatusRejected:
			return PairRejected
		}
	}
	return PairNone
}
