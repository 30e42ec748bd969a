package friendship

import (
	"testing"

	"dailyjournal/internal/apperr"

	"github.com/stretchr/testify/require"
)

func TestDecideSendToSelf(t *testing.T) {
	t.Parallel()

	_, err := DecideSend(1, 1, false, nil)
	require.Error(t, err)
	require.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestDecideSendAlreadyFriends(t *testing.T) {
	t.Parallel()

	d, err := DecideSend(1, 2, true, nil)
	require.NoError(t, err)
	require.False(t, d.Create)
	require.Equal(t, "Already friends", d.Message)
}

func TestDecideSendDuplicatePending(t *testing.T) {
	t.Parallel()

	existing := &FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}

	d, err := DecideSend(1, 2, false, existing)
	require.NoError(t, err)
	require.False(t, d.Create)
	require.Equal(t, "Friend request already sent", d.Message)
}

func TestDecideSendReversePending(t *testing.T) {
	t.Parallel()

	existing := &FriendRequest{SenderID: 2, ReceiverID: 1, Status: StatusPending}

	d, err := DecideSend(1, 2, false, existing)
	require.NoError(t, err)
	require.False(t, d.Create)
	require.Equal(t, "This user has already sent you a friend request", d.Message)
}

func TestDecideSendAfterRejection(t *testing.T) {
	t.Parallel()

	// A rejected request does not block a new one.
	existing := &FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusRejected}

	d, err := DecideSend(1, 2, false, existing)
	require.NoError(t, err)
	require.True(t, d.Create)
}

func TestAcceptByReceiver(t *testing.T) {
	t.Parallel()

	req := FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}

	msg, changed, err := req.Accept(2)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "Friend request accepted", msg)
	require.Equal(t, StatusAccepted, req.Status)
}

func TestAcceptBySenderForbidden(t *testing.T) {
	t.Parallel()

	req := FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}

	_, _, err := req.Accept(1)
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	require.Equal(t, StatusPending, req.Status)
}

func TestAcceptNotPendingIsNoOp(t *testing.T) {
	t.Parallel()

	req := FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusAccepted}

	msg, changed, err := req.Accept(2)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "Friend request is no longer pending", msg)
}

func TestRejectByReceiver(t *testing.T) {
	t.Parallel()

	req := FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}

	msg, changed, err := req.Reject(2)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "Friend request rejected", msg)
	require.Equal(t, StatusRejected, req.Status)
}

func TestRejectByStrangerForbidden(t *testing.T) {
	t.Parallel()

	req := FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}

	_, _, err := req.Reject(3)
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestPairStatus(t *testing.T) {
	t.Parallel()

	pending := &FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusPending}
	rejected := &FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusRejected}

	require.Equal(t, PairFriends, PairStatus(1, true, pending))
	require.Equal(t, PairRequestSent, PairStatus(1, false, pending))
	require.Equal(t, PairRequestReceived, PairStatus(2, false, pending))
	require.Equal(t, PairRejected, PairStatus(1, false, rejected))
	require.Equal(t, PairNone, PairStatus(1, false, nil))

	// Accepted rows without the friends flag fall through to NONE; callers
	// derive the flag from the same rows, so this only happens mid-removal.
	accepted := &FriendRequest{SenderID: 1, ReceiverID: 2, Status: StatusAccepted}
	require.Equal(t, PairNone, PairStatus(1, false, accepted))
}
