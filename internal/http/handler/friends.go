package handler

import (
	"net/http"

	"dailyjournal/internal/friendship"
)

type FriendHandler struct {
	Svc *friendship.Service
}

type friendRequestDTO struct {
	ID       uint64   `json:"id"`
	Status   string   `json:"status"`
	Sender   *userDTO `json:"sender,omitempty"`
	Receiver *userDTO `json:"receiver,omitempty"`
}

func toFriendRequestDTO(req friendship.FriendRequest) friendRequestDTO {
	dto := friendRequestDTO{ID: req.ID, Status: string(req.Status)}
	if req.Sender != nil {
		d := toUserDTO(*req.Sender)
		dto.Sender = &d
	}
	if req.Receiver != nil {
		d := toUserDTO(*req.Receiver)
		dto.Receiver = &d
	}
	return dto
}

func toFriendRequestDTOs(reqs []friendship.FriendRequest) []friendRequestDTO {
	out := make([]friendRequestDTO, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toFriendRequestDTO(req))
	}
	return out
}

// Send creates a friend request toward the user in the path.
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	receiverID, err := pathID(r, "receiverId")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Svc.SendRequest(r.Context(), caller(r).ID, receiverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: msg})
}

func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Svc.Accept(r.Context(), requestID, caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: msg})
}

func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Svc.Reject(r.Context(), requestID, caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: msg})
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	friendID, err := pathID(r, "friendId")
	if err != nil {
		writeError(w, err)
		return
	}
	removed, err := h.Svc.Remove(r.Context(), caller(r).ID, friendID)
	if err != nil {
		writeError(w, err)
		return
	}
	msg := "You are not friends with this user."
	if removed {
		msg = "Friend removed successfully."
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: removed, Message: msg})
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	friends, err := h.Svc.Friends(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(friends))
}

// ListOf exposes another user's friends list.
func (h *FriendHandler) ListOf(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	friends, err := h.Svc.Friends(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(friends))
}

func (h *FriendHandler) Pending(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Svc.PendingFor(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFriendRequestDTOs(reqs))
}

func (h *FriendHandler) Sent(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Svc.SentBy(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFriendRequestDTOs(reqs))
}

func (h *FriendHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Svc.PendingCount(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// FriendCount reports the friend count for ?userId=, defaulting to the caller.
func (h *FriendHandler) FriendCount(w http.ResponseWriter, r *http.Request) {
	userID := caller(r).ID
	if r.URL.Query().Get("userId") != "" {
		id, err := queryUserID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		userID = id
	}
	count, err := h.Svc.FriendCount(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *FriendHandler) IsFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	ok, err := h.Svc.AreFriends(r.Context(), caller(r).ID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFriend": ok})
}

// Status reports the relation between the caller and another user.
func (h *FriendHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.Svc.Status(r.Context(), caller(r).ID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
