package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"dailyjournal/internal/media"
	"dailyjournal/internal/user"
)

type UserHandler struct {
	Users *user.Service
	Media *media.Service
}

type userDTO struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Enabled        bool     `json:"enabled"`
	Roles          []string `json:"roles"`
}

func toUserDTO(u user.User) userDTO {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	return userDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Enabled:        u.Enabled,
		Roles:          roles,
	}
}

func toUserDTOs(users []user.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.ByID(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*u))
}

type userUpdateReq struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	OldPassword *string `json:"oldPassword"`
	Password    *string `json:"password"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	err := h.Users.UpdateProfile(r.Context(), caller(r), user.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		Password:    req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "User profile updated successfully."})
}

// UploadPhoto accepts a single profile picture part named "file".
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(media.MaxProfilePictureSize + 1<<20); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeFieldErrors(w, map[string]string{"file": "file is empty or missing"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, err)
		return
	}

	key, err := h.Media.SetProfilePicture(r.Context(), caller(r), media.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Profile picture uploaded successfully.",
		"profilePicture": "/api/users/profile-photo/" + key,
	})
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	users, err := h.Users.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context(), caller(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// Block is the soft delete: the user can no longer log in.
func (h *UserHandler) Block(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Users.Block(r.Context(), caller(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "User has been blocked from logging in."})
}

func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Users.ToggleStatus(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: msg})
}
