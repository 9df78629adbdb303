package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
	"github.com/felipemebarak500-lgtm/mebawear/internal/store"
)

// --------- DTOs ---------

type registerReq struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	InviteCode string `json:"inviteCode"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, Phone: u.Phone}
}

// --------- Handlers ---------

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios.")
		return
	}
	if strings.TrimSpace(in.InviteCode) == "" {
		errorJSON(w, http.StatusBadRequest, "Código de invitación no válido o ya usado.")
		return
	}

	u, err := s.store.Register(r.Context(), store.RegisterInput{
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		Phone:      in.Phone,
		InviteCode: in.InviteCode,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toUserDTO(u))
	case errors.Is(err, store.ErrInviteNotFound), errors.Is(err, store.ErrInviteUsed):
		errorJSON(w, http.StatusBadRequest, "Código de invitación no válido o ya usado.")
	case errors.Is(err, store.ErrUsernameTaken):
		errorJSON(w, http.StatusBadRequest, "Ese usuario ya existe.")
	default:
		s.log.Error("register failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := s.store.Authenticate(r.Context(), in.Username, in.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		errorJSON(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	} else if err != nil {
		s.log.Error("login failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}

	tok, err := s.signToken(u.ID)
	if err != nil {
		s.log.Error("sign token failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}
	s.setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context(), sessionUserID(r))
	if errors.Is(err, store.ErrInvalidCredentials) {
		errorJSON(w, http.StatusUnauthorized, "Sesión no válida.")
		return
	} else if err != nil {
		s.log.Error("me lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}
