package server

import (
	"net/http"

	"github.com/anika2711garg/Planix-sub000/internal/service"
)

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.svc.Auth.Signup(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create user")
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.svc.Auth.Signin(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to sign in")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	current, _ := userFromContext(r.Context())

	user, err := s.svc.Auth.Me(r.Context(), current.ID)
	if err != nil {
		s.writeError(w, r, err, "Failed to load user")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
