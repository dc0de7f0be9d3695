package http

import (
	"errors"
	"log/slog"
	"net/http"

	"frota/internal/auth"
)

type authView struct {
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formato de requisição inválido", http.StatusBadRequest)
		return
	}

	phone := sanitizeInput(r.Form.Get("phone"))
	password := r.Form.Get("password")

	user, err := s.gate.Login(r.Context(), phone, password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			s.render(w, r, "login.html", authView{Error: "Telefone ou senha incorretos"})
			return
		}
		writeDomainError(w, r, err)
		return
	}

	token := s.sessions.Create(user.Phone)
	s.setSessionCookie(w, token, s.sessions.ttl)

	slog.InfoContext(r.Context(), "User logged in", "phone", user.Phone)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", authView{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formato de requisição inválido", http.StatusBadRequest)
		return
	}

	phone := sanitizeInput(r.Form.Get("phone"))
	password := r.Form.Get("password")
	masterCode := r.Form.Get("masterCode")

	user, err := s.gate.Register(r.Context(), phone, password, masterCode)
	if err != nil {
		msg := ""
		switch {
		case errors.Is(err, auth.ErrEmptyField):
			msg = "Telefone e senha são obrigatórios"
		case errors.Is(err, auth.ErrBadMasterCode):
			msg = "Código mestre incorreto"
		case errors.Is(err, auth.ErrUserLimit):
			msg = "Limite de usuários atingido"
		case errors.Is(err, auth.ErrPhoneTaken):
			msg = "Telefone já cadastrado"
		}
		if msg != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			s.render(w, r, "register.html", authView{Error: msg})
			return
		}
		writeDomainError(w, r, err)
		return
	}

	token := s.sessions.Create(user.Phone)
	s.setSessionCookie(w, token, s.sessions.ttl)

	slog.InfoContext(r.Context(), "User registered", "phone", user.Phone)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
