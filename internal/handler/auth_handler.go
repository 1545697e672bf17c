package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"devchatClient/internal/api"
	"devchatClient/internal/guard"
	"devchatClient/internal/logger"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

type authForm struct {
	Username string
	Email    string
	Role     models.Role
	Errors   map[string]string
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).Session.IsAuthenticated() {
		http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", "Sign in", authForm{})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := models.LoginRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	form := authForm{Username: req.Username}

	if err := h.Validate.Struct(req); err != nil {
		form.Errors = models.FieldErrors(err)
		h.render(w, r, http.StatusBadRequest, "login", "Sign in", form)
		return
	}

	namespace := session.FromContext(r.Context()).Namespace
	if _, err := h.AuthService.Login(r.Context(), namespace, req); err != nil {
		logger.Log.Info("login rejected", zap.String("namespace", namespace), zap.Error(err))
		form.Errors = map[string]string{"": api.Message(err, "Login failed")}
		h.render(w, r, http.StatusOK, "login", "Sign in", form)
		return
	}

	setFlash(w, FlashSuccess, "Welcome back to DevChat!")
	http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).Session.IsAuthenticated() {
		http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "register", "Create account", authForm{})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := models.RegisterRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     models.Role(strings.TrimSpace(r.PostFormValue("role"))),
	}
	form := authForm{Username: req.Username, Email: req.Email, Role: req.Role}

	if err := h.Validate.Struct(req); err != nil {
		form.Errors = models.FieldErrors(err)
		h.render(w, r, http.StatusBadRequest, "register", "Create account", form)
		return
	}

	namespace := session.FromContext(r.Context()).Namespace
	state, err := h.AuthService.Register(r.Context(), namespace, req)
	if err != nil {
		logger.Log.Info("registration rejected", zap.String("namespace", namespace), zap.Error(err))
		form.Errors = map[string]string{"": api.Message(err, "Registration failed")}
		h.render(w, r, http.StatusOK, "register", "Create account", form)
		return
	}

	message := "Registration successful! Welcome to DevChat!"
	if !state.Session.Verified {
		message += " Your account is pending admin verification."
	}
	setFlash(w, FlashSuccess, message)
	http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	namespace := session.FromContext(r.Context()).Namespace
	if err := h.AuthService.Logout(r.Context(), namespace); err != nil {
		logger.Log.Error("logout failed", zap.String("namespace", namespace), zap.Error(err))
		setFlash(w, FlashError, "Logout failed. Please try again.")
		http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
		return
	}

	setFlash(w, FlashInfo, "You have been signed out.")
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}
