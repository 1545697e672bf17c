package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"devchatClient/internal/api"
	"devchatClient/internal/middleware"
	"devchatClient/internal/service"
	"devchatClient/internal/session"
)

type adminView struct {
	Tab       string
	Dashboard *service.AdminDashboard
	Error     string
}

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context()).Session
	view := adminView{Tab: r.URL.Query().Get("tab")}
	if view.Tab != "users" {
		view.Tab = "pending"
	}

	dash, err := h.AdminService.Dashboard(r.Context(), sess.Role)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.fail(w, r, err, "", "/admin")
			return
		}
		view.Error = api.Message(err, "Failed to fetch admin data")
		dash = &service.AdminDashboard{}
	}

	// the listing may lag behind a verification that just went through
	if id, err := strconv.ParseInt(r.URL.Query().Get("verified"), 10, 64); err == nil {
		dash.MarkVerified(id)
	}
	view.Dashboard = dash

	h.render(w, r, http.StatusOK, "admin", "Admin dashboard", view)
}

func (h *Handlers) VerifyUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.AdminService.Verify(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to verify user", "/admin")
		return
	}

	if middleware.WantsJSON(r) {
		writeSuccess(w, map[string]interface{}{"message": "User verified successfully!", "id": id}, http.StatusOK)
		return
	}

	setFlash(w, FlashSuccess, "User verified successfully!")
	http.Redirect(w, r, fmt.Sprintf("/admin?verified=%d", id), http.StatusSeeOther)
}
