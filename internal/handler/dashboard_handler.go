package handlers

import (
	"errors"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"devchatClient/internal/api"
	"devchatClient/internal/guard"
	"devchatClient/internal/logger"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

const recentThreadsLimit = 5

type QuickAction struct {
	Title       string
	Description string
	Link        string
}

type dashboardView struct {
	Welcome       string
	Actions       []QuickAction
	PendingNotice bool
	Recent        []models.Thread
	RecentError   string
	TotalThreads  int
}

// Welcome returns the role-specific greeting of the dashboard.
func Welcome(sess models.Session) string {
	switch {
	case sess.IsUser():
		return "Welcome! You can create help requests and view discussions."
	case sess.IsDev():
		return "Welcome! You can help users by replying to their threads."
	case sess.IsAdmin():
		return "Welcome! You have admin access to manage users and oversee discussions."
	default:
		return "Welcome to DevChat!"
	}
}

// QuickActions lists the shortcuts offered to sess on the dashboard.
func QuickActions(sess models.Session) []QuickAction {
	browse := QuickAction{Title: "Browse Discussions", Description: "View all ongoing discussions", Link: "/threads"}

	switch {
	case sess.IsUser():
		return []QuickAction{
			{Title: "Create Help Request", Description: "Post a new thread asking for help", Link: "/create-thread"},
			browse,
		}
	case sess.IsDev():
		return []QuickAction{
			{Title: "Help Users", Description: "Reply to user questions and help requests", Link: "/threads"},
			browse,
		}
	case sess.IsAdmin():
		return []QuickAction{
			{Title: "Admin Dashboard", Description: "Manage users and verify accounts", Link: "/admin"},
			{Title: "View All Discussions", Description: "Oversee all platform discussions", Link: "/threads"},
		}
	default:
		return nil
	}
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, guard.DefaultPath, http.StatusSeeOther)
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context()).Session
	view := dashboardView{
		Welcome:       Welcome(sess),
		Actions:       QuickActions(sess),
		PendingNotice: sess.IsDev() && !sess.Verified,
	}

	threads, err := h.ThreadService.List(r.Context(), "")
	switch {
	case err == nil:
		view.TotalThreads = len(threads)
		view.Recent = recentThreads(threads, recentThreadsLimit)
	case errors.Is(err, api.ErrUnauthorized):
		h.fail(w, r, err, "", guard.LoginPath)
		return
	default:
		logger.Log.Warn("dashboard threads unavailable", zap.Error(err))
		view.RecentError = api.Message(err, "Failed to load recent threads")
	}

	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", view)
}

func recentThreads(threads []models.Thread, limit int) []models.Thread {
	sorted := make([]models.Thread, len(threads))
	copy(sorted, threads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
