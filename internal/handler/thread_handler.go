package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"devchatClient/internal/api"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
	"devchatClient/internal/vote"
)

type threadsView struct {
	Keyword string
	Threads []models.Thread
	Error   string
	CanPost bool
}

type messageView struct {
	models.Message
	Vote        vote.State
	CanModerate bool
}

type threadDetailView struct {
	Thread      models.Thread
	Messages    []messageView
	CanModerate bool
	CanReply    bool
	CanVote     bool
}

type threadForm struct {
	Title   string
	Content string
	Errors  map[string]string
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func threadPath(id int64) string {
	return fmt.Sprintf("/thread/%d", id)
}

func (h *Handlers) Threads(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context()).Session
	view := threadsView{
		Keyword: strings.TrimSpace(r.URL.Query().Get("keyword")),
		CanPost: sess.IsUser(),
	}

	threads, err := h.ThreadService.List(r.Context(), view.Keyword)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.fail(w, r, err, "", "/threads")
			return
		}
		view.Error = api.Message(err, "Failed to load threads")
	}
	view.Threads = threads

	h.render(w, r, http.StatusOK, "threads", "Discussions", view)
}

// NewThreadDetailView decides what the viewer may do on a thread page.
func NewThreadDetailView(sess models.Session, thread models.Thread, messages []models.Message) threadDetailView {
	username := sess.Subject()
	view := threadDetailView{
		Thread:      thread,
		CanModerate: models.CanModerate(sess.Role, thread.AuthorName, username),
		CanReply:    models.CanCreateMessage(sess.Role),
		CanVote:     models.CanVote(sess.Role),
		Messages:    make([]messageView, 0, len(messages)),
	}
	for _, m := range messages {
		view.Messages = append(view.Messages, messageView{
			Message:     m,
			Vote:        vote.FromMessage(m),
			CanModerate: models.CanModerate(sess.Role, m.AuthorName, username),
		})
	}
	return view
}

func (h *Handlers) ThreadDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render(w, r, http.StatusNotFound, "not_found", "Not found", nil)
		return
	}

	detail, err := h.ThreadService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			h.render(w, r, http.StatusNotFound, "not_found", "Thread not found", nil)
			return
		}
		h.fail(w, r, err, "Failed to load thread", "/threads")
		return
	}

	sess := session.FromContext(r.Context()).Session
	h.render(w, r, http.StatusOK, "thread", detail.Thread.Title,
		NewThreadDetailView(sess, detail.Thread, detail.Messages))
}

func (h *Handlers) CreateThreadPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "create_thread", "New help request", threadForm{})
}

func (h *Handlers) CreateThread(w http.ResponseWriter, r *http.Request) {
	req := models.ThreadRequest{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}

	if err := h.Validate.Struct(req); err != nil {
		form := threadForm{Title: req.Title, Content: req.Content, Errors: models.FieldErrors(err)}
		h.render(w, r, http.StatusBadRequest, "create_thread", "New help request", form)
		return
	}

	thread, err := h.ThreadService.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.fail(w, r, err, "", "/create-thread")
			return
		}
		form := threadForm{
			Title:   req.Title,
			Content: req.Content,
			Errors:  map[string]string{"": api.Message(err, "Failed to create thread")},
		}
		h.render(w, r, http.StatusOK, "create_thread", "New help request", form)
		return
	}

	setFlash(w, FlashSuccess, "Thread created successfully!")
	http.Redirect(w, r, threadPath(thread.ID), http.StatusSeeOther)
}

func (h *Handlers) UpdateThread(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid thread id", http.StatusBadRequest)
		return
	}

	req := models.ThreadRequest{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
	if err := h.Validate.Struct(req); err != nil {
		message := "Title and content are required"
		if req.Title != "" && req.Content != "" {
			message = models.FieldErrors(err)["title"]
		}
		setFlash(w, FlashError, message)
		http.Redirect(w, r, threadPath(id), http.StatusSeeOther)
		return
	}

	if _, err := h.ThreadService.Update(r.Context(), id, req); err != nil {
		h.fail(w, r, err, "Failed to update thread", threadPath(id))
		return
	}

	setFlash(w, FlashSuccess, "Thread updated successfully")
	http.Redirect(w, r, threadPath(id), http.StatusSeeOther)
}

func (h *Handlers) DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid thread id", http.StatusBadRequest)
		return
	}

	if err := h.ThreadService.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete thread", threadPath(id))
		return
	}

	setFlash(w, FlashSuccess, "Thread deleted successfully")
	http.Redirect(w, r, "/threads", http.StatusSeeOther)
}
