package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"devchatClient/internal/api"
	"devchatClient/internal/middleware"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
	"devchatClient/internal/vote"
)

const replyForbiddenMessage = "Only developers and admins can reply to threads."

type VoteResponse struct {
	Upvotes   int             `json:"upvotes"`
	Downvotes int             `json:"downvotes"`
	Score     int             `json:"score"`
	UserVote  models.VoteType `json:"userVote"`
	Error     string          `json:"error,omitempty"`
}

func newVoteResponse(s vote.State) VoteResponse {
	return VoteResponse{Upvotes: s.Upvotes, Downvotes: s.Downvotes, Score: s.Score(), UserVote: s.UserVote}
}

// returnPath is where a message form goes back to: its thread when known.
func returnPath(r *http.Request, messageID int64) string {
	threadID, err := strconv.ParseInt(r.PostFormValue("thread_id"), 10, 64)
	if err != nil || threadID <= 0 {
		return "/threads"
	}
	return fmt.Sprintf("%s#message-%d", threadPath(threadID), messageID)
}

func (h *Handlers) Reply(w http.ResponseWriter, r *http.Request) {
	threadID, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid thread id", http.StatusBadRequest)
		return
	}

	sess := session.FromContext(r.Context()).Session
	if !models.CanCreateMessage(sess.Role) {
		setFlash(w, FlashError, replyForbiddenMessage)
		http.Redirect(w, r, threadPath(threadID), http.StatusSeeOther)
		return
	}

	content := strings.TrimSpace(r.PostFormValue("content"))
	if content == "" {
		setFlash(w, FlashError, "Please enter a message")
		http.Redirect(w, r, threadPath(threadID), http.StatusSeeOther)
		return
	}

	message, err := h.MessageService.Reply(r.Context(), threadID, content)
	if err != nil {
		h.fail(w, r, err, "Failed to post reply", threadPath(threadID))
		return
	}

	setFlash(w, FlashSuccess, "Reply posted successfully!")
	http.Redirect(w, r, fmt.Sprintf("%s#message-%d", threadPath(threadID), message.ID), http.StatusSeeOther)
}

func (h *Handlers) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid message id", http.StatusBadRequest)
		return
	}
	back := returnPath(r, id)

	content := strings.TrimSpace(r.PostFormValue("content"))
	if content == "" {
		setFlash(w, FlashError, "Message content cannot be empty")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if _, err := h.MessageService.Update(r.Context(), id, content); err != nil {
		h.fail(w, r, err, "Failed to update message", back)
		return
	}

	setFlash(w, FlashSuccess, "Message updated successfully")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid message id", http.StatusBadRequest)
		return
	}
	back := strings.SplitN(returnPath(r, id), "#", 2)[0]

	if err := h.MessageService.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete message", back)
		return
	}

	setFlash(w, FlashSuccess, "Message deleted successfully")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// voteFormState reads the widget's local copy of the counters from the form.
func voteFormState(r *http.Request) vote.State {
	up, _ := strconv.Atoi(r.PostFormValue("upvotes"))
	down, _ := strconv.Atoi(r.PostFormValue("downvotes"))
	current, _ := models.ParseVoteType(r.PostFormValue("user_vote"))
	return vote.State{Upvotes: max(up, 0), Downvotes: max(down, 0), UserVote: current}
}

func (h *Handlers) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	voteType, ok := models.ParseVoteType(r.PostFormValue("vote_type"))
	if !ok {
		WriteError(w, "Vote type must be UPVOTE or DOWNVOTE", http.StatusBadRequest)
		return
	}

	next, err := h.VoteService.Cast(r.Context(), id, voteFormState(r), voteType)
	if errors.Is(err, api.ErrUnauthorized) {
		h.fail(w, r, err, "", "")
		return
	}

	if middleware.WantsJSON(r) {
		resp := newVoteResponse(next)
		if err != nil && h.Cfg.VoteRollback {
			resp.Error = api.Message(err, "Failed to vote")
		}
		writeSuccess(w, resp, http.StatusOK)
		return
	}

	if err != nil && h.Cfg.VoteRollback {
		setFlash(w, FlashError, api.Message(err, "Failed to vote"))
	}
	http.Redirect(w, r, returnPath(r, id), http.StatusSeeOther)
}

func (h *Handlers) VoteCounts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	state, err := h.VoteService.Counts(r.Context(), id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.fail(w, r, err, "", "")
			return
		}
		WriteError(w, api.Message(err, "Failed to fetch vote counts"), statusFor(err))
		return
	}

	writeSuccess(w, newVoteResponse(state), http.StatusOK)
}
