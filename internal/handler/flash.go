package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "devchat_flash"

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

func setFlash(w http.ResponseWriter, kind FlashKind, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(string(kind) + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// consumeFlash returns the pending flash, if any, and clears it.
func consumeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(raw), "|")
	if !ok || message == "" {
		return nil
	}

	switch k := FlashKind(kind); k {
	case FlashSuccess, FlashError, FlashInfo:
		return &Flash{Kind: k, Message: message}
	default:
		return nil
	}
}
