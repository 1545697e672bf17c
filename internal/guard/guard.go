// Package guard decides whether a view may be rendered for a session.
package guard

import (
	"devchatClient/internal/models"
)

const (
	LoginPath   = "/login"
	DefaultPath = "/dashboard"
)

type State int

const (
	Loading State = iota
	Anonymous
	Unprivileged
	Privileged
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Unprivileged:
		return "authenticated-unprivileged"
	case Privileged:
		return "authenticated-privileged"
	default:
		return "unknown"
	}
}

// Requirement is the role predicate a guarded view needs on top of being
// signed in.
type Requirement struct {
	Name    string
	Allowed func(models.Session) bool
}

var (
	Protected = Requirement{Name: "protected", Allowed: func(models.Session) bool { return true }}
	Admin     = Requirement{Name: "admin", Allowed: models.Session.IsAdmin}
	User      = Requirement{Name: "user", Allowed: models.Session.IsUser}
)

type Decision struct {
	State    State
	Redirect string
}

// Render reports whether the guarded view should be shown.
func (d Decision) Render() bool {
	return d.State == Privileged
}

// Evaluate runs the guard transition. hydrated is false while the persisted
// session has not been read yet.
func Evaluate(hydrated bool, sess models.Session, req Requirement) Decision {
	switch {
	case !hydrated:
		return Decision{State: Loading}
	case !sess.IsAuthenticated():
		return Decision{State: Anonymous, Redirect: LoginPath}
	case req.Allowed != nil && !req.Allowed(sess):
		return Decision{State: Unprivileged, Redirect: DefaultPath}
	default:
		return Decision{State: Privileged}
	}
}
