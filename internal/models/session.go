package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Session is the client's view of who is signed in. The zero value is the
// anonymous session.
type Session struct {
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

func NewSession(resp AuthResponse) Session {
	return Session{
		Token:    resp.Token,
		Role:     ParseRole(string(resp.Role)),
		Verified: resp.Verified,
	}
}

func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.Role != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin || s.Role == RoleSuperAdmin
}

func (s Session) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

func (s Session) IsDev() bool {
	return s.Role == RoleDev
}

func (s Session) IsUser() bool {
	return s.Role == RoleUser
}

// Subject returns the "sub" claim of the session token. The client holds no
// signing key, so the token is decoded without verification and the result
// is only used for display and ownership hints; the server stays the
// authority.
func (s Session) Subject() string {
	if s.Token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
