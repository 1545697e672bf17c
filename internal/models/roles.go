package models

import (
	"slices"
	"strings"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleDev        Role = "DEV"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ParseRole normalizes a stored or user-supplied role. Unknown values yield
// the empty role, which grants nothing.
func ParseRole(value string) Role {
	switch r := Role(strings.ToUpper(strings.TrimSpace(value))); r {
	case RoleUser, RoleDev, RoleAdmin, RoleSuperAdmin:
		return r
	default:
		return ""
	}
}

func (r Role) String() string {
	return string(r)
}

// Lower is used for CSS badge classes.
func (r Role) Lower() string {
	return strings.ToLower(string(r))
}

type VoteType string

const (
	VoteNone     VoteType = ""
	VoteUpvote   VoteType = "UPVOTE"
	VoteDownvote VoteType = "DOWNVOTE"
)

func ParseVoteType(value string) (VoteType, bool) {
	switch v := VoteType(strings.ToUpper(strings.TrimSpace(value))); v {
	case VoteUpvote, VoteDownvote:
		return v, true
	case "UP":
		return VoteUpvote, true
	case "DOWN":
		return VoteDownvote, true
	default:
		return VoteNone, false
	}
}

// Opposite returns the other vote type; VoteNone has no opposite.
func (v VoteType) Opposite() VoteType {
	switch v {
	case VoteUpvote:
		return VoteDownvote
	case VoteDownvote:
		return VoteUpvote
	default:
		return VoteNone
	}
}

func HasPermission(role Role, required ...Role) bool {
	if role == "" || len(required) == 0 {
		return false
	}
	return slices.Contains(required, role)
}

func CanCreateThread(role Role) bool {
	return HasPermission(role, RoleUser, RoleDev, RoleAdmin, RoleSuperAdmin)
}

func CanCreateMessage(role Role) bool {
	return HasPermission(role, RoleDev, RoleAdmin, RoleSuperAdmin)
}

func CanVote(role Role) bool {
	return HasPermission(role, RoleUser, RoleDev, RoleAdmin, RoleSuperAdmin)
}

func CanAdministrate(role Role) bool {
	return HasPermission(role, RoleAdmin, RoleSuperAdmin)
}

// CanModerate allows admins everything and everyone else their own content.
func CanModerate(role Role, ownerName, currentName string) bool {
	if CanAdministrate(role) {
		return true
	}
	return ownerName != "" && ownerName == currentName
}
