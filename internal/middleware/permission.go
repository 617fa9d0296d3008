package middleware

import (
	"github.com/Kyz7/beritablog/internal/response"

	"github.com/gofiber/fiber/v2"
)

type Role string

const (
	RolePublic Role = "public"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

type Principal struct {
	Role     Role
	ID       uint
	Username string
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsAuthor() bool { return p.Role == RoleAuthor }

type Action string

const (
	ActionRead        Action = "read"
	ActionReadDeleted Action = "read_deleted"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionToggle      Action = "toggle"
)

type Kind string

const (
	KindCategory  Kind = "category"
	KindBlog      Kind = "blog"
	KindPost      Kind = "post"
	KindProfile   Kind = "profile"
	KindPenulis   Kind = "penulis"
	KindIklan     Kind = "iklan"
	KindVisitor   Kind = "visitor"
	KindDashboard Kind = "dashboard"
)

// Resource identifies what is being acted on. OwnerID is the owning
// author for posts and profiles and zero otherwise.
type Resource struct {
	Kind    Kind
	OwnerID uint
}

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotOwner        Reason = "not_owner"
	ReasonAdminOnly       Reason = "admin_only"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision { return Decision{Reason: r} }

// publicActions lists what anyone may do without a token.
var publicActions = map[Kind]map[Action]bool{
	KindCategory: {ActionRead: true},
	KindBlog:     {ActionRead: true},
	KindIklan:    {ActionRead: true},
	KindVisitor:  {ActionCreate: true},
}

// authorOwned lists what an author may do to resources they own.
var authorOwned = map[Kind]map[Action]bool{
	KindPost: {
		ActionRead: true, ActionReadDeleted: true, ActionUpdate: true, ActionDelete: true,
	},
	KindBlog:    {ActionReadDeleted: true},
	KindProfile: {ActionRead: true, ActionUpdate: true},
}

// Authorize is the single access predicate for every protected operation.
func Authorize(p Principal, action Action, res Resource) Decision {
	if p.IsAdmin() {
		return allow
	}
	if publicActions[res.Kind][action] {
		return allow
	}
	if p.Role != RoleAuthor || p.ID == 0 {
		return deny(ReasonUnauthenticated)
	}

	if res.Kind == KindPost && action == ActionCreate {
		return allow
	}
	if authorOwned[res.Kind][action] {
		if res.OwnerID == p.ID {
			return allow
		}
		return deny(ReasonNotOwner)
	}
	return deny(ReasonAdminOnly)
}

// Deny writes the HTTP answer for a refused decision.
func Deny(c *fiber.Ctx, d Decision) error {
	switch d.Reason {
	case ReasonUnauthenticated:
		return response.Unauthorized(c, "Authentication required")
	case ReasonNotOwner:
		return response.Forbidden(c, "You can only manage your own content")
	default:
		return response.Forbidden(c, "You don't have permission to perform this action")
	}
}

// Require guards a route with Authorize for resources that have no owner.
func Require(action Action, kind Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d := Authorize(PrincipalFrom(c), action, Resource{Kind: kind}); !d.Allowed {
			return Deny(c, d)
		}
		return c.Next()
	}
}

// Check is the in-handler form of Require for owned resources. It
// returns nil when allowed and the written error response otherwise.
func Check(c *fiber.Ctx, action Action, res Resource) (bool, error) {
	d := Authorize(PrincipalFrom(c), action, res)
	if d.Allowed {
		return true, nil
	}
	return false, Deny(c, d)
}
