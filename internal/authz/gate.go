// Package authz is the single authorization gate for mutations of shared
// resources. Every rule that used to live inline in a handler (ownership,
// admin self-protection, paused accounts, cross-owner filing) is decided
// here, so a new handler cannot forget one.
//
// The gate is a pure decision function over already-loaded rows: it never
// touches the database and never caches. Callers load the acting user and the
// target fresh, ask, then act.
package authz

import (
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

const (
	ReasonNotOwner       = "not owner"
	ReasonSelfProtect    = "self-protect"
	ReasonAccountPaused  = "account paused"
	ReasonFolderNotOwned = "folder not owned"
	ReasonAdminRequired  = "admin required"
)

// Decision is the gate's verdict. A denied decision always names its reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// MutateOwned decides whether principal may mutate or delete a resource owned
// by ownerID. Owners and administrators pass; everyone else is denied.
func MutateOwned(principal *models.User, ownerID string) Decision {
	if principal == nil {
		return Deny(ReasonNotOwner)
	}
	if principal.ID == ownerID || principal.IsAdmin {
		return Allow()
	}
	return Deny(ReasonNotOwner)
}

// CreateContent decides whether principal may create new artworks or folders.
// Paused accounts are blocked until an administrator clears the flag.
func CreateContent(principal *models.User) Decision {
	if principal == nil {
		return Deny(ReasonNotOwner)
	}
	if principal.IsPaused {
		return Deny(ReasonAccountPaused)
	}
	return Allow()
}

// AssignFolder decides whether principal may file an artwork into folder.
// Filing into another user's folder is never permitted, admin or not.
func AssignFolder(principal *models.User, folder *models.Folder) Decision {
	if principal == nil || folder == nil {
		return Deny(ReasonFolderNotOwned)
	}
	if folder.CreatorID != principal.ID {
		return Deny(ReasonFolderNotOwned)
	}
	return Allow()
}

// AdminAction decides whether principal may use the moderation surface at all.
func AdminAction(principal *models.User) Decision {
	if principal == nil || !principal.IsAdmin {
		return Deny(ReasonAdminRequired)
	}
	return Allow()
}

// AdminUpdateUser decides whether admin may patch the target user's flags.
// An administrator can never remove their own admin flag.
func AdminUpdateUser(admin *models.User, targetID string, setAdmin *bool) Decision {
	if d := AdminAction(admin); !d.Allowed {
		return d
	}
	if targetID == admin.ID && setAdmin != nil && !*setAdmin {
		return Deny(ReasonSelfProtect)
	}
	return Allow()
}

// AdminDeleteUser decides whether admin may delete the target account.
// Self-deletion through the moderation surface is always denied.
func AdminDeleteUser(admin *models.User, targetID string) Decision {
	if d := AdminAction(admin); !d.Allowed {
		return d
	}
	if targetID == admin.ID {
		return Deny(ReasonSelfProtect)
	}
	return Allow()
}
