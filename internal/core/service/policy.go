package service

import "context"

// ChangeTarget identifies the resource a mutation is aimed at. Owners holds
// the usernames entitled to the resource: the lender for an item, both
// parties for a contract. Usernames are stored lowercased, so membership
// checks compare exactly.
type ChangeTarget struct {
	Kind   string // "contract" or "item"
	ID     int64
	Owners []string
}

// OwnedBy reports whether username is one of the target's owners.
func (t ChangeTarget) OwnedBy(username string) bool {
	for _, owner := range t.Owners {
		if owner == username {
			return true
		}
	}
	return false
}

// ChangePolicy decides whether an identity may mutate a resource. It is the
// single authorization seam inside the services; swapping the implementation
// changes the policy everywhere.
type ChangePolicy interface {
	CanModify(ctx context.Context, actingUsername string, target ChangeTarget) bool
}

// AllowAll is the default policy: every authenticated identity may mutate
// every resource. Real deployments replace it with an ownership or role
// check; the party split on contract updates is enforced separately by the
// contract service regardless of policy.
type AllowAll struct{}

func (AllowAll) CanModify(context.Context, string, ChangeTarget) bool { return true }

// OwnersOnly restricts mutations to the target's owners.
type OwnersOnly struct{}

func (OwnersOnly) CanModify(_ context.Context, actingUsername string, target ChangeTarget) bool {
	return target.OwnedBy(actingUsername)
}
