package entities

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInfluencer Role = "influencer"
)

type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// AdminPolicy decides the admin role at login time. Nothing stores the role.
type AdminPolicy struct {
	IDs         []string
	EmailDomain string
}

// IsAdmin matches a literal admin id or an email on the admin domain.
func (p AdminPolicy) IsAdmin(identifiers ...string) bool {
	domain := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(p.EmailDomain), "@"))
	for _, raw := range identifiers {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		for _, id := range p.IDs {
			if strings.EqualFold(strings.TrimSpace(id), value) {
				return true
			}
		}
		if domain != "" && strings.HasSuffix(strings.ToLower(value), "@"+domain) {
			return true
		}
	}
	return false
}

func (p AdminPolicy) Role(identifiers ...string) Role {
	if p.IsAdmin(identifiers...) {
		return RoleAdmin
	}
	return RoleInfluencer
}
