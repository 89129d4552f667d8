// Package identity carries the caller roles attached to JWT claims. User
// management itself lives outside this service; only the role taxonomy is
// needed to gate admin routes.
package identity

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleAdmin:
		return true
	default:
		return false
	}
}
