package domain

type ContextKey string

const OperatorContextKey ContextKey = "operator"

const RoleAdmin = "admin"

// Operator is the authenticated console user, built from token claims.
type Operator struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Sites []int64 `json:"sites"`
}

// CanManage reports whether the operator may act on siteID. Admins may act
// on any site.
func (o *Operator) CanManage(siteID int64) bool {
	if o == nil {
		return false
	}
	if o.Role == RoleAdmin {
		return true
	}
	for _, s := range o.Sites {
		if s == siteID {
			return true
		}
	}
	return false
}

// SiteContextKey holds the resolved site id of a site-scoped request.
const SiteContextKey ContextKey = "site_id"
