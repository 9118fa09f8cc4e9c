package domain

import (
	"net/http"
	"strings"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// AccessKind classifies what an access rule demands from the caller.
type AccessKind int

const (
	// AccessPublic allows any caller, authenticated or not.
	AccessPublic AccessKind = iota
	// AccessAuthenticated requires a principal with any role.
	AccessAuthenticated
	// AccessRole requires a principal holding a specific role.
	AccessRole
)

// Requirement is the outcome of matching a request against the policy table.
type Requirement struct {
	Kind AccessKind
	Role Role
}

// AccessRule maps (method, path pattern) to a requirement. Rules are evaluated
// in order; the first match wins, so specific rules must precede general ones.
//
// Pattern syntax: an exact path, or a "/prefix/**" pattern matching the prefix
// itself and everything below it. "/**" matches every path. Method "*" matches
// every method.
type AccessRule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// Matches reports whether the rule applies to the given method and path.
func (r AccessRule) Matches(method, path string) bool {
	if r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}
	return matchPattern(r.Pattern, path)
}

func matchPattern(pattern, path string) bool {
	if pattern == "/**" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}

// Policy is the ordered access rule table. It is immutable after construction
// and safe for unsynchronized concurrent reads.
type Policy struct {
	rules []AccessRule
}

// NewPolicy builds a policy from ordered rules. The final rule must be a
// catch-all (method "*", pattern "/**") so that every request matches exactly
// one rule; NewPolicy returns an error otherwise.
func NewPolicy(rules []AccessRule) (*Policy, error) {
	if len(rules) == 0 {
		return nil, apperrors.New("policy requires at least a catch-all rule")
	}
	last := rules[len(rules)-1]
	if last.Method != "*" || last.Pattern != "/**" {
		return nil, apperrors.New("policy must end with a catch-all rule")
	}
	return &Policy{rules: rules}, nil
}

// Match returns the requirement of the first matching rule. The catch-all
// guarantees a match.
func (p *Policy) Match(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.Matches(method, path) {
			return rule.Requirement
		}
	}
	// Unreachable given the catch-all invariant.
	return Requirement{Kind: AccessAuthenticated}
}

// Public reports whether the first matching rule is public, meaning the
// request must be reachable without any authentication being enforced.
func (p *Policy) Public(method, path string) bool {
	return p.Match(method, path).Kind == AccessPublic
}

// Authorize checks the principal (or its absence) against the first matching
// rule. It returns nil on allow, ErrUnauthorized when a rule demands a
// principal and none is present, and ErrForbidden when the principal's role is
// insufficient.
func (p *Policy) Authorize(method, path string, principal *Principal) error {
	req := p.Match(method, path)

	switch req.Kind {
	case AccessPublic:
		return nil
	case AccessAuthenticated:
		if principal == nil {
			return apperrors.Wrap(apperrors.ErrUnauthorized, "authentication required")
		}
		return nil
	case AccessRole:
		if principal == nil {
			return apperrors.Wrap(apperrors.ErrUnauthorized, "authentication required")
		}
		if principal.Role != req.Role {
			return apperrors.Wrap(apperrors.ErrForbidden, "insufficient role")
		}
		return nil
	default:
		return apperrors.Wrap(apperrors.ErrForbidden, "unknown access kind")
	}
}

// DefaultAccessRules returns the access table for the API. This is policy
// data, not pipeline logic: tightening an endpoint means editing this table.
//
// The catalog read endpoints are deliberately public so the client-facing
// price board works without a login; revisit once client pages authenticate.
func DefaultAccessRules() []AccessRule {
	public := Requirement{Kind: AccessPublic}
	authenticated := Requirement{Kind: AccessAuthenticated}
	admin := Requirement{Kind: AccessRole, Role: RoleAdmin}

	return []AccessRule{
		// CORS preflight must always pass through.
		{Method: http.MethodOptions, Pattern: "/**", Requirement: public},

		// Landing, error, and federated login routes.
		{Method: "*", Pattern: "/", Requirement: public},
		{Method: "*", Pattern: "/error", Requirement: public},
		{Method: "*", Pattern: "/oauth2/**", Requirement: public},
		{Method: "*", Pattern: "/login/oauth2/code/**", Requirement: public},
		{Method: "*", Pattern: "/auth/login/success", Requirement: public},

		// Organizations: open reads and creation, admin-only updates.
		{Method: http.MethodGet, Pattern: "/api/organizations/**", Requirement: public},
		{Method: http.MethodPost, Pattern: "/api/organizations", Requirement: public},
		{Method: http.MethodPut, Pattern: "/api/organizations/**", Requirement: admin},

		// Catalog reads power the public client page.
		{Method: http.MethodGet, Pattern: "/api/categories/**", Requirement: public},
		{Method: http.MethodGet, Pattern: "/api/inventory/**", Requirement: public},

		// Everything else requires an authenticated principal.
		{Method: "*", Pattern: "/**", Requirement: authenticated},
	}
}
