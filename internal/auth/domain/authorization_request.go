package domain

import (
	"net/url"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// AuthorizationRequest holds the outbound parameters for one login attempt at
// an identity provider. It is created fresh per attempt and discarded after
// the provider redirects back.
type AuthorizationRequest struct {
	// Provider is the name of the identity provider registration.
	Provider string
	// State is the random anti-forgery value echoed back on the callback.
	State string
	// RedirectURL is the fully built provider authorization endpoint URL the
	// browser is sent to, query parameters included.
	RedirectURL string
}

// WithParam returns a copy of the request whose redirect URL carries the given
// query parameter, replacing any existing value. The receiver is not modified.
func (r AuthorizationRequest) WithParam(key, value string) (AuthorizationRequest, error) {
	u, err := url.Parse(r.RedirectURL)
	if err != nil {
		return r, apperrors.Wrap(err, "parse authorization request url")
	}

	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()

	r.RedirectURL = u.String()
	return r, nil
}

// ErrProviderNotFound indicates a login referenced an unregistered identity provider.
var ErrProviderNotFound = apperrors.Wrap(apperrors.ErrNotFound, "identity provider not found")
