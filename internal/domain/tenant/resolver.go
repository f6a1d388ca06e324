// Package tenant resolves the acting company of a request.
package tenant

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Invoicing-api/internal/domain"
)

// HeaderName request header carrying an explicit company id.
const HeaderName = "X-Company-Id"

// Sources candidate tenant values, highest precedence first.
type Sources struct {
	Claim    string // companyId claim of the authenticated token
	Header   string // X-Company-Id
	Pipeline string // value resolved earlier in the pipeline
}

// Resolve returns the first candidate that is a valid, non-nil UUID in
// canonical form. When none qualifies it returns domain.ErrInvalidTenant.
func Resolve(s Sources) (string, error) {
	for _, candidate := range []string{s.Claim, s.Header, s.Pipeline} {
		if id, ok := Parse(candidate); ok {
			return id, nil
		}
	}
	return "", domain.ErrInvalidTenant
}

// Parse validates a single company id.
func Parse(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return "", false
	}
	return id.String(), true
}
