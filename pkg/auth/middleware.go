package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/veridlabs/biomint-middleware/pkg/app/errors"
	apphttp "github.com/veridlabs/biomint-middleware/pkg/app/http"
)

type contextKey string

// ContextKeySubject is the context key for the authenticated token subject
const ContextKeySubject contextKey = "subject"

// SubjectFromContext retrieves the authenticated subject from the context
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(ContextKeySubject).(string)
	return sub, ok
}

// Middleware returns a chi middleware enforcing bearer token auth. A nil
// validator disables enforcement and passes every request through.
func Middleware(validator *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(nil, "missing bearer token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, "invalid token"))
				return
			}

			if sub, ok := claims["sub"].(string); ok {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeySubject, sub))
			}
			next.ServeHTTP(w, r)
		})
	}
}
