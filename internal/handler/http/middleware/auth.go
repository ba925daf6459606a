package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/response"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
)

// AuthRequired verifies the upstream-issued token and attaches the resolved
// caller identity to the request context. Claims carry the tenant and worker
// the token was issued for.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			tenantID, _ := claims["tenant_id"].(string)
			if tenantID == "" {
				response.Unauthorized(w, "Token has no tenant")
				return
			}
			workerID, _ := claims["worker_id"].(string)
			workerName, _ := claims["worker_name"].(string)

			identity := authctx.Identity{
				TenantID:   tenantID,
				WorkerID:   workerID,
				WorkerName: workerName,
				ClientIP:   clientIP(r),
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}

// clientIP prefers the forwarded address set by the reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
