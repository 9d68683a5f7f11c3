package middleware

// identity.go defines helpers shared across middleware files.  It
// provides a principal extraction function used for keying: the
// rate limiter buckets requests by it and the response cache
// partitions entries by it, so one user's ledger responses are
// never replayed to another.

import (
    "crypto/sha256"
    "fmt"
    "strings"

    "github.com/labstack/echo/v4"
)

// userID returns a stable principal key for the request.  When
// JWTAuth already ran it uses the user id from the context.  Both
// the cache and the rate limiter sit in front of JWTAuth, so for
// most requests the context is still empty; they then key by a
// digest of the bearer credential instead.  Two users can never
// share a credential, and a credential that never passed
// authentication never produces a cacheable 200, so keying by it is
// as safe as keying by the verified id.  Requests with no
// credential at all share the "anon" key.
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    case uint64:
        return fmt.Sprintf("%d", v)
    case int64:
        return fmt.Sprintf("%d", v)
    }
    auth := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(auth, "Bearer ") && len(auth) > len("Bearer ") {
        sum := sha256.Sum256([]byte(auth))
        return fmt.Sprintf("tok:%x", sum[:8])
    }
    return "anon"
}
