package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"log"
	"net/http"
)

// Gate guards mutating endpoints behind a single shared credential pair
// supplied via HTTP Basic auth. Both fields are compared in constant time
// and rejected as a whole; the response never reveals which one was wrong.
type Gate struct {
	configured   bool
	usernameHash [sha256.Size]byte
	passwordHash [sha256.Size]byte
}

// NewGate builds a gate for the configured pair. Credentials are hashed once
// here so request handling only ever compares fixed-size digests.
func NewGate(username, password string) *Gate {
	return &Gate{
		configured:   username != "" && password != "",
		usernameHash: sha256.Sum256([]byte(username)),
		passwordHash: sha256.Sum256([]byte(password)),
	}
}

// Require wraps a handler so it only runs for authenticated requests.
// A missing server-side pair is a 500, distinct from a bad-credential 401.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.configured {
			log.Printf("[auth] credential pair is not configured")
			respondError(w, http.StatusInternalServerError, "authentication is not configured")
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok || !g.match(username, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		next(w, r)
	}
}

func (g *Gate) match(username, password string) bool {
	usernameHash := sha256.Sum256([]byte(username))
	passwordHash := sha256.Sum256([]byte(password))
	usernameOK := subtle.ConstantTimeCompare(usernameHash[:], g.usernameHash[:])
	passwordOK := subtle.ConstantTimeCompare(passwordHash[:], g.passwordHash[:])
	return usernameOK&passwordOK == 1
}
