package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

const (
	apiKeyHeader    = "X-API-Key"
	timeTokenHeader = "X-Time-Token"
	apiKeyEnv       = "INTERNAL_API_KEY"

	// TimeTokenTTL is how long a generated time token is accepted.
	TimeTokenTTL = 5 * time.Minute
)

// timeTokenKey derives the fernet key used for time tokens from the API key.
func timeTokenKey(apiKey string) *fernet.Key {
	k := fernet.Key(sha256.Sum256([]byte(apiKey)))
	return &k
}

// GenerateTimeToken returns a fernet token carrying the current time, signed with
// a key derived from apiKey. Clients send it in the X-Time-Token header.
func GenerateTimeToken(apiKey string) string {
	return GenerateTimeTokenAt(apiKey, time.Now())
}

// GenerateTimeTokenAt is GenerateTimeToken with an explicit signing time.
func GenerateTimeTokenAt(apiKey string, at time.Time) string {
	tok, err := fernet.EncryptAndSignAtTime([]byte(strconv.FormatInt(at.Unix(), 10)), timeTokenKey(apiKey), at)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate time token")
		return ""
	}
	return string(tok)
}

// APIKeyMiddleware protects destructive routes. A request must carry the
// configured key in X-API-Key and a time token younger than TimeTokenTTL in
// X-Time-Token. Without INTERNAL_API_KEY every request is refused with 500.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv(apiKeyEnv)
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication failed", "Authentication not loaded")
			return
		}

		provided := r.Header.Get(apiKeyHeader)
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Invalid API key")
			return
		}

		token := r.Header.Get(timeTokenHeader)
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing Time token")
			return
		}
		if fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, []*fernet.Key{timeTokenKey(apiKey)}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
