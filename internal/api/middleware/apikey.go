package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
)

// TimeTokenTTL is how long a time token stays valid after it is generated.
const TimeTokenTTL = 5 * time.Minute

// timeTokenKey derives the fernet key that signs time tokens from the API key.
func timeTokenKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	key, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(sum[:]))
	if err != nil {
		// A 32-byte digest always decodes.
		panic(err)
	}
	return key
}

// GenerateTimeToken returns a fernet token carrying the current unix time, signed with a key
// derived from apiKey. Clients send it as X-Time-Token next to X-API-Key.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(strconv.FormatInt(time.Now().Unix(), 10)), timeTokenKey(apiKey))
	if err != nil {
		slog.Error("failed to generate time token", "error", err)
		return ""
	}
	return string(token)
}

// APIKeyMiddleware guards internal endpoints. Requests need the INTERNAL_API_KEY in X-API-Key
// and a time token younger than TimeTokenTTL in X-Time-Token. The key is read from the
// environment on every request so it can be rotated without a restart.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("INTERNAL_API_KEY")
		if apiKey == "" {
			slog.Error("INTERNAL_API_KEY is not set; rejecting internal request", "path", r.URL.Path)
			response.RespondError(w, http.StatusInternalServerError, "Internal server error", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Invalid API key")
			return
		}

		token := r.Header.Get("X-Time-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Missing Time token")
			return
		}
		if fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, []*fernet.Key{timeTokenKey(apiKey)}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
