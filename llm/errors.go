package llm

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// IsPermissionError reports whether a collaborator failure is
// authorization-flavored (bad or missing API key, disabled API) rather than
// a generic service error. Callers present these differently.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
		switch apiErr.Status {
		case "PERMISSION_DENIED", "UNAUTHENTICATED":
			return true
		}
	}

	var oaErr *openai.APIError
	if errors.As(err, &oaErr) {
		switch oaErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission") ||
		strings.Contains(msg, "api key not valid") ||
		strings.Contains(msg, "unauthenticated")
}
