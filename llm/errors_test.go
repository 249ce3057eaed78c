package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func TestIsPermissionErrorNil(t *testing.T) {
	if IsPermissionError(nil) {
		t.Fatalf("nil is not a permission error")
	}
}

func TestIsPermissionErrorGenaiStatus(t *testing.T) {
	err := genai.APIError{Code: 403, Status: "PERMISSION_DENIED", Message: "the caller does not have permission"}
	if !IsPermissionError(err) {
		t.Fatalf("expected genai 403 to classify as permission error")
	}
}

func TestIsPermissionErrorGenaiUnauthenticated(t *testing.T) {
	err := fmt.Errorf("generate: %w", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"})
	if !IsPermissionError(err) {
		t.Fatalf("expected wrapped genai 401 to classify as permission error")
	}
}

func TestIsPermissionErrorOpenAI(t *testing.T) {
	err := &openai.APIError{HTTPStatusCode: 401, Message: "Incorrect API key provided"}
	if !IsPermissionError(err) {
		t.Fatalf("expected openai 401 to classify as permission error")
	}
}

func TestIsPermissionErrorMessageHeuristic(t *testing.T) {
	if !IsPermissionError(errors.New("API key not valid. Please pass a valid API key.")) {
		t.Fatalf("expected invalid-key message to classify as permission error")
	}
}

func TestIsPermissionErrorGenericError(t *testing.T) {
	if IsPermissionError(errors.New("connection reset by peer")) {
		t.Fatalf("connectivity error must not classify as permission error")
	}
	if IsPermissionError(&openai.APIError{HTTPStatusCode: 429}) {
		t.Fatalf("rate limit must not classify as permission error")
	}
}
