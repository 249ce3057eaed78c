package gateway

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassifyNil(t *testing.T) {
	if classify(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
}

func TestClassifyCommandErrorUnauthorized(t *testing.T) {
	err := classify(mongo.CommandError{Code: 13, Message: "command find requires authentication"})
	if !IsPermissionDenied(err) {
		t.Fatalf("expected code 13 to classify as permission denied, got %v", err)
	}
}

func TestClassifyCommandErrorAuthenticationFailed(t *testing.T) {
	err := classify(mongo.CommandError{Code: 18, Message: "Authentication failed."})
	if !IsPermissionDenied(err) {
		t.Fatalf("expected code 18 to classify as permission denied, got %v", err)
	}
}

func TestClassifyMessageHeuristics(t *testing.T) {
	cases := []string{
		"user is not authorized on cruze to execute command",
		"Unauthorized: find on chats",
		"insufficient permission for this operation",
	}
	for _, msg := range cases {
		err := classify(errors.New(msg))
		if !IsPermissionDenied(err) {
			t.Fatalf("expected %q to classify as permission denied", msg)
		}
	}
}

func TestClassifyGenericErrorPassesThrough(t *testing.T) {
	orig := errors.New("connection refused")
	err := classify(orig)
	if IsPermissionDenied(err) {
		t.Fatalf("connectivity error must not classify as permission denied")
	}
	if !errors.Is(err, orig) {
		t.Fatalf("expected original error to be preserved")
	}
}

func TestIsPermissionDeniedSeesWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("load chats: %w", ErrPermissionDenied)
	if !IsPermissionDenied(err) {
		t.Fatalf("expected wrapped sentinel to be detected")
	}
}
