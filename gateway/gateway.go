// Package gateway propagates session-store mutations to the remote document
// store and loads its contents at session start. Local state is never rolled
// back when a write fails; the remote store is a best-effort durability
// layer for the running session.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"cruze/models"
	"cruze/repositories"
)

// ErrPermissionDenied marks failures caused by access-control configuration
// rather than connectivity. Callers surface these as a persistent
// notification with a manual retry instead of a transient one.
var ErrPermissionDenied = errors.New("permission denied")

// Gateway is the remote persistence contract consumed by the app layer.
// All writes are merge-upserts, so an update racing a create (or a delete)
// never fails on a missing document.
type Gateway interface {
	Load(ctx context.Context, userCode string) ([]models.Chat, error)
	Create(ctx context.Context, userCode string, chat models.Chat) error
	UpdateMessages(ctx context.Context, userCode, chatID string, messages []models.Message) error
	UpdateTitle(ctx context.Context, userCode, chatID, title string) error
	Remove(ctx context.Context, userCode, chatID string) error
}

// Mongo implements Gateway on top of the chats repository.
type Mongo struct {
	repo *repositories.ChatRepository
}

func NewMongo(repo *repositories.ChatRepository) *Mongo {
	return &Mongo{repo: repo}
}

func (g *Mongo) Load(ctx context.Context, userCode string) ([]models.Chat, error) {
	chats, err := g.repo.FindAllByUser(ctx, userCode)
	if err != nil {
		return nil, classify(err)
	}
	return chats, nil
}

func (g *Mongo) Create(ctx context.Context, userCode string, chat models.Chat) error {
	if _, err := g.repo.UpsertChat(ctx, userCode, chat); err != nil {
		return classify(err)
	}
	return nil
}

func (g *Mongo) UpdateMessages(ctx context.Context, userCode, chatID string, messages []models.Message) error {
	if err := g.repo.UpdateMessages(ctx, userCode, chatID, messages); err != nil {
		return classify(err)
	}
	return nil
}

func (g *Mongo) UpdateTitle(ctx context.Context, userCode, chatID, title string) error {
	if err := g.repo.UpdateTitle(ctx, userCode, chatID, title); err != nil {
		return classify(err)
	}
	return nil
}

func (g *Mongo) Remove(ctx context.Context, userCode, chatID string) error {
	if err := g.repo.Delete(ctx, userCode, chatID); err != nil {
		return classify(err)
	}
	return nil
}

// classify wraps access-control failures with ErrPermissionDenied so
// callers can branch with errors.Is.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isAuthError(err) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}

// Mongo server error codes for authentication/authorization failures.
const (
	codeUnauthorized        = 13
	codeAuthenticationError = 18
)

func isAuthError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == codeUnauthorized || cmdErr.Code == codeAuthenticationError {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission") ||
		strings.Contains(msg, "not authorized") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "authentication failed")
}

// IsPermissionDenied reports whether err is a permission-classified failure.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
