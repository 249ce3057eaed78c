package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cruze/models"
)

// chatDocument is the persisted shape of a chat, one document per chat
// scoped by user_code.
type chatDocument struct {
	ChatID    string           `bson:"chat_id"`
	UserCode  string           `bson:"user_code"`
	Title     string           `bson:"title"`
	Messages  []models.Message `bson:"messages"`
	CreatedAt int64            `bson:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

func (d chatDocument) toModel() models.Chat {
	msgs := d.Messages
	if msgs == nil {
		msgs = []models.Message{}
	}
	return models.Chat{
		ID:        d.ChatID,
		Title:     d.Title,
		Messages:  msgs,
		CreatedAt: d.CreatedAt,
	}
}

type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection("chats")}
}

// FindAllByUser returns the user's chats ordered by created_at descending.
func (r *ChatRepository) FindAllByUser(ctx context.Context, userCode string) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_code": userCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chats []models.Chat
	for cur.Next(ctx) {
		var doc chatDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		chats = append(chats, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return chats, nil
}

// UpsertChat merge-writes the full chat document identified by
// (user_code, chat_id). Safe to call whether or not the document exists.
func (r *ChatRepository) UpsertChat(ctx context.Context, userCode string, c models.Chat) (*mongo.UpdateResult, error) {
	filter := bson.M{"user_code": userCode, "chat_id": c.ID}
	update := bson.M{
		"$set": bson.M{
			"title":      c.Title,
			"messages":   c.Messages,
			"created_at": c.CreatedAt,
			"updated_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// UpdateMessages merge-writes only the messages field. The upsert flag makes
// it create-on-write, so it never fails because the document is missing.
func (r *ChatRepository) UpdateMessages(ctx context.Context, userCode, chatID string, messages []models.Message) error {
	filter := bson.M{"user_code": userCode, "chat_id": chatID}
	update := bson.M{
		"$set": bson.M{
			"messages":   messages,
			"updated_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// UpdateTitle merge-writes only the title field.
func (r *ChatRepository) UpdateTitle(ctx context.Context, userCode, chatID, title string) error {
	filter := bson.M{"user_code": userCode, "chat_id": chatID}
	update := bson.M{
		"$set": bson.M{
			"title":      title,
			"updated_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// Delete removes the chat document. Deleting a missing document is not an
// error.
func (r *ChatRepository) Delete(ctx context.Context, userCode, chatID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_code": userCode, "chat_id": chatID})
	return err
}
