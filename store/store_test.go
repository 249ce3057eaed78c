package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruze/models"
)

func TestCreateChatInsertsAtFrontAndActivates(t *testing.T) {
	s := New()
	first := s.CreateChat()
	second := s.CreateChat()

	chats := s.Chats()
	require.Len(t, chats, 2)
	assert.Equal(t, second.ID, chats[0].ID)
	assert.Equal(t, first.ID, chats[1].ID)
	assert.Equal(t, second.ID, s.ActiveID())
	assert.Equal(t, models.PlaceholderTitle, chats[0].Title)
}

func TestReplaceAllActivatesMostRecentWhenNoneActive(t *testing.T) {
	s := New()
	a := models.NewChat()
	b := models.NewChat()
	s.ReplaceAll([]models.Chat{a, b})

	assert.Equal(t, a.ID, s.ActiveID())
	assert.Len(t, s.Chats(), 2)
}

func TestReplaceAllKeepsExistingActivePointer(t *testing.T) {
	s := New()
	c := s.CreateChat()
	s.ReplaceAll([]models.Chat{c, models.NewChat()})
	assert.Equal(t, c.ID, s.ActiveID())
}

func TestFoldConcatenatesDeltasInOrder(t *testing.T) {
	s := New()
	c := s.CreateChat()
	s.AppendUserMessage(c.ID, "Hello")
	msgID, ok := s.BeginAssistantMessage(c.ID)
	require.True(t, ok)

	deltas := []string{"Hi", " ", "there", "!"}
	for _, d := range deltas {
		require.True(t, s.FoldAssistantChunk(c.ID, msgID, d))
	}

	got, ok := s.Chat(c.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Hi there!", got.Messages[1].Content)
	// the user turn is untouched
	assert.Equal(t, "Hello", got.Messages[0].Content)
}

func TestFoldDoesNotTouchOtherChats(t *testing.T) {
	s := New()
	other := s.CreateChat()
	s.AppendUserMessage(other.ID, "untouched")
	target := s.CreateChat()
	s.AppendUserMessage(target.ID, "question")
	msgID, _ := s.BeginAssistantMessage(target.ID)

	s.FoldAssistantChunk(target.ID, msgID, "answer")

	got, _ := s.Chat(other.ID)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "untouched", got.Messages[0].Content)
}

func TestFinalizeMatchesFoldedState(t *testing.T) {
	s := New()
	c := s.CreateChat()
	s.AppendUserMessage(c.ID, "Hello")
	msgID, _ := s.BeginAssistantMessage(c.ID)
	s.FoldAssistantChunk(c.ID, msgID, "Hi")
	s.FoldAssistantChunk(c.ID, msgID, " there")

	// finalize with the exact concatenation of all deltas
	require.True(t, s.FinalizeAssistantMessage(c.ID, msgID, "Hi there", ""))

	got, _ := s.Chat(c.ID)
	assert.Equal(t, "Hi there", got.Messages[1].Content)
	assert.Equal(t, models.PlaceholderTitle, got.Title)
}

func TestFinalizeSetsDerivedTitleOnce(t *testing.T) {
	s := New()
	c := s.CreateChat()
	s.AppendUserMessage(c.ID, "Hello")
	msgID, _ := s.BeginAssistantMessage(c.ID)

	s.FinalizeAssistantMessage(c.ID, msgID, "Hi there", "Hello")

	got, _ := s.Chat(c.ID)
	assert.Equal(t, "Hello", got.Title)
}

func TestOperationsOnUnknownChatAreNoOps(t *testing.T) {
	s := New()
	s.CreateChat()

	_, ok := s.AppendUserMessage("missing", "x")
	assert.False(t, ok)
	_, ok = s.BeginAssistantMessage("missing")
	assert.False(t, ok)
	assert.False(t, s.FoldAssistantChunk("missing", "m", "x"))
	assert.False(t, s.DeleteChat("missing"))
	assert.False(t, s.SelectChat("missing"))
	assert.Len(t, s.Chats(), 1)
}

func TestDeleteActiveChatActivatesNextRemaining(t *testing.T) {
	s := New()
	oldest := s.CreateChat()
	middle := s.CreateChat()
	newest := s.CreateChat()
	require.Equal(t, newest.ID, s.ActiveID())

	require.True(t, s.DeleteChat(newest.ID))
	assert.Equal(t, middle.ID, s.ActiveID())

	require.True(t, s.DeleteChat(middle.ID))
	assert.Equal(t, oldest.ID, s.ActiveID())

	require.True(t, s.DeleteChat(oldest.ID))
	assert.Equal(t, "", s.ActiveID())
	assert.Empty(t, s.Chats())
}

func TestDeleteNonActiveChatKeepsActivePointer(t *testing.T) {
	s := New()
	other := s.CreateChat()
	active := s.CreateChat()

	require.True(t, s.DeleteChat(other.ID))
	assert.Equal(t, active.ID, s.ActiveID())
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	c := s.CreateChat()
	s.AppendUserMessage(c.ID, "Hello")
	msgID, _ := s.BeginAssistantMessage(c.ID)

	before, _ := s.Chat(c.ID)
	s.FoldAssistantChunk(c.ID, msgID, "partial")

	// the earlier snapshot is not mutated in place
	assert.Equal(t, "", before.Messages[1].Content)
	after, _ := s.Chat(c.ID)
	assert.Equal(t, "partial", after.Messages[1].Content)
}
