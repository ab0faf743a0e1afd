package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/model"
	"github.com/crypgene/advisor/internal/advisor/repo"
)

func testManager(t *testing.T, maxTurns int) (*MessagesManager, *repo.MemoryConversationRepository) {
	t.Helper()
	r := repo.NewMemoryConversationRepository()
	mm := NewMessagesManager(r, model.ConversationConfig{TTL: "15m", MaxTurns: maxTurns})
	return mm, r
}

func TestBuildResponseContextShape(t *testing.T) {
	mm, r := testManager(t, 20)
	ctx := context.Background()

	if err := r.AddMessage(ctx, "s1", schema.UserMessage("earlier question")); err != nil {
		t.Fatal(err)
	}
	if err := r.AddMessage(ctx, "s1", schema.AssistantMessage("earlier answer", nil)); err != nil {
		t.Fatal(err)
	}

	msgs, err := mm.BuildResponseContext(ctx, "s1", "system prompt", "raw query", "raw query\n\nenriched block")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages (system + 2 history + current), got %d", len(msgs))
	}
	if msgs[0].Role != schema.System || msgs[0].Content != "system prompt" {
		t.Errorf("first message = %+v, want system prompt", msgs[0])
	}
	last := msgs[len(msgs)-1]
	if last.Role != schema.User || last.Content != "raw query\n\nenriched block" {
		t.Errorf("last message = %+v, want enriched user message", last)
	}
}

func TestBuildResponseContextPersistsRawQuery(t *testing.T) {
	mm, r := testManager(t, 20)
	ctx := context.Background()

	if _, err := mm.BuildResponseContext(ctx, "s1", "sys", "raw query", "raw query\n\ndata"); err != nil {
		t.Fatalf("build context: %v", err)
	}

	history, err := r.LoadHistory(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history.Messages) != 1 {
		t.Fatalf("expected 1 persisted turn, got %d", len(history.Messages))
	}
	if history.Messages[0].Content != "raw query" {
		t.Errorf("persisted turn = %q, want the raw query, not the enriched text", history.Messages[0].Content)
	}
}

func TestBuildResponseContextTrimsHistory(t *testing.T) {
	mm, r := testManager(t, 4)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := r.AddMessage(ctx, "s1", schema.UserMessage(fmt.Sprintf("turn %d", i))); err != nil {
			t.Fatal(err)
		}
	}

	msgs, err := mm.BuildResponseContext(ctx, "s1", "sys", "q", "q")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}

	// system + 4 trimmed history + current user message
	if len(msgs) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "turn 6" {
		t.Errorf("oldest kept turn = %q, want %q", msgs[1].Content, "turn 6")
	}
}

func TestSaveResponse(t *testing.T) {
	mm, r := testManager(t, 10)
	ctx := context.Background()

	if err := mm.SaveResponse(ctx, "s1", "an answer"); err != nil {
		t.Fatalf("save response: %v", err)
	}

	history, err := r.LoadHistory(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history.Messages) != 1 || history.Messages[0].Role != schema.Assistant {
		t.Fatalf("history = %+v, want single assistant turn", history.Messages)
	}
}
