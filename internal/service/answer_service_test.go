package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/content-chat-api/internal/service"
)

func TestAnswerWithoutResults(t *testing.T) {
	env := newTestEnv(nil)

	answer, err := env.services.Answer.Answer(context.Background(), "anything", nil, nil, "es")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if answer.Text != service.NoInfoMessage("es") {
		t.Errorf("expected the canned Spanish no-info reply, got %q", answer.Text)
	}
	if env.provider.GenerateCalls != 0 {
		t.Errorf("expected no generation call without results, got %d", env.provider.GenerateCalls)
	}
	if answer.References == nil || len(answer.References) != 0 {
		t.Errorf("expected an empty reference list, got %v", answer.References)
	}
}

func TestAnswerReferencesDrawnFromResults(t *testing.T) {
	env := newTestEnv(nil)
	results := seedResults("First", "Second", "Third", "Fourth", "Fifth")

	answer, err := env.services.Answer.Answer(context.Background(), "what is first?", nil, results, "en")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(answer.References) != env.cfg.Chat.MaxContextResults {
		t.Fatalf("expected %d references, got %d", env.cfg.Chat.MaxContextResults, len(answer.References))
	}
	for i, ref := range answer.References {
		if ref.Title != results[i].Title {
			t.Errorf("reference %d: expected title %q, got %q", i, results[i].Title, ref.Title)
		}
		if ref.URL != "/articles/"+results[i].Slug {
			t.Errorf("reference %d: unexpected URL %q", i, ref.URL)
		}
	}
}

func TestAnswerPromptGroundedInExcerpts(t *testing.T) {
	env := newTestEnv(nil)
	results := seedResults("Alpha", "Beta")

	if _, err := env.services.Answer.Answer(context.Background(), "tell me about alpha", nil, results, "en"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(env.provider.LastMessages) == 0 {
		t.Fatal("expected messages to reach the provider")
	}
	system := env.provider.LastMessages[0]
	if system.Role != provider.RoleSystem {
		t.Fatalf("expected the first message to be the system prompt, got role %q", system.Role)
	}
	for _, title := range []string{"Alpha", "Beta"} {
		if !strings.Contains(system.Content, title) {
			t.Errorf("expected the system prompt to contain excerpt %q", title)
		}
	}

	last := env.provider.LastMessages[len(env.provider.LastMessages)-1]
	if last.Role != provider.RoleUser || !strings.Contains(last.Content, "tell me about alpha") {
		t.Errorf("expected the question as the final user message, got %+v", last)
	}
}

func TestAnswerBoundsConversationHistory(t *testing.T) {
	env := newTestEnv(nil)
	results := seedResults("Context")

	history := make([]models.ConversationTurn, 0, 15)
	for i := 0; i < 15; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, models.ConversationTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	if _, err := env.services.Answer.Answer(context.Background(), "follow-up", history, results, "en"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	// system prompt + bounded window + the question
	want := 1 + env.cfg.Chat.MaxHistoryTurns + 1
	if len(env.provider.LastMessages) != want {
		t.Fatalf("expected %d messages, got %d", want, len(env.provider.LastMessages))
	}
	// The oldest turns fall off the front of the window
	firstTurn := env.provider.LastMessages[1]
	if firstTurn.Content != "turn 5" {
		t.Errorf("expected the window to start at turn 5, got %q", firstTurn.Content)
	}
}

func TestAnswerDegradesOnGenerationFailure(t *testing.T) {
	env := newTestEnv(nil)
	results := seedResults("Context")

	env.provider.GenerateFunc = func(ctx context.Context, messages []provider.Message) (string, error) {
		return "", errors.New("model overloaded")
	}

	answer, err := env.services.Answer.Answer(context.Background(), "anything", nil, results, "fr")
	if err != nil {
		t.Fatalf("expected generation failure to degrade, got error %v", err)
	}
	if answer.Text != service.ApologyMessage("fr") {
		t.Errorf("expected the French apology, got %q", answer.Text)
	}
	if len(answer.References) != 0 {
		t.Errorf("expected no references with the apology, got %d", len(answer.References))
	}
}

func TestAnswerUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	env := newTestEnv(nil)

	answer, err := env.services.Answer.Answer(context.Background(), "anything", nil, nil, "pt")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Text != service.NoInfoMessage("en") {
		t.Errorf("expected the English fallback reply, got %q", answer.Text)
	}
}

func TestAnswerTrimsGeneratedText(t *testing.T) {
	env := newTestEnv(nil)
	env.provider.Response = "  a concise answer \n"

	answer, err := env.services.Answer.Answer(context.Background(), "anything", nil, seedResults("Context"), "en")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Text != "a concise answer" {
		t.Errorf("expected trimmed text, got %q", answer.Text)
	}
}
