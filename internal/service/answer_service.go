package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/rs/zerolog"
)

// Localized fixed replies. The synthesizer must always return a
// well-formed answer, so both the empty-results case and a generative
// failure map to one of these.
var noInfoMessages = map[string]string{
	"en": "I could not find any information about that in our articles. Try rephrasing your question or browsing the site categories.",
	"es": "No he encontrado información sobre eso en nuestros artículos. Intenta reformular tu pregunta o explorar las categorías del sitio.",
	"fr": "Je n'ai trouvé aucune information à ce sujet dans nos articles. Essayez de reformuler votre question ou de parcourir les catégories du site.",
	"de": "Ich konnte dazu keine Informationen in unseren Artikeln finden. Formulieren Sie Ihre Frage um oder durchsuchen Sie die Kategorien der Seite.",
}

var apologyMessages = map[string]string{
	"en": "Sorry, I am unable to answer right now. Please try again in a moment.",
	"es": "Lo siento, no puedo responder en este momento. Inténtalo de nuevo en un momento.",
	"fr": "Désolé, je ne peux pas répondre pour le moment. Veuillez réessayer dans un instant.",
	"de": "Entschuldigung, ich kann im Moment nicht antworten. Bitte versuchen Sie es gleich noch einmal.",
}

// NoInfoMessage returns the localized "no information available" reply
func NoInfoMessage(language string) string {
	return localized(noInfoMessages, language)
}

// ApologyMessage returns the localized degraded-mode reply
func ApologyMessage(language string) string {
	return localized(apologyMessages, language)
}

func localized(messages map[string]string, language string) string {
	if msg, ok := messages[normalizeLanguage(language)]; ok {
		return msg
	}
	return messages["en"]
}

func normalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if _, ok := noInfoMessages[lang]; !ok {
		return "en"
	}
	return lang
}

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
}

// answerService is the concrete implementation of AnswerService
type answerService struct {
	provider provider.Provider
	cfg      *config.Config
	log      zerolog.Logger
}

// newAnswerService creates a new AnswerService
func newAnswerService(p provider.Provider, cfg *config.Config, log zerolog.Logger) *answerService {
	return &answerService{
		provider: p,
		cfg:      cfg,
		log:      log.With().Str("service", "answer").Logger(),
	}
}

// Answer composes a grounded answer from the retrieved results and the
// caller-supplied conversation window. With no results it short-circuits
// to the canned reply without calling the generative model; on model
// failure it degrades to a fixed apology. Either way the response is
// well-formed and the references are drawn exclusively from the input.
func (s *answerService) Answer(ctx context.Context, query string, history []models.ConversationTurn, results []models.SearchResult, language string) (*models.Answer, error) {
	lang := normalizeLanguage(language)

	if len(results) == 0 {
		return &models.Answer{
			Text:       NoInfoMessage(lang),
			References: []models.Reference{},
		}, nil
	}

	top := results
	if len(top) > s.cfg.Chat.MaxContextResults {
		top = top[:s.cfg.Chat.MaxContextResults]
	}

	messages := s.buildMessages(query, history, top, lang)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.Chat.GenerateTimeout)
	defer cancel()

	text, err := s.provider.Generate(genCtx, messages)
	if err != nil {
		s.log.Warn().Err(err).Msg("Generation failed, degrading to apology")
		return &models.Answer{
			Text:       ApologyMessage(lang),
			References: []models.Reference{},
		}, nil
	}

	return &models.Answer{
		Text:       strings.TrimSpace(text),
		References: s.buildReferences(top),
	}, nil
}

// buildMessages assembles the constrained prompt: grounding instructions
// and excerpts in the system message, the bounded history as chat turns,
// and the question last
func (s *answerService) buildMessages(query string, history []models.ConversationTurn, results []models.SearchResult, lang string) []provider.Message {
	var b strings.Builder
	b.WriteString("You are an assistant for a content website. Answer questions using ONLY the article excerpts below. ")
	b.WriteString("Do not invent facts, articles or sources that are not in the excerpts. ")
	b.WriteString("If the excerpts do not contain the answer, say you do not have that information.\n\nArticle excerpts:\n\n")

	for i, r := range results {
		excerpt := provider.TruncateText(provider.PrepareText(r.Excerpt, 0), s.cfg.Chat.MaxExcerptChars)
		b.WriteString(fmt.Sprintf("[%d] %s (category: %s)\n%s\n\n", i+1, r.Title, r.Category, excerpt))
	}

	messages := []provider.Message{{Role: provider.RoleSystem, Content: b.String()}}

	// Bounded conversation window for follow-up questions
	if len(history) > s.cfg.Chat.MaxHistoryTurns {
		history = history[len(history)-s.cfg.Chat.MaxHistoryTurns:]
	}
	for _, turn := range history {
		role := provider.RoleUser
		if turn.Role == "assistant" {
			role = provider.RoleAssistant
		}
		messages = append(messages, provider.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, provider.Message{
		Role: provider.RoleUser,
		Content: fmt.Sprintf("%s\n\nAnswer concisely in roughly 100-200 words, in %s.",
			query, languageNames[lang]),
	})

	return messages
}

// buildReferences maps the prompt context results to citations. The
// synthesizer never returns a reference absent from its input.
func (s *answerService) buildReferences(results []models.SearchResult) []models.Reference {
	references := make([]models.Reference, 0, len(results))
	for _, r := range results {
		references = append(references, models.Reference{
			Title:    r.Title,
			URL:      r.URL(),
			Excerpt:  provider.TruncateText(r.Excerpt, s.cfg.Chat.MaxExcerptChars),
			Category: r.Category,
		})
	}
	return references
}
