package models

// ConversationTurn is one caller-supplied turn of a conversation.
// There is no server-side session store; a bounded window is forwarded
// on every request.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SearchResult is a transient retrieval hit feeding both the prompt
// context and the reference list
type SearchResult struct {
	ArticleID string  `json:"article_id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Excerpt   string  `json:"excerpt"`
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
}

// URL returns the public path of the matched article
func (r *SearchResult) URL() string {
	return "/articles/" + r.Slug
}

// Reference is a citation surfaced with a generated answer, always
// traceable to one of the retrieved results
type Reference struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

// Answer is the synthesizer output
type Answer struct {
	Text       string      `json:"text"`
	References []Reference `json:"references"`
}

// ChatRequest is the body of POST /v1/chat
type ChatRequest struct {
	Query               string             `json:"query"`
	Language            string             `json:"language,omitempty"`
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
}

// ChatResponse is always structurally valid, even on failure
type ChatResponse struct {
	Success      bool        `json:"success"`
	Answer       string      `json:"answer"`
	References   []Reference `json:"references"`
	ResultsCount int         `json:"resultsCount"`
	Error        string      `json:"error,omitempty"`
}

// ProcessRequest is the body of POST /v1/queue/process
type ProcessRequest struct {
	BatchSize int `json:"batchSize"`
}
