package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Role is the author of a chat message, named as the Gemini API names it.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one chat history entry.
type Message struct {
	Role Role
	Text string
}

// Stream yields the fragments of a streamed reply in order, then io.EOF.
type Stream interface {
	Next() (string, error)
	Close() error
}

// Client generates JSON and streamed chat replies for a capability tier.
type Client interface {
	// GenerateJSON asks for a JSON response and strips any markdown fence.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// StreamChat replays history, whose last message must be the user's, and
	// streams the model's reply. No state is kept between calls.
	StreamChat(ctx context.Context, system string, history []Message, tier ModelTier) (Stream, error)
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient builds the client for config.Provider. A nil config uses DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient is the Gemini implementation of Client.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient connects to Gemini with an API key.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

// modelSettings are the per-call knobs applied to a genai model handle.
type modelSettings struct {
	temperature float32
	jsonOutput  bool
	system      string
}

func (c *GeminiClient) model(tier ModelTier, s modelSettings) (*genai.GenerativeModel, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}
	m := c.client.GenerativeModel(name)
	m.SetTemperature(s.temperature)
	if s.jsonOutput {
		m.ResponseMIMEType = "application/json"
	}
	if s.system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(s.system)}}
	}
	return m, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, s modelSettings) (string, error) {
	m, err := c.model(tier, s)
	if err != nil {
		return "", err
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// GenerateJSON returns the model's JSON reply to prompt.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, modelSettings{temperature: c.config.Temperature, jsonOutput: true})
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// StreamChat seeds a chat session with all but the last message and streams the
// reply to the last one.
func (c *GeminiClient) StreamChat(ctx context.Context, system string, history []Message, tier ModelTier) (Stream, error) {
	n := len(history)
	if n == 0 {
		return nil, errors.New("chat history is empty")
	}
	if last := history[n-1]; last.Role != RoleUser {
		return nil, fmt.Errorf("last chat message must be from the user, got %q", last.Role)
	}

	m, err := c.model(tier, modelSettings{temperature: c.config.ChatTemperature, system: system})
	if err != nil {
		return nil, err
	}
	session := m.StartChat()
	session.History = toContents(history[:n-1])
	return &geminiStream{it: session.SendMessageStream(ctx, genai.Text(history[n-1].Text))}, nil
}

// GetModel reports the model serving tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func toContents(history []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		out = append(out, &genai.Content{Role: string(m.Role), Parts: []genai.Part{genai.Text(m.Text)}})
	}
	return out
}

type geminiStream struct {
	it   *genai.GenerateContentResponseIterator
	done bool
}

// Next skips chunks that carry no text, such as a final safety-ratings chunk.
func (s *geminiStream) Next() (string, error) {
	for !s.done {
		resp, err := s.it.Next()
		switch {
		case errors.Is(err, iterator.Done):
			s.done = true
		case err != nil:
			s.done = true
			return "", fmt.Errorf("stream failed: %w", err)
		default:
			if text, terr := responseText(resp); terr == nil && text != "" {
				return text, nil
			}
		}
	}
	return "", io.EOF
}

func (s *geminiStream) Close() error {
	s.done = true
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", errors.New("no content in response")
	}
	var b strings.Builder
	found := false
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
			found = true
		}
	}
	if !found {
		return "", errors.New("no text parts in response")
	}
	return b.String(), nil
}
