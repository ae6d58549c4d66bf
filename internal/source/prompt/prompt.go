// Package prompt provides a source that asks a Gemini text model to suggest
// colours for a description.
package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"google.golang.org/genai"

	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
)

// APIKeyEnv holds the Gemini API key.
const APIKeyEnv = "GOOGLE_API_KEY"

const instructions = `You are a UI designer building a Bootstrap colour theme.
Reply with only a JSON array of 6 to 10 hex colour strings such as ["#0d6efd"].
Order them: the main brand colour first, then a secondary colour, then any
red, green, amber and cyan tones suitable for danger, success, warning and info.
Theme description: %s`

// GenerateFunc sends prompt to model and returns the text reply.
type GenerateFunc func(ctx context.Context, model, prompt string) (string, error)

// Source turns a natural-language description into candidate colours.
type Source struct {
	text     string
	model    string
	generate GenerateFunc
}

// New creates a prompt source backed by the Gemini API.
func New() *Source {
	return &Source{generate: geminiGenerate}
}

// NewWithGenerator creates a prompt source that calls fn instead of Gemini.
func NewWithGenerator(fn GenerateFunc) *Source {
	return &Source{generate: fn}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "prompt"
}

// Description returns the source description.
func (s *Source) Description() string {
	return "Ask Google Gemini for colours matching a description (needs " + APIKeyEnv + ")"
}

// RegisterFlags registers source-specific flags.
func (s *Source) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.text, "prompt.text", "", "Theme description, e.g. \"calm ocean at dawn\" (required)")
	flags.StringVar(&s.model, "prompt.model", "", "Gemini model (default from config)")
}

// Validate checks that a description was given.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.text) == "" {
		return fmt.Errorf("--prompt.text is required")
	}
	return nil
}

// Candidates asks the model for a JSON array of hex codes and parses it.
func (s *Source) Candidates(ctx context.Context, opts source.Options) ([]string, error) {
	logger := opts.Log()
	model := s.model
	if model == "" {
		model = opts.GenAIModel
	}

	logger.Info("requesting colours", "model", model)
	reply, err := s.generate(ctx, model, fmt.Sprintf(instructions, s.text))
	if err != nil {
		return nil, err
	}
	logger.Debug("model reply", "text", reply)

	return palette.ParseImport(stripFence(reply))
}

// stripFence removes a surrounding ```json ... ``` block if the model added one.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func geminiGenerate(ctx context.Context, model, prompt string) (string, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("%s environment variable is required\nGet one at: https://aistudio.google.com/api-keys", APIKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("colour generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}
	return b.String(), nil
}
