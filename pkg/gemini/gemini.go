package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type IGemini interface {
	AnswerGuest(ctx context.Context, hotelName string, message string) (string, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-pro"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

// AnswerGuest asks the model for a free-text concierge reply. The prompt is
// deliberately plain: rule-based intents handle the structured flows, this
// path only covers open-ended requests the guest escalates to the agent.
func (g *geminiClient) AnswerGuest(ctx context.Context, hotelName string, message string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)

	prompt := fmt.Sprintf(
		"You are the virtual concierge of %s. Answer the guest's request warmly and concretely in at most three sentences. If you do not know a hotel-specific fact, offer to connect the guest to staff instead of guessing.\n\nGuest: %s",
		hotelName, message)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	part := res.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
