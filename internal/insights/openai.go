package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

// OpenAIGenerator implements TextGenerator against the OpenAI chat
// completions API with JSON-object response formatting.
type OpenAIGenerator struct {
	client openai.Client
	model  openai.ChatModel
	logger *logger.Logger
}

// NewOpenAIGenerator creates a generator for the given API key and model
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration, log *logger.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(timeout),
		),
		model:  openai.ChatModel(model),
		logger: log.Named("openai-insights"),
	}
}

// GenerateInsights sends the data summary to the chat completions API and
// decodes the JSON reply into an Insights object.
func (g *OpenAIGenerator) GenerateInsights(ctx context.Context, systemPrompt, userPrompt string) (*Insights, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	content := completion.Choices[0].Message.Content

	var result Insights
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode insights response: %w", err)
	}

	g.logger.Debug("decoded insights from completion",
		logger.Int("content_bytes", len(content)),
		logger.Int("popular_routes", len(result.PopularRoutes)))

	return &result, nil
}
