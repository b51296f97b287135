package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/models"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// requestBurst is how many requests may go out back to back
const requestBurst = 3

const (
	draftTimeout   = 30 * time.Second
	parseTimeout   = 15 * time.Second
	messageTimeout = 15 * time.Second
)

// Client represents an OpenAI API client
type Client struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	logger  *logger.Logger
}

// New creates a new OpenAI client sending at most reqPerSec requests per
// second. A non-positive rate disables limiting.
func New(apiKey, apiBase, model string, reqPerSec float64) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	limit := rate.Inf
	if reqPerSec > 0 {
		limit = rate.Limit(reqPerSec)
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(limit, requestBurst),
		logger:  logger.New("openai"),
	}
}

// recipeDraft is the JSON shape the model is asked to return
type recipeDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Minutes     int      `json:"minutes"`
	Servings    int      `json:"servings"`
	Healthy     bool     `json:"healthy"`
	Economical  bool     `json:"economical"`
}

// DraftRecipe asks the model for a catalog entry for a dish. The returned
// recipe has no ID; the caller assigns one.
func (c *Client) DraftRecipe(ctx context.Context, dishName string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, draftTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Please provide a home recipe for the dish "%s".
Return the information in the following JSON format:
{
  "name": "Full dish name",
  "description": "One sentence description",
  "ingredients": ["ingredient1", "ingredient2", ...],
  "steps": ["step1", "step2", ...],
  "minutes": total preparation time in minutes as an integer,
  "servings": number of servings as an integer,
  "healthy": true or false,
  "economical": true or false
}
Ingredient names must be short and without quantities, e.g. "rice", not "2 cups of rice".
Only return the JSON, no other text.
`, dishName)

	c.logger.Info("Requesting recipe draft for %s", dishName)

	content, err := c.complete(ctx, prompt, "You are a cooking expert who provides accurate information about dishes and recipes.", 0.3)
	if err != nil {
		return nil, err
	}

	var draft recipeDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Info("Successfully drafted recipe: %s", draft.Name)
	return &models.Recipe{
		Name:        draft.Name,
		Description: draft.Description,
		Ingredients: draft.Ingredients,
		Steps:       draft.Steps,
		Time:        draft.Minutes,
		Servings:    draft.Servings,
		Healthy:     draft.Healthy,
		Economical:  draft.Economical,
	}, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	// Convert context to JSON string
	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly cooking assistant bot for a Telegram chat. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	return c.complete(ctx, prompt, "", 0.7)
}

// ParseIngredientsFromText extracts ingredients from free-form text
func (c *Client) ParseIngredientsFromText(ctx context.Context, text string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, parseTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking assistant. Extract all food ingredients from the following text.
Keep the language of the text and drop quantities.
Return only a JSON array of ingredient names, no other text.
For example: ["huevos", "leche", "tomate", "pechuga de pollo"]

Text: %s
`, text)

	c.logger.Info("Parsing ingredients from text")
	c.logger.Debug("Text to parse (first 100 chars): %s", truncateString(text, 100))

	content, err := c.complete(ctx, prompt, "", 0.2)
	if err != nil {
		return nil, err
	}

	var ingredients []string
	if err := json.Unmarshal([]byte(content), &ingredients); err != nil {
		c.logger.Warn("Response is not a JSON array, falling back to text split: %v", err)
		return extractIngredientsFromText(content), nil
	}

	return ingredients, nil
}

// complete sends a single-turn chat request and returns the cleaned reply
func (c *Client) complete(ctx context.Context, prompt, system string, temperature float32) (string, error) {
	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("OpenAI rate limit wait: %w", err)
	}

	c.logger.Debug("OpenAI prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	// Clean up the response - sometimes the model returns markdown code blocks
	return cleanJSONResponse(content), nil
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// cleanJSONResponse cleans up the JSON response from OpenAI
// Sometimes the model returns markdown code blocks with ```json and ``` delimiters
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Skip the first line, which might be "```json"
		firstLineEnd := strings.Index(s, "\n")
		if firstLineEnd != -1 {
			s = s[firstLineEnd+1:]
		}

		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	return s
}

// extractIngredientsFromText extracts ingredients from text using a simple heuristic
// This is a fallback method when JSON parsing fails
func extractIngredientsFromText(s string) []string {
	// Split by common delimiters
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '"' || r == '[' || r == ']' || r == '\t'
	})

	var ingredients []string
	for _, word := range words {
		word = strings.TrimSpace(word)
		// Skip empty strings and single characters
		if len(word) <= 1 {
			continue
		}
		// Skip common JSON syntax
		if word == "null" || word == "true" || word == "false" {
			continue
		}
		// Skip if it starts with a number (likely part of JSON syntax)
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}

		ingredients = append(ingredients, word)
	}

	return ingredients
}
