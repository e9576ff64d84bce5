package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sea-catering/storefront/internal/domain"
)

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = errors.New("ai service is not configured")

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// Recommender asks Gemini for dishes that fit a meal plan.
type Recommender struct {
	client *genai.Client
	model  string
}

// NewRecommender initializes the Gemini client. An empty key yields a
// Recommender whose calls fail with ErrNotConfigured.
func NewRecommender(ctx context.Context, apiKey, model string) (*Recommender, error) {
	if model == "" {
		model = DefaultModel
	}
	if strings.TrimSpace(apiKey) == "" {
		return &Recommender{model: model}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Recommender{client: client, model: model}, nil
}

// Close releases the client.
func (r *Recommender) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Recommend returns dish suggestions for a plan and allergy notes.
func (r *Recommender) Recommend(ctx context.Context, planName, allergies string) ([]domain.Recommendation, error) {
	if r == nil || r.client == nil {
		return nil, ErrNotConfigured
	}
	model := r.client.GenerativeModel(r.model)
	model.ResponseMIMEType = "application/json"

	res, err := model.GenerateContent(ctx, genai.Text(Prompt(planName, allergies)))
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, errors.New("ai service returned an empty response")
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return ParseRecommendations(sb.String())
}

// Prompt builds the nutritionist prompt for a plan.
func Prompt(planName, allergies string) string {
	if strings.TrimSpace(allergies) == "" {
		allergies = "None"
	}
	return fmt.Sprintf(
		"You are a helpful nutritionist for a healthy food delivery service in Indonesia. "+
			"A customer is subscribed to our '%s' meal plan and has the following allergies or restrictions: '%s'. "+
			"Recommend 5 specific and appealing dishes from Indonesian, Western or European cuisine that suit them. "+
			"Respond with only a JSON array of objects with the keys 'name' and 'description'.",
		planName, allergies)
}

type recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParseRecommendations decodes the model output, tolerating a markdown code fence.
func ParseRecommendations(raw string) ([]domain.Recommendation, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var decoded []recommendation
	if err := json.Unmarshal([]byte(clean), &decoded); err != nil {
		return nil, fmt.Errorf("ai service returned malformed data: %w", err)
	}
	out := make([]domain.Recommendation, 0, len(decoded))
	for _, d := range decoded {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		out = append(out, domain.Recommendation{Name: d.Name, Description: d.Description})
	}
	return out, nil
}
