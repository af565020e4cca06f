// Package assistant wraps the generative-AI API behind the librarian
// chat feature. It is a plain question/answer client; the model backend
// is an external collaborator like the library REST API.
package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemPrompt = "You are a helpful university library assistant. " +
	"Answer questions about finding books, borrowing rules, due dates, " +
	"fines, and library services. Keep answers short and practical. " +
	"If a question needs account-specific data, say so instead of guessing."

// Assistant answers library questions via the Gemini API.
type Assistant struct {
	client *genai.Client
	model  string
}

// New creates an Assistant. An empty API key is an error; callers should
// treat a missing key as "chat disabled" rather than constructing one.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

// Ask sends one question and returns the model's answer.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("question is empty")
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(question),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	answer := resp.Text()
	if answer == "" {
		return "", fmt.Errorf("no answer returned")
	}
	return answer, nil
}
