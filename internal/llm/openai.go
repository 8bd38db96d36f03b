package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/elpanzas912/gastitelegram/internal/errs"
	"github.com/elpanzas912/gastitelegram/internal/model"
)

// OpenAIClient implementa Client sobre la API de chat completions.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// complete hace una llamada de una sola vuelta: instrucción fija de
// sistema más el payload del usuario.
func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
		MaxTokens:   600,
	})
	if err != nil {
		return "", &errs.UpstreamError{Service: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &errs.UpstreamError{Service: "openai", Err: errors.New("respuesta sin choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) ParseExpense(ctx context.Context, text string) (*model.Expense, error) {
	content, err := c.complete(ctx, ExpensePrompt(), text)
	if err != nil {
		return nil, err
	}
	return DecodeExpense(content)
}

func (c *OpenAIClient) SummarizeSpending(ctx context.Context, aggregates string) (string, error) {
	content, err := c.complete(ctx, SummaryPrompt, aggregates)
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(content)
	if summary == "" {
		return "", &errs.UpstreamError{Service: "openai", Err: errors.New("resumen vacío")}
	}
	return summary, nil
}

func (c *OpenAIClient) ParseQuery(ctx context.Context, question string) (*model.QueryFilter, error) {
	content, err := c.complete(ctx, QueryPrompt(), question)
	if err != nil {
		return nil, err
	}
	return DecodeQuery(content)
}
