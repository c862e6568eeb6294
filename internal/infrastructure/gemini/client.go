package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

const systemPrompt = `You are the assistant of a small warehouse. You answer questions about the
goods currently in stock: electronics, clothing and school supplies.

Rules:
1. Only talk about items that appear in the inventory listing you are given.
   Never invent items, prices or stock levels.
2. Quote item names and prices exactly as listed. Prices are in Indonesian Rupiah (IDR).
3. If an item is not in the listing, say it is not in stock.
4. You cannot change the inventory. If asked to add, remove or restock items,
   tell the user to use the /add, /stock or /remove commands.
5. Keep answers short and answer in the language of the question.`

// Client is a Gemini-backed AIRepository.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

var _ repository.AIRepository = (*Client)(nil)

// NewClient creates a Gemini client for the inventory assistant
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(defaultModel)
	// low temperature keeps answers close to the listing
	model.SetTemperature(0.2)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: client,
		model:  model,
		logger: logger,
		sem:    make(chan struct{}, 3),
		delay:  350 * time.Millisecond,
	}, nil
}

// Answer replies to question given the inventory listing and previous exchanges
func (g *Client) Answer(ctx context.Context, inventory string, question string, history []entity.Message) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	parts := make([]genai.Part, 0, len(history)*2+2)
	parts = append(parts, genai.Text("Current inventory:\n"+inventory))
	for _, msg := range history {
		if msg.Question != "" {
			parts = append(parts, genai.Text("User: "+msg.Question))
		}
		if msg.Answer != "" {
			parts = append(parts, genai.Text("Assistant: "+msg.Answer))
		}
	}
	parts = append(parts, genai.Text(question))

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	g.logger.Debug("gemini answered", zap.Duration("took", time.Since(start)))

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

// acquire limits concurrent requests to cap(g.sem) and spaces them by g.delay.
func (g *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	g.last = now

	return func() { <-g.sem }, nil
}

// Close closes the underlying client
func (g *Client) Close() error {
	return g.client.Close()
}
