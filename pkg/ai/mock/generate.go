package mock

import (
	"context"
	"time"

	"github.com/gridmind-ai/gridmind/backend/pkg/ai"
)

// ReplyPrefix opens every synthesized mock answer.
const ReplyPrefix = "[Mock输出] 根据多模态摘要生成的回复:\n"

const (
	defaultTemperature  = 0.7
	defaultTopP         = 0.9
	defaultMaxNewTokens = 128
)

// Generate synthesizes a mock answer by echoing the prompt behind a fixed
// prefix. The echoed portion is truncated to max(128, min(1000, maxNewTokens))
// runes.
func (c *MockClient) Generate(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Temperature:  defaultTemperature,
		TopP:         defaultTopP,
		MaxNewTokens: defaultMaxNewTokens,
		Seed:         -1,
	}
	for _, o := range opts {
		o(&options)
	}
	if options.MaxNewTokens < 1 {
		options.MaxNewTokens = defaultMaxNewTokens
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()

	limit := options.MaxNewTokens
	if limit > 1000 {
		limit = 1000
	}
	if limit < 128 {
		limit = 128
	}

	runes := []rune(prompt)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	reply := ReplyPrefix + string(runes)

	c.modifyMetrics(ai.ModelMetrics{
		PromptTokens: tokenCount(prompt),
		OutputTokens: tokenCount(reply),
		TotalTokens:  tokenCount(prompt) + tokenCount(reply),
		DurationMs:   time.Since(start).Milliseconds(),
	})

	return reply, nil
}

// GenerateStream plays text back one rune per "content" event. The per-rune
// delay shrinks as temperature rises and grows as topP rises, floored at 2ms.
// At most max(64, min(len(text), maxNewTokens)) runes are played. The channel
// closes after the final rune or when ctx is cancelled.
func (c *MockClient) GenerateStream(
	ctx context.Context,
	text string,
	opts ...ai.GenerateOption,
) (<-chan ai.StreamEvent, error) {
	options := ai.GenerateOptions{
		Temperature:  defaultTemperature,
		TopP:         defaultTopP,
		MaxNewTokens: defaultMaxNewTokens,
		Seed:         -1,
	}
	for _, o := range opts {
		o(&options)
	}
	if options.MaxNewTokens < 1 {
		options.MaxNewTokens = defaultMaxNewTokens
	}

	delay := streamDelay(options.Temperature, options.TopP)

	runes := []rune(text)
	budget := len(runes)
	if budget > options.MaxNewTokens {
		budget = options.MaxNewTokens
	}
	if budget < 64 {
		budget = 64
	}
	if budget > len(runes) {
		budget = len(runes)
	}

	out := make(chan ai.StreamEvent, 16)

	go func() {
		defer close(out)

		start := time.Now()
		played := 0

		for _, r := range runes[:budget] {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			select {
			case out <- ai.StreamEvent{Type: "content", Content: string(r)}:
				played++
			case <-ctx.Done():
				return
			}
		}

		tokens := tokenCount(string(runes[:played]))
		c.modifyMetrics(ai.ModelMetrics{
			OutputTokens: tokens,
			TotalTokens:  tokens,
			DurationMs:   time.Since(start).Milliseconds(),
			Streams:      1,
		})
	}()

	return out, nil
}

func streamDelay(temperature, topP float64) time.Duration {
	delay := 0.016 - (temperature-0.01)*0.009 + (topP-0.01)*0.004
	if delay < 0.002 {
		delay = 0.002
	}

	return time.Duration(delay * float64(time.Second))
}
