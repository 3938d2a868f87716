package mock

import (
	"math"
	"unicode/utf8"

	"github.com/gridmind-ai/gridmind/backend/pkg/ai"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "o200k_base"

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *MockClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the accumulated token usage and timing metrics since the last reset.
func (c *MockClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	return c.metrics
}

func (c *MockClient) modifyMetrics(m ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.PromptTokens += m.PromptTokens
	c.metrics.OutputTokens += m.OutputTokens
	c.metrics.TotalTokens += m.TotalTokens
	c.metrics.DurationMs += m.DurationMs
	c.metrics.Streams += m.Streams

	if c.metrics.DurationMs > 0 {
		tokensPerSecond := (float64(c.metrics.TotalTokens) * 1000.0) / float64(c.metrics.DurationMs)
		c.metrics.TokensPerSecond = float32(math.Round(tokensPerSecond*100) / 100)
	}
}

// tokenCount measures text with the o200k_base encoding, falling back to a
// rune count when the encoding data is unavailable.
func tokenCount(text string) int {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return utf8.RuneCountInString(text)
	}

	return len(enc.Encode(text, nil, nil))
}
