package ai

import (
	"context"
)

// GenerateOptions holds sampling configuration for generation requests.
type GenerateOptions struct {
	Temperature  float64 // Sampling temperature
	TopP         float64 // Nucleus sampling cutoff
	MaxNewTokens int     // Upper bound on generated output length
	Seed         int     // Sampling seed, -1 means unseeded
}

// ModelMetrics contains usage metrics accumulated across generation requests.
type ModelMetrics struct {
	PromptTokens    int     `json:"prompt_tokens"`
	OutputTokens    int     `json:"output_tokens"`
	TotalTokens     int     `json:"total_tokens"`
	DurationMs      int64   `json:"duration_ms"`
	TokensPerSecond float32 `json:"tokens_per_second"`
	Streams         int     `json:"streams"`
}

// StreamEvent represents an event in a streaming response
type StreamEvent struct {
	Type    string `json:"type"`              // "step" | "content" | "done"
	Step    string `json:"step,omitempty"`    // step description (when Type="step")
	Content string `json:"content,omitempty"` // text content
}

// ModelState describes the engine handle currently held by a client.
// Model and Tokenizer stay nil for mock engines; they exist so the state
// serializes with the same shape a real backend would produce.
type ModelState struct {
	Type      string `json:"type"`
	Device    string `json:"device"`
	ModelPath string `json:"model_path"`
	Model     any    `json:"model"`
	Tokenizer any    `json:"tokenizer"`
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values produce more random outputs, lower values make outputs more
// focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithTopP returns a GenerateOption that sets the nucleus sampling cutoff.
func WithTopP(topP float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.TopP = topP
	}
}

// WithMaxNewTokens returns a GenerateOption that bounds the generated output
// length. Values below 1 leave the bound at its default.
func WithMaxNewTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxNewTokens = n
	}
}

// WithSeed returns a GenerateOption that sets the sampling seed.
// A seed of -1 keeps sampling unseeded.
func WithSeed(seed int) GenerateOption {
	return func(o *GenerateOptions) {
		o.Seed = seed
	}
}

// Client defines the interface for inference engines used by the demo
// endpoints. Implementations handle model loading, answer synthesis, and
// character-level streaming playback. An empty device falls back to the
// client's configured default.
type Client interface {
	LoadModel(ctx context.Context, modelPath, device string) (string, error)
	LoadModelStream(ctx context.Context, modelPath, device string) (<-chan StreamEvent, error)

	Generate(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateStream(
		ctx context.Context,
		text string,
		opts ...GenerateOption,
	) (<-chan StreamEvent, error)

	State() ModelState
	ResetMetrics()
	GetMetrics() ModelMetrics
}
