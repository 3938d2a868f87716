// Package mock provides an ai.Client that fabricates model loading and
// generation without touching any real inference backend. Outputs are
// deterministic for identical inputs, which keeps the demo endpoints
// reproducible on machines without accelerator hardware.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridmind-ai/gridmind/backend/pkg/ai"
)

const (
	loadSteps    = 8
	loadStepWait = 180 * time.Millisecond
)

const (
	loadingStatus = "状态：正在加载..."
	loadedBanner  = "✅ 模型加载成功"
)

// MockClient implements the ai.Client interface with a fabricated engine.
// The model handle it installs mirrors the shape of a real backend's state
// while keeping the model and tokenizer slots empty.
type MockClient struct {
	device string

	stateLock sync.Mutex
	state     ai.ModelState

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics
}

// NewMockClientParams contains configuration options for creating a new MockClient.
type NewMockClientParams struct {
	// Device recorded when a load does not name one, "cpu" when empty.
	Device string
}

// NewMockClient creates a new mock AI client with the specified configuration.
func NewMockClient(params NewMockClientParams) *MockClient {
	device := params.Device
	if device == "" {
		device = "cpu"
	}

	return &MockClient{
		device: device,

		stateLock: sync.Mutex{},
		state:     ai.ModelState{},

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},
	}
}

// LoadModel simulates loading the model at modelPath, waiting through the
// same fabricated progress ticks the streaming variant reports, and returns
// the load summary text.
func (c *MockClient) LoadModel(ctx context.Context, modelPath, device string) (string, error) {
	for range loadSteps {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(loadStepWait):
		}
	}

	return c.install(modelPath, device), nil
}

// LoadModelStream simulates loading the model at modelPath. It emits one
// "step" event per fabricated progress tick and a final "done" event carrying
// the load summary, then closes the channel.
func (c *MockClient) LoadModelStream(ctx context.Context, modelPath, device string) (<-chan ai.StreamEvent, error) {
	out := make(chan ai.StreamEvent, 16)

	go func() {
		defer close(out)

		for range loadSteps {
			select {
			case <-ctx.Done():
				return
			case <-time.After(loadStepWait):
			}
			select {
			case out <- ai.StreamEvent{Type: "step", Step: loadingStatus}:
			case <-ctx.Done():
				return
			}
		}

		info := c.install(modelPath, device)
		select {
		case out <- ai.StreamEvent{Type: "done", Content: loadedBanner + "\n" + info}:
		case <-ctx.Done():
		}
	}()

	return out, nil
}

// State returns the currently installed model state. The zero value means no
// model has been loaded yet.
func (c *MockClient) State() ai.ModelState {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	return c.state
}

func (c *MockClient) install(modelPath, device string) string {
	if device == "" {
		device = c.device
	}

	c.stateLock.Lock()
	c.state = ai.ModelState{
		Type:      "mock",
		Device:    device,
		ModelPath: modelPath,
	}
	c.stateLock.Unlock()

	display := modelPath
	if display == "" {
		display = "(未提供)"
	}

	return fmt.Sprintf("已加载模型，模型路径: %s", display)
}
