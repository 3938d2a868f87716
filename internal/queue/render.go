package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rabbitmq/amqp091-go"

	"github.com/gridmind-ai/gridmind/backend/internal/registry"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/internal/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/chart"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/graphfile"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/seriesfile"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
)

// RenderTask is the unit of work the server enqueues on the render queue.
// Key points at the uploaded source object, Name is the original file name
// whose extension selects the parser.
type RenderTask struct {
	JobID    string `json:"job_id"`
	Kind     string `json:"kind"`
	Key      string `json:"key"`
	Layout   string `json:"layout,omitempty"`
	TsColumn string `json:"ts_column,omitempty"`
	Title    string `json:"title,omitempty"`
	Name     string `json:"name"`
}

// RenderStatus is the worker's report back to the server over the status
// queue.
type RenderStatus struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Key    string `json:"key,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ExecuteRender downloads the task's source object, renders the artifact and
// uploads it next to the source. The returned status is final: done with the
// artifact key, or failed with the parse or render error. A non-nil error
// means a storage stage kept failing and the task is worth redelivering.
func ExecuteRender(ctx context.Context, s3Client *awss3.Client, task RenderTask) (RenderStatus, error) {
	if !common.ValidKind(task.Kind) {
		return RenderStatus{
			JobID:  task.JobID,
			Status: common.StatusFailed,
			Error:  fmt.Sprintf("unknown chart kind %q", task.Kind),
		}, nil
	}

	data, err := util.RetryWithContext(ctx, 3, func(ctx context.Context) ([]byte, error) {
		return storage.GetFile(ctx, s3Client, task.Key)
	})
	if err != nil {
		return RenderStatus{}, fmt.Errorf("failed to download source %s: %w", task.Key, err)
	}

	artifact, name, err := renderArtifact(ctx, task, data)
	if err != nil {
		logger.Error("[Render] Render failed", "job_id", task.JobID, "kind", task.Kind, "err", err)
		return RenderStatus{
			JobID:  task.JobID,
			Status: common.StatusFailed,
			Error:  err.Error(),
		}, nil
	}

	key, err := util.RetryWithContext(ctx, 3, func(ctx context.Context) (string, error) {
		return storage.PutFile(ctx, s3Client, "jobs/"+task.JobID, name, "chart", bytes.NewReader(artifact))
	})
	if err != nil {
		return RenderStatus{}, fmt.Errorf("failed to upload artifact for job %s: %w", task.JobID, err)
	}

	return RenderStatus{
		JobID:  task.JobID,
		Status: common.StatusDone,
		Key:    key,
	}, nil
}

// renderArtifact parses the source bytes according to the task kind and
// renders the chart. It returns the artifact bytes and file name.
func renderArtifact(ctx context.Context, task RenderTask, data []byte) ([]byte, string, error) {
	l := loader.BytesLoader{Data: data}
	file := loader.NewInputFile(task.Name)

	var buf bytes.Buffer
	switch task.Kind {
	case common.KindTopology:
		t := graphfile.ParseFile(ctx, l, file)
		if err := chart.RenderTopology(&buf, t, chart.TopologyOptions{Layout: task.Layout}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "chart.html", nil

	case common.KindTimeseries:
		tsColumn := task.TsColumn
		if tsColumn == "" {
			tsColumn = common.DefaultTsColumn
		}
		frame, dropped, err := seriesfile.ParseFrame(ctx, l, file, tsColumn)
		if err != nil {
			return nil, "", err
		}
		if dropped > 0 {
			logger.Warn(fmt.Sprintf("提示：有 %d 行时间解析失败，已忽略。", dropped), "job_id", task.JobID)
		}
		opt := chart.TimeseriesOptions{Title: task.Title, Name: task.Name}
		if err := chart.RenderTimeseries(&buf, frame, opt); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "chart.png", nil

	default:
		return nil, "", fmt.Errorf("unknown chart kind %q", task.Kind)
	}
}

// ProcessRender handles one message from the render queue: render the chart,
// then publish the final status. Returns an error only when the message is
// undecodable or a storage stage kept failing, so the caller can route the
// delivery through the retry queue.
func ProcessRender(
	ctx context.Context,
	s3Client *awss3.Client,
	ch *amqp091.Channel,
	msg string,
) error {
	var task RenderTask
	if err := json.Unmarshal([]byte(msg), &task); err != nil {
		return err
	}
	if task.JobID == "" {
		return fmt.Errorf("missing job_id")
	}

	running := RenderStatus{JobID: task.JobID, Status: common.StatusRunning}
	if err := PublishStatus(ctx, ch, running); err != nil {
		logger.Warn("[Render] Failed to publish running status", "job_id", task.JobID, "err", err)
	}

	status, err := ExecuteRender(ctx, s3Client, task)
	if err != nil {
		return err
	}

	return PublishStatus(ctx, ch, status)
}

// PublishStatus marshals st onto the status queue.
func PublishStatus(ctx context.Context, ch *amqp091.Channel, st RenderStatus) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}

	return PublishFIFO(ctx, ch, common.QueueRenderStatus, b)
}

// ApplyStatus folds st into the job registry.
func ApplyStatus(jobs *registry.Registry, st RenderStatus) error {
	if st.JobID == "" {
		return fmt.Errorf("missing job_id")
	}

	switch st.Status {
	case common.StatusRunning:
		jobs.SetRunning(st.JobID)
	case common.StatusDone:
		jobs.SetDone(st.JobID, st.Key)
	case common.StatusFailed:
		jobs.SetFailed(st.JobID, st.Error)
	default:
		return fmt.Errorf("unknown status %q", st.Status)
	}

	return nil
}

// ApplyRenderStatus decodes one status queue message and folds it into the
// job registry. Used by the server's status consumer.
func ApplyRenderStatus(jobs *registry.Registry, msg string) error {
	var st RenderStatus
	if err := json.Unmarshal([]byte(msg), &st); err != nil {
		return err
	}

	return ApplyStatus(jobs, st)
}
