package queue

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/internal/registry"
	"github.com/gridmind-ai/gridmind/backend/pkg/chart"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
)

func TestApplyStatusTransitions(t *testing.T) {
	jobs := registry.New()
	job, err := jobs.Create(common.KindTopology)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ApplyStatus(jobs, RenderStatus{JobID: job.ID, Status: common.StatusRunning}); err != nil {
		t.Fatalf("ApplyStatus running: %v", err)
	}
	got, _ := jobs.Get(job.ID)
	if got.Status != common.StatusRunning {
		t.Errorf("status = %q, want %q", got.Status, common.StatusRunning)
	}

	if err := ApplyStatus(jobs, RenderStatus{JobID: job.ID, Status: common.StatusDone, Key: "jobs/x/chart.html"}); err != nil {
		t.Fatalf("ApplyStatus done: %v", err)
	}
	got, _ = jobs.Get(job.ID)
	if got.Status != common.StatusDone {
		t.Errorf("status = %q, want %q", got.Status, common.StatusDone)
	}
	if got.Key != "jobs/x/chart.html" {
		t.Errorf("key = %q, want %q", got.Key, "jobs/x/chart.html")
	}

	if err := ApplyStatus(jobs, RenderStatus{JobID: job.ID, Status: common.StatusFailed, Error: "输入数据必须包含 'nodes' 与 'edges'。"}); err != nil {
		t.Fatalf("ApplyStatus failed: %v", err)
	}
	got, _ = jobs.Get(job.ID)
	if got.Status != common.StatusFailed {
		t.Errorf("status = %q, want %q", got.Status, common.StatusFailed)
	}
	if got.Error == "" {
		t.Error("expected failure reason to be recorded")
	}
}

func TestApplyStatusRejectsBadInput(t *testing.T) {
	jobs := registry.New()

	if err := ApplyStatus(jobs, RenderStatus{Status: common.StatusDone}); err == nil {
		t.Error("expected error for missing job id")
	}
	if err := ApplyStatus(jobs, RenderStatus{JobID: "abc", Status: "archived"}); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestApplyRenderStatus(t *testing.T) {
	jobs := registry.New()
	job, err := jobs.Create(common.KindTimeseries)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	msg := `{"job_id":"` + job.ID + `","status":"done","key":"jobs/` + job.ID + `/chart.png"}`
	if err := ApplyRenderStatus(jobs, msg); err != nil {
		t.Fatalf("ApplyRenderStatus: %v", err)
	}
	got, _ := jobs.Get(job.ID)
	if got.Status != common.StatusDone {
		t.Errorf("status = %q, want %q", got.Status, common.StatusDone)
	}

	if err := ApplyRenderStatus(jobs, "{not json"); err == nil {
		t.Error("expected error for malformed message")
	}
}

func TestRenderArtifactTopology(t *testing.T) {
	data := []byte(`{"nodes": ["变电站A", "变电站B"], "edges": [["变电站A", "变电站B"]]}`)
	task := RenderTask{JobID: "j1", Kind: common.KindTopology, Name: "grid.json"}

	artifact, name, err := renderArtifact(context.Background(), task, data)
	if err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	if name != "chart.html" {
		t.Errorf("name = %q, want chart.html", name)
	}
	html := string(artifact)
	if !strings.Contains(html, "拓扑结构图") {
		t.Error("expected page title in rendered HTML")
	}
	if !strings.Contains(html, "变电站A") {
		t.Error("expected node name in rendered HTML")
	}
}

func TestRenderArtifactTopologyMissingData(t *testing.T) {
	task := RenderTask{JobID: "j2", Kind: common.KindTopology, Name: "empty.json"}

	_, _, err := renderArtifact(context.Background(), task, []byte(`{"edges": []}`))
	if !errors.Is(err, chart.ErrMissingTopology) {
		t.Fatalf("err = %v, want ErrMissingTopology", err)
	}
}

func TestRenderArtifactTimeseries(t *testing.T) {
	data := []byte("timestamp,load\n2021-03-04,1.5\n2021-03-05,2.5\nbad-time,3.0\n")
	task := RenderTask{JobID: "j3", Kind: common.KindTimeseries, Name: "load.csv"}

	artifact, name, err := renderArtifact(context.Background(), task, data)
	if err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	if name != "chart.png" {
		t.Errorf("name = %q, want chart.png", name)
	}
	if !bytes.HasPrefix(artifact, []byte("\x89PNG")) {
		t.Error("expected PNG artifact")
	}
}

func TestRenderArtifactTimeseriesMissingColumn(t *testing.T) {
	data := []byte("time,load\n2021-03-04,1.5\n")
	task := RenderTask{JobID: "j4", Kind: common.KindTimeseries, Name: "load.csv"}

	_, _, err := renderArtifact(context.Background(), task, data)
	if err == nil || !strings.Contains(err.Error(), "未找到时间列 'timestamp'") {
		t.Fatalf("err = %v, want missing time column", err)
	}
}

func TestRenderArtifactTimeseriesCustomColumn(t *testing.T) {
	data := []byte("记录时间,负荷\n2021-03-04,1.5\n2021-03-05,2.5\n")
	task := RenderTask{JobID: "j5", Kind: common.KindTimeseries, TsColumn: "记录时间", Name: "load.csv"}

	artifact, _, err := renderArtifact(context.Background(), task, data)
	if err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	if !bytes.HasPrefix(artifact, []byte("\x89PNG")) {
		t.Error("expected PNG artifact")
	}
}

func TestRenderArtifactUnknownKind(t *testing.T) {
	task := RenderTask{JobID: "j6", Kind: "piechart", Name: "x.csv"}

	_, _, err := renderArtifact(context.Background(), task, []byte("a,b\n1,2\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown chart kind") {
		t.Fatalf("err = %v, want unknown chart kind", err)
	}
}

func TestExecuteRenderRejectsUnknownKind(t *testing.T) {
	task := RenderTask{JobID: "j7", Kind: "piechart", Name: "x.csv"}

	st, err := ExecuteRender(context.Background(), nil, task)
	if err != nil {
		t.Fatalf("ExecuteRender: %v", err)
	}
	if st.Status != common.StatusFailed {
		t.Errorf("status = %q, want %q", st.Status, common.StatusFailed)
	}
	if !strings.Contains(st.Error, "unknown chart kind") {
		t.Errorf("error = %q, want unknown chart kind", st.Error)
	}
}
