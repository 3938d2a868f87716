package registry

import (
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/common"
)

func TestCreate(t *testing.T) {
	r := New()

	job, err := r.Create(common.KindTopology)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.ID == "" {
		t.Fatal("Create() returned empty id")
	}
	if job.Kind != common.KindTopology {
		t.Errorf("Kind = %q, want %q", job.Kind, common.KindTopology)
	}
	if job.Status != common.StatusPending {
		t.Errorf("Status = %q, want %q", job.Status, common.StatusPending)
	}

	other, err := r.Create(common.KindTimeseries)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if other.ID == job.ID {
		t.Errorf("two jobs share id %q", job.ID)
	}

	got, ok := r.Get(job.ID)
	if !ok {
		t.Fatal("Get() did not find created job")
	}
	if got != job {
		t.Errorf("Get() = %+v, want %+v", got, job)
	}
}

func TestGetMissing(t *testing.T) {
	r := New()
	if _, ok := r.Get("nope"); ok {
		t.Error("Get() found a job that was never created")
	}
}

func TestTransitions(t *testing.T) {
	r := New()
	job, err := r.Create(common.KindTimeseries)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r.SetRunning(job.ID)
	got, _ := r.Get(job.ID)
	if got.Status != common.StatusRunning {
		t.Errorf("after SetRunning, Status = %q", got.Status)
	}
	if got.Updated.Before(job.Updated) {
		t.Error("Updated went backwards")
	}

	r.SetDone(job.ID, "charts/abc.png")
	got, _ = r.Get(job.ID)
	if got.Status != common.StatusDone {
		t.Errorf("after SetDone, Status = %q", got.Status)
	}
	if got.Key != "charts/abc.png" {
		t.Errorf("Key = %q, want charts/abc.png", got.Key)
	}
	if got.Error != "" {
		t.Errorf("Error = %q, want empty", got.Error)
	}
}

func TestSetFailed(t *testing.T) {
	r := New()
	job, err := r.Create(common.KindTopology)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r.SetFailed(job.ID, "输入数据必须包含 'nodes' 与 'edges'。")
	got, _ := r.Get(job.ID)
	if got.Status != common.StatusFailed {
		t.Errorf("Status = %q, want %q", got.Status, common.StatusFailed)
	}
	if got.Error == "" {
		t.Error("Error not recorded")
	}
}

func TestDelete(t *testing.T) {
	r := New()
	job, err := r.Create(common.KindTopology)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !r.Delete(job.ID) {
		t.Error("Delete() = false for existing job")
	}
	if _, ok := r.Get(job.ID); ok {
		t.Error("job still present after Delete()")
	}
	if r.Delete(job.ID) {
		t.Error("Delete() = true for already deleted job")
	}
}

func TestUpdateMissingID(t *testing.T) {
	r := New()
	r.SetRunning("ghost")
	r.SetDone("ghost", "key")
	r.SetFailed("ghost", "reason")

	if _, ok := r.Get("ghost"); ok {
		t.Error("updates on a missing id should not create a job")
	}
}
