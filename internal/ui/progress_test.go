package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"sharpc/internal/buildpipeline"
)

func TestProgressTracksProjects(t *testing.T) {
	model := NewProgressModel("build", []string{"Core", "App"}, nil).(*progressModel)

	model.applyEvent(buildpipeline.Event{Project: "Core", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusWorking})
	model.applyEvent(buildpipeline.Event{Project: "Core", Unit: "src/a.cs", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusDone})
	model.applyEvent(buildpipeline.Event{Project: "Core", Unit: "src/b.cs", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusDone})
	core := model.items[0]
	if core.status != "lowering" || core.units != 2 || core.unit != "src/b.cs" {
		t.Fatalf("unexpected item %+v", core)
	}
	if !strings.Contains(model.View(), "Core [2] src/b.cs") {
		t.Fatalf("view must show unit progress:\n%s", model.View())
	}

	// stage ends stay intermediate until the project finishes
	model.applyEvent(buildpipeline.Event{Project: "Core", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusDone})
	if model.items[0].status != "lowering" {
		t.Fatalf("emit end must not finish the project, got %q", model.items[0].status)
	}
	model.applyEvent(buildpipeline.Event{Project: "Core", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	model.applyEvent(buildpipeline.Event{Project: "App", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusSkipped})
	if model.items[0].status != "done" || model.items[1].status != "skipped" {
		t.Fatalf("unexpected final states %q %q", model.items[0].status, model.items[1].status)
	}
	model.applyEvent(buildpipeline.Event{Project: "Core", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusWorking})
	if model.items[0].status != "done" {
		t.Fatalf("finished project must ignore later events")
	}
}

func TestProgressIgnoresUnknownProject(t *testing.T) {
	model := NewProgressModel("build", []string{"App"}, nil).(*progressModel)
	if cmd := model.applyEvent(buildpipeline.Event{Project: "Other", Status: buildpipeline.StatusError}); cmd != nil {
		t.Fatalf("unknown project must be ignored")
	}
	if model.items[0].status != "queued" {
		t.Fatalf("got %q", model.items[0].status)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	got := truncate("a-very-long-project-name", 10)
	if !strings.HasSuffix(got, "...") || runewidth.StringWidth(got) > 10 {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語", 3); runewidth.StringWidth(got) > 3 {
		t.Fatalf("wide runes must count double, got %q", got)
	}
}
