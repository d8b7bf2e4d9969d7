package buildpipeline

import (
	"sharpc/internal/driver"
)

// phaseObserver turns driver phase events into progress events and stage
// timings. The driver calls it from worker goroutines.
type phaseObserver struct {
	sink    ProgressSink
	timings *Timings
	baseDir string
}

func stageFor(phase string) (Stage, bool) {
	switch phase {
	case "load":
		return StageLoad, true
	case "lower":
		return StageLower, true
	case "emit":
		return StageEmit, true
	case "write":
		return StageWrite, true
	}
	return "", false
}

// OnPhase forwards one driver event.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage, ok := stageFor(ev.Name)
	if !ok || p == nil {
		return
	}
	if ev.Unit == "" && ev.Status != driver.PhaseStart {
		p.timings.Add(stage, ev.Elapsed)
	}
	if p.sink == nil {
		return
	}
	out := Event{Project: ev.Project, Stage: stage, Elapsed: ev.Elapsed}
	if ev.Unit != "" {
		out.Unit = displayPath(ev.Unit, p.baseDir)
	}
	switch ev.Status {
	case driver.PhaseStart:
		out.Status = StatusWorking
	case driver.PhaseFail:
		out.Status = StatusError
	default:
		out.Status = StatusDone
	}
	p.sink.OnEvent(out)
}

func emitQueued(sink ProgressSink, projects []string) {
	if sink == nil {
		return
	}
	for _, name := range projects {
		sink.OnEvent(Event{Project: name, Stage: StageLoad, Status: StatusQueued})
	}
}

func emitProject(sink ProgressSink, name string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Project: name, Stage: stage, Status: status, Err: err})
}
