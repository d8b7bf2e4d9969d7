package driver

import (
	"encoding/json"
	"fmt"

	"sharpc/internal/diag"
	"sharpc/internal/observ"
	"sharpc/internal/source"
)

type timingPayload struct {
	Kind     string                 `json:"kind"`
	Project  string                 `json:"project,omitempty"`
	TotalMS  float64                `json:"total_ms"`
	Phases   []observ.PhaseReport   `json:"phases"`
	Counters []observ.CounterReport `json:"counters,omitempty"`
}

func appendTimingDiagnostic(bag *diag.Bag, project string, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{
		Kind:     "pipeline",
		Project:  project,
		TotalMS:  report.TotalMS,
		Phases:   report.Phases,
		Counters: report.Counters,
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if project != "" {
		msg += ", project " + project
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := &diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Primary:  source.NoSpan,
		Message:  msg,
		Notes:    []diag.Note{{Span: source.NoSpan, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	// timings must survive a full bag
	overflow := diag.NewBag(len(bag.Items()) + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
