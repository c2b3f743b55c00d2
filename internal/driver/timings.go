package driver

import (
	"encoding/json"
	"fmt"

	"cci/internal/diag"
	"cci/internal/observ"
	"cci/internal/source"
)

type timingPayload struct {
	Kind   string `json:"kind"`
	Path   string `json:"path,omitempty"`
	Report observ.Report
}

func (p timingPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string               `json:"kind"`
		Path    string               `json:"path,omitempty"`
		TotalMS float64              `json:"total_ms"`
		Phases  []observ.PhaseReport `json:"phases"`
	}{p.Kind, p.Path, p.Report.TotalMS, p.Report.Phases})
}

// appendTimingDiagnostic кладёт отчёт таймера в bag как ObsTimings info;
// переполненный bag расширяется, чтобы отчёт не потерялся.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.Report.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
