package completeness

import (
	"bytes"
	"testing"

	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

func TestCheck_CoreComplete(t *testing.T) {
	raw := map[string]float64{"SafetySecurity": 1, "Governance": 2, "EconomicQuality": 3, "LivingConditions": 4}
	r := Check(schema.Core(), raw)
	if r.Score != 1 || r.Passed != 4 || r.Total != 4 {
		t.Fatalf("unexpected report %+v", r)
	}
	if len(r.MissingRequired) != 0 || len(r.MissingOptional) != 0 {
		t.Fatalf("expected nothing missing, got %+v", r)
	}
}

func TestCheck_FullPartial(t *testing.T) {
	raw := map[string]float64{"SafetySecurity": 1, "Governance": 2, "EconomicQuality": 3, "Health": 4}
	r := Check(schema.Full(), raw)

	if r.Passed != 4 || r.Total != 12 {
		t.Fatalf("Passed/Total = %d/%d, want 4/12", r.Passed, r.Total)
	}
	if r.Score != 4.0/12.0 {
		t.Fatalf("Score = %v", r.Score)
	}
	if len(r.MissingRequired) != 1 || r.MissingRequired[0] != schema.LivingConditions {
		t.Fatalf("MissingRequired = %v", r.MissingRequired)
	}
	if len(r.MissingOptional) != 7 || r.MissingOptional[0] != schema.PersonalFreedom {
		t.Fatalf("MissingOptional = %v", r.MissingOptional)
	}
}

func TestPrintReport_UsesConfiguredLoggerWriter(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	PrintReport(Report{Score: 0.5, Passed: 1, Total: 2})
	got := buf.String()
	want := "Coverage: score=50.0% (1/2)\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestPrintReport_NoLoggerWriter_DoesNothing(t *testing.T) {
	SetLogger(nil)
	PrintReport(Report{Score: 1, Passed: 1, Total: 1})
}

func TestPrintReport_WithMissingFeatures(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	PrintReport(Report{
		Score:           0,
		Passed:          0,
		Total:           3,
		MissingRequired: []schema.Feature{schema.Governance},
		MissingOptional: []schema.Feature{schema.Health, schema.Education},
	})

	got := buf.String()
	want := "Coverage: score=0.0% (0/3)\n" +
		"Coverage: missing required: Governance\n" +
		"Coverage: defaulted: Health, Education\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
