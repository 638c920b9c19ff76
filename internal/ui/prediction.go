package ui

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// PredictionReport mirrors a predictor result plus the schema context needed
// to draw it.
type PredictionReport struct {
	RequestID   string
	ClusterID   int
	Label       string
	Description string
	Indicators  []IndicatorRow
	// Squared distance to each centroid with the label it resolves to.
	Distances []DistanceRow
	Coverage  *CoverageReport
}

type IndicatorRow struct {
	Name         string
	Raw          float64
	Standardized float64
	Min, Max     float64
	Defaulted    bool
}

type DistanceRow struct {
	ClusterID int
	Label     string
	Distance  float64
}

// PredictionUI renders predictions for the predict command.
type PredictionUI struct {
	writer io.Writer
	quiet  bool
}

func NewPredictionUI(w io.Writer, quiet bool) *PredictionUI {
	return &PredictionUI{writer: w, quiet: quiet}
}

// PrintReport renders the full styled prediction box.
func (p *PredictionUI) PrintReport(r PredictionReport) {
	if p.quiet {
		return
	}
	var out strings.Builder

	out.WriteString(ClusterStyle(r.ClusterID).Render(fmt.Sprintf("Cluster %d · %s", r.ClusterID, r.Label)))
	out.WriteString("\n")
	if r.Description != "" {
		out.WriteString(Dim.Render(r.Description))
		out.WriteString("\n")
	}
	out.WriteString(FormatKeyValue("Request", Muted.Render(r.RequestID)))
	out.WriteString("\n\n")

	out.WriteString(p.renderIndicators(r.Indicators))
	out.WriteString("\n\n")
	out.WriteString(p.renderDistances(r.ClusterID, r.Distances))

	if r.Coverage != nil {
		out.WriteString("\n\n")
		out.WriteString(renderCoverage(*r.Coverage))
	}
	fmt.Fprintln(p.writer, ClusterBox(r.ClusterID).Render(out.String()))
}

func (p *PredictionUI) renderIndicators(rows []IndicatorRow) string {
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render("Indicators"))

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Name))
	}
	for _, r := range rows {
		frac := 0.0
		if r.Max > r.Min {
			frac = (r.Raw - r.Min) / (r.Max - r.Min)
		}
		name := fmt.Sprintf("%-*s", width, r.Name)
		line := fmt.Sprintf("\n%s %s %5.2f  %s", Dim.Render(name), RenderBar(frac, 20, ColorSecondary), r.Raw, Muted.Render(fmt.Sprintf("z=%+.2f", r.Standardized)))
		if r.Defaulted {
			line += " " + Warning.Render("(default)")
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func (p *PredictionUI) renderDistances(assigned int, rows []DistanceRow) string {
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render("Distance to centroids"))
	for _, r := range rows {
		mark := " "
		if r.ClusterID == assigned {
			mark = GetCheckMark()
		}
		fmt.Fprintf(&sb, "\n%s %s %s", mark, ClusterStyle(r.ClusterID).Render(fmt.Sprintf("%d %-24s", r.ClusterID, r.Label)), Dim.Render(fmt.Sprintf("%.4f", r.Distance)))
	}
	return sb.String()
}

// PrintPlainSummary prints one unstyled line per fact, for scripts and logs.
func (p *PredictionUI) PrintPlainSummary(r PredictionReport) {
	fmt.Fprintf(p.writer, "cluster: %d\n", r.ClusterID)
	fmt.Fprintf(p.writer, "label: %s\n", r.Label)
	if r.Description != "" {
		fmt.Fprintf(p.writer, "description: %s\n", r.Description)
	}
	fmt.Fprintf(p.writer, "request: %s\n", r.RequestID)
	if r.Coverage != nil {
		fmt.Fprintf(p.writer, "coverage: %.1f%% (%d/%d)\n", r.Coverage.Score*100, r.Coverage.Passed, r.Coverage.Total)
		if len(r.Coverage.MissingOptional) > 0 {
			fmt.Fprintf(p.writer, "defaulted: %s\n", formatFieldKeys(r.Coverage.MissingOptional))
		}
	}
}
