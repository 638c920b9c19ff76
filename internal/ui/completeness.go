package ui

import (
	"fmt"
	"strings"
)

// CoverageReport mirrors internal/completeness.Report to avoid circular
// imports.
type CoverageReport struct {
	Score           float64
	Passed          int
	Total           int
	MissingRequired []FieldKey
	MissingOptional []FieldKey
}

// FieldKey represents an indicator name.
type FieldKey interface {
	String() string
}

// renderCoverage shows how many schema indicators the request supplied.
func renderCoverage(r CoverageReport) string {
	var sb strings.Builder

	sb.WriteString(SectionHeader.Render("Input Coverage"))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Supplied", RenderBar(r.Score, 30, scoreColor(r.Score))+" "+renderScorePercentage(r.Score)))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render(fmt.Sprintf("(%d/%d indicators supplied)", r.Passed, r.Total)))

	if len(r.MissingRequired) > 0 {
		sb.WriteString("\n")
		sb.WriteString(Error.Render(fmt.Sprintf("▼ Required (%d missing)", len(r.MissingRequired))))
		for _, f := range r.MissingRequired {
			sb.WriteString("\n  " + GetCrossMark() + " " + f.String())
		}
	}
	if len(r.MissingOptional) > 0 {
		sb.WriteString("\n")
		sb.WriteString(Warning.Render(fmt.Sprintf("▼ Defaulted (%d)", len(r.MissingOptional))))
		for _, f := range r.MissingOptional {
			sb.WriteString("\n  " + GetWarnMark() + " " + Dim.Render(f.String()))
		}
	}
	return sb.String()
}

func renderScorePercentage(score float64) string {
	formatted := fmt.Sprintf("%.1f%%", score*100)
	switch {
	case score >= 0.8:
		return Success.Render(formatted)
	case score >= 0.5:
		return Warning.Render(formatted)
	}
	return Error.Render(formatted)
}

func formatFieldKeys(keys []FieldKey) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
