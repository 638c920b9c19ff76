package ui

import (
	"fmt"
	"io"
	"strings"
)

// ValidationReport mirrors internal/validator.ValidationResult to avoid
// circular imports.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Schema   string
	Features int
	K        int
	Digests  []DigestRow
}

// ValidationUI provides a rich UI for the check command
type ValidationUI struct {
	writer io.Writer
	quiet  bool
}

// NewValidationUI creates a new UI handler for the check command
func NewValidationUI(w io.Writer, quiet bool) *ValidationUI {
	return &ValidationUI{writer: w, quiet: quiet}
}

// PrintReport renders the validation report
func (v *ValidationUI) PrintReport(report ValidationReport) {
	if v.quiet {
		return
	}

	var output strings.Builder
	if report.Valid {
		output.WriteString(Success.Bold(true).Render("✓ Artifacts OK"))
	} else {
		output.WriteString(Error.Bold(true).Render("✗ Artifacts unusable"))
	}
	output.WriteString("\n\n")

	output.WriteString(SectionHeader.Render("Model"))
	output.WriteString("\n")
	output.WriteString(FormatKeyValue("Schema", Highlight.Render(report.Schema)))
	output.WriteString("\n")
	output.WriteString(FormatKeyValue("Features", fmt.Sprint(report.Features)))
	output.WriteString("\n")
	output.WriteString(FormatKeyValue("Clusters", fmt.Sprint(report.K)))
	if len(report.Digests) > 0 {
		output.WriteString("\n\n")
		output.WriteString(renderDigests(report.Digests))
	}

	if len(report.Errors) > 0 {
		output.WriteString("\n\n")
		output.WriteString(renderList(Error.Render(fmt.Sprintf("▼ Errors (%d)", len(report.Errors))), GetCrossMark(), report.Errors, false))
	}
	if len(report.Warnings) > 0 {
		output.WriteString("\n\n")
		output.WriteString(renderList(Warning.Render(fmt.Sprintf("▼ Warnings (%d)", len(report.Warnings))), GetWarnMark(), report.Warnings, true))
	}

	if report.Valid {
		fmt.Fprintln(v.writer, SuccessBox.Render(output.String()))
	} else {
		fmt.Fprintln(v.writer, ErrorBox.Render(output.String()))
	}
}

func renderList(header, mark string, items []string, dim bool) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, it := range items {
		if dim {
			it = Dim.Render(it)
		}
		sb.WriteString("\n  " + mark + " " + it)
	}
	return sb.String()
}

// PrintSimpleReport prints a minimal text report
func (v *ValidationUI) PrintSimpleReport(report ValidationReport) {
	if report.Valid {
		fmt.Fprintln(v.writer, "Artifacts OK")
	} else {
		fmt.Fprintln(v.writer, "Artifacts unusable")
	}
	fmt.Fprintf(v.writer, "Errors: %d, Warnings: %d\n", len(report.Errors), len(report.Warnings))
	for _, e := range report.Errors {
		fmt.Fprintf(v.writer, "error: %s\n", e)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(v.writer, "warning: %s\n", w)
	}
}
