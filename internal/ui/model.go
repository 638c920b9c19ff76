package ui

import (
	"fmt"
	"io"
	"strings"
)

// ModelReport is everything the inspect command shows about a loaded model.
type ModelReport struct {
	Schema    string
	Algorithm string
	Features  []ScaleRow
	Centroids []CentroidRow
	Digests   []DigestRow
	LoadTime  string
}

type ScaleRow struct {
	Name     string
	Required bool
	Default  float64
	Mean     float64
	Scale    float64
	Constant bool
}

type CentroidRow struct {
	ID           int
	Label        string
	Description  string
	Standardized []float64
	// Raw is the centroid mapped back to indicator units.
	Raw []float64
}

type DigestRow struct {
	Artifact string
	Path     string
	Format   string
	SHA256   string
	Size     int64
}

// ModelUI renders the inspect command.
type ModelUI struct {
	writer io.Writer
	quiet  bool
}

func NewModelUI(w io.Writer, quiet bool) *ModelUI {
	return &ModelUI{writer: w, quiet: quiet}
}

func (m *ModelUI) PrintReport(r ModelReport) {
	if m.quiet {
		return
	}
	var out strings.Builder

	out.WriteString(Title.Render("Clustering model"))
	out.WriteString("\n")
	out.WriteString(FormatKeyValue("Schema", Highlight.Render(r.Schema)))
	out.WriteString("\n")
	out.WriteString(FormatKeyValue("Algorithm", r.Algorithm))
	out.WriteString("\n")
	out.WriteString(FormatKeyValue("Clusters", fmt.Sprint(len(r.Centroids))))
	if r.LoadTime != "" {
		out.WriteString("\n")
		out.WriteString(FormatKeyValue("Loaded in", r.LoadTime))
	}

	out.WriteString("\n\n")
	out.WriteString(SectionHeader.Render("Scaling"))
	width := 0
	for _, f := range r.Features {
		width = max(width, len(f.Name))
	}
	for _, f := range r.Features {
		req := Muted.Render(fmt.Sprintf("optional, default %g", f.Default))
		if f.Required {
			req = Primary.Render("required")
		}
		line := fmt.Sprintf("\n  %-*s mean=%-8.4g scale=%-8.4g %s", width, f.Name, f.Mean, f.Scale, req)
		if f.Constant {
			line += " " + Warning.Render("constant")
		}
		out.WriteString(line)
	}

	out.WriteString("\n\n")
	out.WriteString(SectionHeader.Render("Centroids"))
	for _, c := range r.Centroids {
		fmt.Fprintf(&out, "\n%s %s", ClusterStyle(c.ID).Render(fmt.Sprintf("%d %s", c.ID, c.Label)), Dim.Render(c.Description))
		for i, f := range r.Features {
			if i >= len(c.Raw) || i >= len(c.Standardized) {
				break
			}
			fmt.Fprintf(&out, "\n  %-*s %7.3f  %s", width, f.Name, c.Raw[i], Muted.Render(fmt.Sprintf("z=%+.3f", c.Standardized[i])))
		}
	}

	if len(r.Digests) > 0 {
		out.WriteString("\n\n")
		out.WriteString(renderDigests(r.Digests))
	}
	fmt.Fprintln(m.writer, Box.Render(out.String()))
}

func renderDigests(ds []DigestRow) string {
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render("Artifacts"))
	for _, d := range ds {
		fmt.Fprintf(&sb, "\n  %s %s %s", Bold.Render(d.Artifact), d.Path, Muted.Render(fmt.Sprintf("(%s, %d bytes)", d.Format, d.Size)))
		fmt.Fprintf(&sb, "\n    %s", Dim.Render("sha256:"+d.SHA256))
	}
	return sb.String()
}
