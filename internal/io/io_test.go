package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

func minimalBOM() *cdx.BOM {
	bom := cdx.NewBOM()
	bom.SpecVersion = cdx.SpecVersion1_6
	bom.Metadata = &cdx.Metadata{
		Component: &cdx.Component{
			Name: "test-model",
		},
	}
	return bom
}

func TestParseSpecVersion_AllCases(t *testing.T) {
	tcs := []struct {
		in   string
		want cdx.SpecVersion
		ok   bool
	}{
		{"1.5", cdx.SpecVersion1_5, true},
		{"1.6", cdx.SpecVersion1_6, true},
		{" 1.6 ", cdx.SpecVersion1_6, true},
		{"1.4", cdx.SpecVersion1_6, false},
		{"", cdx.SpecVersion1_6, false},
		{"1.7", cdx.SpecVersion1_6, false},
		{"nope", cdx.SpecVersion1_6, false},
	}

	for _, tc := range tcs {
		got, ok := ParseSpecVersion(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSpecVersion(%q) = (%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func decodeBOM(t *testing.T, path string, format cdx.BOMFileFormat) *cdx.BOM {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, format).Decode(bom); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return bom
}

func TestWriteBOM_JSON_Auto_RoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "bom.json")

	if err := WriteBOM(minimalBOM(), out, "auto", ""); err != nil {
		t.Fatalf("WriteBOM: %v", err)
	}
	got := decodeBOM(t, out, cdx.BOMFileFormatJSON)
	if got.Metadata == nil || got.Metadata.Component == nil || got.Metadata.Component.Name != "test-model" {
		t.Fatalf("roundtrip BOM missing expected metadata.component.name")
	}
}

func TestWriteBOM_JSON_Explicit_SpecVersion(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bom.json")

	if err := WriteBOM(minimalBOM(), out, " json ", "1.5"); err != nil {
		t.Fatalf("WriteBOM: %v", err)
	}
	got := decodeBOM(t, out, cdx.BOMFileFormatJSON)
	if got.SpecVersion != cdx.SpecVersion1_5 {
		t.Fatalf("specVersion = %v, want 1.5", got.SpecVersion)
	}
}

func TestWriteBOM_XML_Auto_SelectsByExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bom.xml")

	if err := WriteBOM(minimalBOM(), out, "auto", ""); err != nil {
		t.Fatalf("WriteBOM: %v", err)
	}
	got := decodeBOM(t, out, cdx.BOMFileFormatXML)
	if got.Metadata == nil || got.Metadata.Component == nil || got.Metadata.Component.Name != "test-model" {
		t.Fatalf("roundtrip BOM missing expected metadata.component.name")
	}
}

func TestWriteBOM_Rejects(t *testing.T) {
	dir := t.TempDir()
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "bom.json"), "xml", ""); err == nil {
		t.Fatalf("expected extension mismatch error")
	}
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "bom.json"), "yaml", ""); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "bom.json"), "json", "0.9"); err == nil {
		t.Fatalf("expected unsupported spec error")
	}
}

func TestEncodeBOM_Writer(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeBOM(&buf, minimalBOM(), "json", "1.6"); err != nil {
		t.Fatalf("EncodeBOM: %v", err)
	}
	if !strings.Contains(buf.String(), `"specVersion": "1.6"`) {
		t.Fatalf("expected pretty JSON with spec version, got:\n%s", buf.String())
	}
}

func TestReadInput_Formats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "in.json")
	yamlPath := filepath.Join(dir, "in.yml")
	if err := os.WriteFile(jsonPath, []byte(`{"Governance": 7.5, "SafetySecurity": 3}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte("Governance: 7.5\nSafetySecurity: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, p := range []string{jsonPath, yamlPath} {
		got, err := ReadInput(p, "auto")
		if err != nil {
			t.Fatalf("ReadInput(%s): %v", p, err)
		}
		if got["Governance"] != 7.5 || got["SafetySecurity"] != 3 || len(got) != 2 {
			t.Fatalf("ReadInput(%s) = %v", p, got)
		}
	}

	if _, err := ReadInput(filepath.Join(dir, "missing.json"), ""); !apperr.IsUser(err) {
		t.Fatalf("expected user error for missing input, got %v", err)
	}
	if _, err := ReadInput(jsonPath, "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestDecodeInput_RejectsNonNumbers(t *testing.T) {
	_, err := DecodeInput([]byte(`{"Governance": "high"}`), "json")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Feature != "Governance" {
		t.Fatalf("expected validation error naming Governance, got %v", err)
	}

	if _, err := DecodeInput([]byte(`[1,2]`), "json"); err == nil {
		t.Fatalf("expected error for non-object input")
	}
	if _, err := DecodeInput([]byte("- 1\n- 2\n"), "yaml"); err == nil {
		t.Fatalf("expected error for YAML sequence")
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"Governance=7.5", " Health = 2 "})
	if err != nil {
		t.Fatalf("ParseAssignments: %v", err)
	}
	if got["Governance"] != 7.5 || got["Health"] != 2 {
		t.Fatalf("unexpected map %v", got)
	}

	bad := [][]string{
		{"Governance"},
		{"=3"},
		{"Governance=x"},
		{"Governance=1", "Governance=2"},
	}
	for _, b := range bad {
		if _, err := ParseAssignments(b); err == nil {
			t.Fatalf("expected error for %v", b)
		}
	}
}

func TestMerge(t *testing.T) {
	got := Merge(map[string]float64{"a": 1, "b": 2}, map[string]float64{"b": 3})
	if got["a"] != 1 || got["b"] != 3 {
		t.Fatalf("Merge = %v", got)
	}
}

func TestWriteResult(t *testing.T) {
	v := struct {
		Label string `json:"label" yaml:"label"`
	}{"Emerging/Berkembang"}

	var js, ym bytes.Buffer
	if err := WriteResult(&js, v, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := WriteResult(&ym, v, "YAML"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(js.String(), `"label": "Emerging/Berkembang"`) {
		t.Fatalf("json output %q", js.String())
	}
	if strings.TrimSpace(ym.String()) != "label: Emerging/Berkembang" {
		t.Fatalf("yaml output %q", ym.String())
	}
	if err := WriteResult(&js, v, "csv"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
