package io

import (
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// WriteBOM writes a BOM to a file in the specified format.
// The format parameter can be "json", "xml", or "auto" (default).
// If "auto", the format is determined from the file extension.
// If spec is provided, it encodes with that specific CycloneDX version.
func WriteBOM(bom *cdx.BOM, outputPath string, format string, spec string) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	actual, err := bomFormat(ext, format)
	if err != nil {
		return err
	}
	if "."+actual != ext {
		return fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeBOM(f, bom, actual, spec)
}

// EncodeBOM writes a pretty-printed BOM to w. format is "json" or "xml".
func EncodeBOM(w goio.Writer, bom *cdx.BOM, format string, spec string) error {
	actual, err := bomFormat("", format)
	if err != nil {
		return err
	}
	fileFmt := cdx.BOMFileFormatJSON
	if actual == "xml" {
		fileFmt = cdx.BOMFileFormatXML
	}

	encoder := cdx.NewBOMEncoder(w, fileFmt)
	encoder.SetPretty(true)
	if spec == "" {
		return encoder.Encode(bom)
	}
	sv, ok := ParseSpecVersion(spec)
	if !ok {
		return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
	}
	return encoder.EncodeVersion(bom, sv)
}

var specVersions = map[string]cdx.SpecVersion{
	"1.5": cdx.SpecVersion1_5,
	"1.6": cdx.SpecVersion1_6,
}

// ParseSpecVersion parses a spec version string to a CycloneDX SpecVersion.
// Model cards need 1.5 or later.
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	sv, ok := specVersions[strings.TrimSpace(s)]
	if !ok {
		return cdx.SpecVersion1_6, false
	}
	return sv, true
}

func bomFormat(ext, format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", "auto":
		if ext == ".xml" {
			return "xml", nil
		}
		return "json", nil
	case "json", "xml":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported BOM format: %q", format)
	}
}
