package bom

import (
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
)

const (
	ToolVendor = "idlab-discover"
	ToolName   = "EconCluster-cli"
)

// addSerialNumber sets a serial number if not already set.
func addSerialNumber(bom *cdx.BOM) {
	if bom.SerialNumber == "" {
		bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	}
}

// addTimestamp sets the timestamp if not already set.
func addTimestamp(bom *cdx.BOM, now time.Time) {
	if bom.Metadata.Timestamp == "" {
		bom.Metadata.Timestamp = now.Format(time.RFC3339)
	}
}

// addTool records this binary in bom.metadata.tools.
func addTool(bom *cdx.BOM, version string) {
	if bom.Metadata.Tools == nil {
		bom.Metadata.Tools = &cdx.ToolsChoice{}
	}
	if version == "" {
		version = ToolVersion()
	}
	comp := cdx.Component{
		Type:         cdx.ComponentTypeApplication,
		Manufacturer: &cdx.OrganizationalEntity{Name: ToolVendor},
		Name:         ToolName,
		Version:      version,
	}
	if bom.Metadata.Tools.Components == nil {
		bom.Metadata.Tools.Components = &[]cdx.Component{comp}
		return
	}
	components := append(*bom.Metadata.Tools.Components, comp)
	bom.Metadata.Tools.Components = &components
}
