package bom

import (
	"io"

	"github.com/idlab-discover/EconCluster-cli/internal/logging"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "BOM:", PrefixColor: ui.FgMagenta, OmitRequest: true}

// SetLogger sets an optional destination for BOM build logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
