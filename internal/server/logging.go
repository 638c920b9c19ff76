package server

import (
	"io"

	"github.com/idlab-discover/EconCluster-cli/internal/logging"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Serve:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for HTTP access logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(requestID string, format string, args ...any) {
	logger.Logf(requestID, format, args...)
}
