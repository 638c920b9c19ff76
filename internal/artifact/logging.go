package artifact

import (
	"io"

	"github.com/idlab-discover/EconCluster-cli/internal/logging"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Artifact:", PrefixColor: ui.FgCyan, OmitRequest: true}

// SetLogger sets an optional destination for artifact loading logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
