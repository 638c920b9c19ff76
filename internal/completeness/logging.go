package completeness

import (
	"io"

	"github.com/idlab-discover/EconCluster-cli/internal/logging"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Coverage:", PrefixColor: ui.FgYellow, OmitRequest: true}

// SetLogger sets an optional destination for coverage output.
// When set to nil, coverage output is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
