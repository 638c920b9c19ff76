package predictor

import (
	"io"

	"github.com/idlab-discover/EconCluster-cli/internal/logging"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Predict:", PrefixColor: ui.FgGreen}

// SetLogger sets an optional destination for prediction logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(requestID string, format string, args ...any) {
	logger.Logf(requestID, format, args...)
}
