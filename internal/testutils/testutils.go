package testutils

import (
	"testing"
	"time"

	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap/zaptest"
)

// NewTestLogger returns a logger forwarding its output to the testing.T
// instance, so log lines show up alongside failing tests.
func NewTestLogger(t *testing.T) *logging.Logger {
	return logging.NewLogger(zaptest.NewLogger(t).Sugar(), time.Hour)
}
