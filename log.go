package clprover

import (
	"github.com/sirupsen/logrus"
)

// Logger is the package-level trace sink. Callers embedding this library
// in a larger service can redirect it with Logger.SetOutput/SetLevel
// like any other logrus.Logger; by default only warnings and above are
// emitted, so the per-operation trace lines stay silent.
var Logger = logrus.New()

func init() {
	Logger.SetLevel(logrus.WarnLevel)
}
