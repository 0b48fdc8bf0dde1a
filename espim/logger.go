package espim

import (
	"go.uber.org/zap"
)

// Progress messages are informational only; the default logger discards
// them. Callers that want them install a real zap logger.
var log = zap.NewNop().Sugar()

func SetLogger(l *zap.Logger) {
	log = l.Sugar()
}
