package state

import (
	"time"

	"rst2sile/config"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: config.OutputFmtPdf,
	}
}
