package state

import (
	"time"

	"ao3/common"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		OutputFmt: common.OutputFmtXhtml,
	}
}
