package logging

import (
	"time"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Track starts a timer for the named operation and returns the function
// that stops it and logs the elapsed time.
//
//	defer logging.Track(logger, "read_csv")()
func Track(logger pgcsv.Logger, operation string) func() {
	start := time.Now()
	return func() {
		logger.WithField("op", operation).
			Info("'%s' took %.4fs", operation, time.Since(start).Seconds())
	}
}
