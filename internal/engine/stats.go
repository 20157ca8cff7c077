package engine

import (
	"fmt"
	"time"

	"github.com/ivlev/filmstrip/internal/system"
)

type Timings struct {
	Decode   time.Duration
	Walk     time.Duration
	Assemble time.Duration
	Save     time.Duration
	Total    time.Duration
}

// Report formats the timings as a performance summary.
func (t Timings) Report(build string, frames int, canvasBytes uint64) string {
	if build == "" {
		build = "dev"
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d\n"+
			"Canvas: %s\n"+
			"Decode: %.3fs\n"+
			"Walk: %.3fs\n"+
			"Assemble: %.3fs\n"+
			"Save: %.3fs\n"+
			"Total Time: %.3fs\n"+
			"----------------------------\n",
		build, frames, system.Bytes(canvasBytes),
		t.Decode.Seconds(), t.Walk.Seconds(), t.Assemble.Seconds(), t.Save.Seconds(), t.Total.Seconds(),
	)
}
