package models

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/constants"
)

// ClampDuration snaps minutes onto the duration input's 15..480 grid.
func ClampDuration(minutes int) int {
	if minutes < constants.MinDurationMin {
		return constants.MinDurationMin
	}
	if minutes > constants.MaxDurationMin {
		return constants.MaxDurationMin
	}
	step := constants.DurationStepMin
	return (minutes + step/2) / step * step
}

// FormatDuration renders minutes as "1h 30m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
