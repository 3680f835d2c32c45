package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/harmony/internal/constants"
)

type OffTimeKind string

const (
	OffTimeSingle  OffTimeKind = "single"
	OffTimeRange   OffTimeKind = "range"
	OffTimeWeekend OffTimeKind = "weekend"
)

// ParseOffTimeKind validates a kind given on the command line.
func ParseOffTimeKind(s string) (OffTimeKind, error) {
	switch k := OffTimeKind(s); k {
	case OffTimeSingle, OffTimeRange, OffTimeWeekend:
		return k, nil
	}
	return "", fmt.Errorf("invalid off-time kind %q (single|range|weekend)", s)
}

type OffTime struct {
	ID        string      `json:"id" validate:"required"`
	Label     string      `json:"label"`
	Kind      OffTimeKind `json:"type" validate:"oneof=single range weekend"`
	StartDate string      `json:"startDate" validate:"datetime=2006-01-02"`
	EndDate   string      `json:"endDate" validate:"datetime=2006-01-02"` // on or after StartDate for range
}

// NewOffTime creates an entry covering today with the default label for kind.
func NewOffTime(kind OffTimeKind, today string) OffTime {
	label := constants.OffTimeLabelRange
	switch kind {
	case OffTimeWeekend:
		label = constants.OffTimeLabelWeekend
	case OffTimeSingle:
		label = constants.OffTimeLabelSingle
	}
	return OffTime{
		ID:        uuid.New().String(),
		Label:     label,
		Kind:      kind,
		StartDate: today,
		EndDate:   today,
	}
}
