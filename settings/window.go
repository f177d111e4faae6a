package settings

import (
	"fmt"
	"time"

	"pitchbook/models"
)

type window struct {
	start, end time.Time
}

func parseWindow(h *models.HoursWindow) (window, error) {
	s, err := time.Parse("15:04", h.Start)
	if err != nil {
		return window{}, fmt.Errorf("invalid time %q", h.Start)
	}
	e, err := time.Parse("15:04", h.End)
	if err != nil {
		return window{}, fmt.Errorf("invalid time %q", h.End)
	}
	if !e.After(s) {
		return window{}, fmt.Errorf("working hours end %s not after start %s", h.End, h.Start)
	}
	return window{start: s, end: e}, nil
}

// EffectiveHours picks the window a booking must fit: the field's own
// availability when set, otherwise the facility working hours.
func EffectiveHours(field *models.Field, general *models.GeneralSettings) *models.HoursWindow {
	if field != nil && field.AvailableHours != nil {
		return field.AvailableHours
	}
	if general != nil {
		return general.WorkingHours
	}
	return nil
}
