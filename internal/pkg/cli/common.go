package cli

import (
	"time"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// dateLayouts accepted by the date flags, local timezone.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf(`"%s" is not a valid date, expected eg. "2026-02-01 23:59"`, value)
}
