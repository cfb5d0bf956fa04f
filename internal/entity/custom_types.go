package entity

import (
	"fmt"
	"strings"
	"time"
)

// CustomTime is a wall-clock timestamp written as "2006-01-02T15:04" in JSON.
// The hour is kept exactly as given, which the matinee rule depends on.
type CustomTime struct {
	time.Time
}

const customTimeLayout = "2006-01-02T15:04"

func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(customTimeLayout, s)
	if err != nil {
		return fmt.Errorf("time %q must match %s: %w", s, customTimeLayout, err)
	}
	ct.Time = t
	return nil
}

func (ct CustomTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ct.Format(customTimeLayout) + `"`), nil
}
