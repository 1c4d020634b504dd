package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GetLocation returns a fixed zone of a GMT+H or GMT+H:MM format timezone
func GetLocation(timezone string) *time.Location {
	tz := strings.ToUpper(strings.TrimSpace(timezone))
	if !strings.HasPrefix(tz, "GMT") || len(tz) < 5 {
		return nil
	}

	sign := 1
	switch tz[3] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil
	}

	parts := strings.SplitN(tz[4:], ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours > 14 {
		return nil
	}

	minutes := 0
	if len(parts) == 2 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil || minutes >= 60 {
			return nil
		}
	}

	name := fmt.Sprintf("GMT%c%d", tz[3], hours)
	if minutes > 0 {
		name = fmt.Sprintf("%s:%02d", name, minutes)
	}
	offset := sign * (hours*3600 + minutes*60)
	return time.FixedZone(name, offset)
}
