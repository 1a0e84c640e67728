package utils

import (
	"log"
	"time"
)

// TimeNowParis returns the current time in the Europe/Paris timezone, the
// reference timezone for all persisted timestamps.
func TimeNowParis() time.Time {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}
