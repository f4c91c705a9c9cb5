package services

import "time"

// Notification messages carry US-style date/time stamps, matching what the
// dashboard renders.
func formatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

func formatTime(t time.Time) string {
	return t.Format("03:04 PM")
}
