// Package util holds display formatting shared by the page templates.
package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders an ISO timestamp as "Jan 02, 2006", tolerating a
// trailing Z and returning "Unknown" for anything unparseable.
func FormatDate(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return "Unknown"
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateTime renders a scheduled timestamp with time of day.
func FormatDateTime(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return iso
	}
	return t.Format("January 02, 2006 at 3:04 PM MST")
}

func parseISO(iso string) (time.Time, bool) {
	if strings.TrimSpace(iso) == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Truncate shortens text to maxLen runes with an ellipsis.
func Truncate(text string, maxLen int) string {
	if strings.TrimSpace(text) == "" {
		return "N/A"
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

var rolePriority = map[string]int{
	"ADMIN": 3,
	"USER":  2,
	"GUEST": 1,
}

// RoleDisplay reduces a role set to its highest-priority display name.
func RoleDisplay(roles []string) string {
	top := ""
	best := 0
	for _, role := range roles {
		if p := rolePriority[role]; p > best {
			best = p
			top = role
		}
	}

	switch top {
	case "ADMIN":
		return "Administrator"
	case "USER":
		return "User"
	default:
		return "Guest"
	}
}

// FormatDuration renders seconds as "3m 20s".
func FormatDuration(seconds int64) string {
	minutes := seconds / 60
	rest := seconds % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, rest)
	}
	return fmt.Sprintf("%ds", rest)
}

// FormatBytes renders a byte count with a binary unit, one decimal.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatRemaining renders a countdown to a deadline as "4h 31m", or
// "expired" once the deadline has passed.
func FormatRemaining(deadline time.Time) string {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return "expired"
	}

	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
