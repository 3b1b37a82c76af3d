package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mar 15, 2026", FormatDate("2026-03-15T09:30:00Z"))
	assert.Equal(t, "Mar 15, 2026", FormatDate("2026-03-15T09:30:00"))
	assert.Equal(t, "Mar 15, 2026", FormatDate("2026-03-15"))
	assert.Equal(t, "Unknown", FormatDate(""))
	assert.Equal(t, "Unknown", FormatDate("not-a-date"))
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "March 15, 2026 at 9:30 AM UTC", FormatDateTime("2026-03-15T09:30:00Z"))
	assert.Equal(t, "garbage", FormatDateTime("garbage"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly-10", Truncate("exactly-10", 10))
	assert.Equal(t, "this is...", Truncate("this is a long description", 10))
	assert.Equal(t, "N/A", Truncate("", 10))
	assert.Equal(t, "N/A", Truncate("   ", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestRoleDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Administrator", RoleDisplay([]string{"GUEST", "ADMIN", "USER"}))
	assert.Equal(t, "User", RoleDisplay([]string{"GUEST", "USER"}))
	assert.Equal(t, "Guest", RoleDisplay([]string{"GUEST"}))
	assert.Equal(t, "Guest", RoleDisplay(nil))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3m 20s", FormatDuration(200))
	assert.Equal(t, "45s", FormatDuration(45))
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "60m 0s", FormatDuration(3600))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "50.0 MB", FormatBytes(52428800))
	assert.Equal(t, "1.5 GB", FormatBytes(1610612736))
}

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "expired", FormatRemaining(time.Now().Add(-time.Minute)))

	out := FormatRemaining(time.Now().Add(4*time.Hour + 31*time.Minute + 30*time.Second))
	assert.Equal(t, "4h 31m", out)
}
