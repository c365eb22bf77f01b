package utils

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders how long ago t was relative to now as an Arabic
// display string. Buckets are computed by floor division on the elapsed
// duration, not by calendar arithmetic: a week is exactly 7*24h and a month
// exactly 30*24h, so a 29-day gap reports as weeks, never as a month.
func FormatRelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case hours < 1:
		return "منذ أقل من ساعة"
	case hours < 24:
		return fmt.Sprintf("منذ %d ساعة", hours)
	case days == 1:
		return "منذ يوم واحد"
	case days < 7:
		return fmt.Sprintf("منذ %d أيام", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return fmt.Sprintf("منذ %d أسبوع", weeks)
		}
		return fmt.Sprintf("منذ %d أسابيع", weeks)
	default:
		months := days / 30
		if months == 1 {
			return fmt.Sprintf("منذ %d شهر", months)
		}
		return fmt.Sprintf("منذ %d أشهر", months)
	}
}
