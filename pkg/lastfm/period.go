package lastfm

import "fmt"

// Period is the time span of top lists.
type Period string

const (
	PeriodOverall      Period = "overall"
	PeriodSevenDays    Period = "7day"
	PeriodOneMonth     Period = "1month"
	PeriodThreeMonths  Period = "3month"
	PeriodSixMonths    Period = "6month"
	PeriodTwelveMonths Period = "12month"
)

var periods = []Period{PeriodOverall, PeriodSevenDays, PeriodOneMonth, PeriodThreeMonths, PeriodSixMonths, PeriodTwelveMonths}

// ParsePeriod validates a period string. An empty string means overall.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodOverall, nil
	}
	for _, p := range periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("lastfm: unknown period %q", s)
}
