package common

import (
	"time"
)

// DateLayout
const (
	DateFormatYYYYMMDD            = "2006-01-02"
	DateFormatYYYYMM              = "2006-01"
	DateFormatYYYYMMDDWithTime    = "2006-01-02 15:04:05"
	DateFormatYYYYMMDDHHMMSSNoSep = "20060102150405"
)

// transactionDateLayouts are the accepted booked_at formats, tried in order.
var transactionDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateFormatYYYYMMDDWithTime,
	DateFormatYYYYMMDD,
}

func Now() time.Time {
	return time.Now().UTC()
}

// ParseTransactionDate parses a booked_at value against the accepted layouts.
func ParseTransactionDate(value string) (time.Time, error) {
	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidFormatDate
}

// YearMonth formats a timestamp as the period label its activity buckets into.
func YearMonth(t time.Time) string {
	return t.Format(DateFormatYYYYMM)
}
