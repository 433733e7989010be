package feed

import "time"

// DaySeed encodes the calendar day of t in loc as yyyymmdd.
func DaySeed(t time.Time, loc *time.Location) int64 {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}
