package discordx

import (
	"strconv"
	"time"
)

// discordEpochMS is the Discord epoch (2015-01-01T00:00:00Z) in
// milliseconds since the Unix epoch. Snowflake IDs carry their creation
// time in the upper 42 bits relative to it.
const discordEpochMS int64 = 1420070400000

// TimeToSnowflake converts an instant into the smallest snowflake ID
// created at or after it, which makes a timestamp usable as an "after"
// bound in history queries.
func TimeToSnowflake(t time.Time) string {
	ms := t.UnixMilli() - discordEpochMS
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatUint(uint64(ms)<<22, 10)
}

// SnowflakeTime extracts the creation time from a snowflake ID.
func SnowflakeTime(id string) (time.Time, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	ms := int64(n>>22) + discordEpochMS
	return time.UnixMilli(ms).UTC(), nil
}

// snowflakeLess orders two snowflake IDs chronologically. Falls back to a
// string comparison when an ID is not numeric.
func snowflakeLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA != nil || errB != nil {
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	}
	return na < nb
}
