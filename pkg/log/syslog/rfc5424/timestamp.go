package rfc5424

import (
	"strconv"
	"time"
)

// Timestamp is the TIMESTAMP field of a message, a formalized timestamp derived from RFC 3339.
// RFC 5424 restricts it further: "T" and "Z" must be upper case, "T" is required and leap
// seconds must not be used. A syslog application must use the NILVALUE if it is incapable of
// obtaining the system time.
//
// The implementations are Preformatted, Time, LocalNow and NoTimestamp.
type Timestamp interface {
	appendTimestamp(dst []byte, clock func() time.Time) []byte
}

// Preformatted is a timestamp which was already formatted by the caller. It is written as is
// without any validation. It is up to the caller to make sure it is a valid RFC 3339 timestamp.
type Preformatted string

// Time is formatted with microsecond precision and the numeric offset of its location.
// See AppendTimestamp.
type Time time.Time

// LocalNow samples the local clock while formatting the message.
type LocalNow struct{}

// NoTimestamp writes the NILVALUE
type NoTimestamp struct{}

var (
	_ Timestamp = Preformatted("")
	_ Timestamp = Time{}
	_ Timestamp = LocalNow{}
	_ Timestamp = NoTimestamp{}
)

func (ts Preformatted) appendTimestamp(dst []byte, _ func() time.Time) []byte {
	return append(dst, ts...)
}

func (ts Time) appendTimestamp(dst []byte, _ func() time.Time) []byte {
	return AppendTimestamp(dst, time.Time(ts))
}

func (LocalNow) appendTimestamp(dst []byte, clock func() time.Time) []byte {
	if clock == nil {
		clock = time.Now
	}
	return AppendTimestamp(dst, clock())
}

func (NoTimestamp) appendTimestamp(dst []byte, _ func() time.Time) []byte {
	return append(dst, nilValue...)
}

const timestampLayout = "2006-01-02T15:04:05.000000"

// AppendTimestamp appends `t` as YYYY-MM-DDTHH:MM:SS.ffffff±HH:00 to dst.
//
// The offset is always rendered with 00 minutes, also for locations with an offset like +05:30.
// The hours are truncated and the sign is taken from them, so -00:30 is rendered as +00:00.
// Offsets of 100 hours and more, only possible with time.FixedZone, get more hour digits.
func AppendTimestamp(dst []byte, t time.Time) []byte {
	dst = t.AppendFormat(dst, timestampLayout)

	_, offset := t.Zone()
	hours := offset / 3600
	sign := byte('+')
	if hours < 0 {
		sign = '-'
		hours = -hours
	}
	dst = append(dst, sign)
	if hours < 10 {
		dst = append(dst, '0')
	}
	dst = strconv.AppendInt(dst, int64(hours), 10)
	return append(dst, ':', '0', '0')
}
