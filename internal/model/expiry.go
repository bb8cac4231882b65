package model

import (
	"strconv"
	"time"

	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

const expiryStampWidth = 9

// ExpiryStamp is the catalog's fixed-width expiry encoding: six date
// digits (YYMMDD) followed by the hour and the tens digit of the minute.
type ExpiryStamp int64

// StampFromTime encodes t into the catalog stamp format.
func StampFromTime(t time.Time) ExpiryStamp {
	date, _ := strconv.ParseInt(t.Format("060102"), 10, 64)
	return ExpiryStamp(date*1000 + int64(t.Hour())*10 + int64(t.Minute()/10))
}

// Time decodes the stamp. Stamps that do not match the fixed-width
// pattern return ErrExpiryMalformed.
func (s ExpiryStamp) Time() (time.Time, error) {
	raw := strconv.FormatInt(int64(s), 10)
	if len(raw) != expiryStampWidth {
		return time.Time{}, errors.Wrapf(exception.ErrExpiryMalformed, "stamp: %d", int64(s))
	}

	day, err := time.Parse("060102", raw[:6])
	if err != nil {
		return time.Time{}, errors.Wrapf(exception.ErrExpiryMalformed, "stamp: %d", int64(s))
	}

	hour, err := strconv.Atoi(raw[6:8])
	if err != nil || hour > 23 {
		return time.Time{}, errors.Wrapf(exception.ErrExpiryMalformed, "stamp: %d", int64(s))
	}

	minTens := int(raw[8] - '0')
	if minTens > 5 {
		return time.Time{}, errors.Wrapf(exception.ErrExpiryMalformed, "stamp: %d", int64(s))
	}

	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minTens)*10*time.Minute), nil
}
