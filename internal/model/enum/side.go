package enum

import "main/pkg/exception"

// Side BUY, SELL
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

// Flip returns the opposite side. Unavailable sides flip to themselves.
func (s Side) Flip() Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	if !s.IsAvailable() {
		return nil, exception.ErrSideUnavailable
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON keeps unknown wire sides as the zero value so downstream
// rendering rejects the single order instead of failing the whole fetch.
func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"BUY"`:
		*s = SideBuy
	case `"SELL"`:
		*s = SideSell
	default:
		*s = _side_beg
	}
	return nil
}
