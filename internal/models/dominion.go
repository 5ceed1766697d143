package models

import (
	"strconv"
	"strings"
)

// MonthResponse is one month of the upstream sched10 calendar. The feed is
// loosely typed: week padding days carry null fields, dates arrive as wrapped
// millisecond epochs ("/Date(1769558400000)/"), and day numbers are sometimes
// quoted. Absent fields decode to zero values and are dropped during
// normalization, never treated as errors.
type MonthResponse struct {
	Weeks []RawWeek `json:"Weeks"`
}

type RawWeek struct {
	Days []RawDay `json:"Days"`
}

type RawDay struct {
	Date        string  `json:"Date"`
	Day         FlexInt `json:"Day"`
	Designation string  `json:"Designation"`
}

// FlexInt decodes a JSON number or a quoted number. Unparseable values decode
// to zero rather than failing the whole month.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = FlexInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = FlexInt(int(f))
		return nil
	}
	*n = 0
	return nil
}
