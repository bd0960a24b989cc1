package tz

import "fmt"

// ParseError reports a timestamp that matched none of the accepted layouts.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse timestamp %q", e.Input)
}

// UnknownZoneError reports a timestamp whose zone abbreviation is not present
// in the resolved abbreviation map. It is distinct from ParseError so callers
// can report which abbreviation failed to resolve.
type UnknownZoneError struct {
	Input string
	Abbr  string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown time zone abbreviation %q in timestamp %q", e.Abbr, e.Input)
}
