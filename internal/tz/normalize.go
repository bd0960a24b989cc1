package tz

import (
	"strings"
	"time"
)

// Layouts carrying their own zone information. The abbreviation map is never
// consulted for these.
var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02T15:04:05 -0700",
}

// Layouts for the local wall-clock part of an abbreviation-suffixed
// timestamp, and for naive timestamps.
var wallLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Normalize parses a free-form timestamp and returns the instant in UTC.
// Accepted forms: ISO-8601 with "Z" or an explicit numeric offset,
// "date time ABBR" with the abbreviation resolved through zones, and a naive
// "date time" which is taken as UTC. The zone rules in effect at the record's
// own date supply the offset for abbreviation-suffixed timestamps; no
// correction beyond what the zone database encodes is attempted.
//
// Failures are never defaulted: unparseable text yields *ParseError and an
// unresolvable abbreviation yields *UnknownZoneError.
func Normalize(s string, zones AbbrevMap) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Input: s}
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	if wall, abbr, ok := splitAbbrev(s); ok {
		loc, known := zones[abbr]
		if !known {
			return time.Time{}, &UnknownZoneError{Input: s, Abbr: abbr}
		}
		for _, layout := range wallLayouts {
			if t, err := time.ParseInLocation(layout, wall, loc); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, &ParseError{Input: s}
	}

	for _, layout := range wallLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, &ParseError{Input: s}
}

// splitAbbrev splits "2023-07-01 09:00:00 EDT" into the wall-clock part and
// the trailing abbreviation token.
func splitAbbrev(s string) (wall, abbr string, ok bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", "", false
	}
	token := s[i+1:]
	if !isAbbrevToken(token) {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), token, true
}

// isAbbrevToken reports whether the token has the shape of a zone
// abbreviation: 2-6 ASCII letters ("EST"), or a sign followed by digits for
// the numeric abbreviations the zone database also carries ("+05", "+0530").
// Explicit offsets with colons ("-08:00") never match; they are consumed by
// the offset layouts before the abbreviation path runs.
func isAbbrevToken(token string) bool {
	if len(token) < 2 || len(token) > 6 {
		return false
	}
	if token[0] == '+' || token[0] == '-' {
		for _, r := range token[1:] {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	for _, r := range token {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
