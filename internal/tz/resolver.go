package tz

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// AbbrevMap maps a time-zone abbreviation ("EST", "PDT", ...) to a location
// whose rules carry that abbreviation. Abbreviations are inherently ambiguous
// across zones; construction is last-write-wins over the sorted zone list,
// which makes resolution deterministic without attempting disambiguation.
type AbbrevMap map[string]*time.Location

// Reference instants sampled per zone: one Northern-Hemisphere winter date
// and one summer date, so both the standard and daylight abbreviation are
// captured regardless of hemisphere.
var referenceDates = []struct {
	month time.Month
	day   int
}{
	{time.January, 15},
	{time.July, 15},
}

const referenceYear = 2025

// zoneSources are the zoneinfo directories the Go runtime itself consults.
var zoneSources = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/etc/zoneinfo",
}

// ResolveAbbreviations builds the abbreviation map from every zone in the
// system IANA database. Zones that fail to load or yield no abbreviation are
// skipped. The map is complete when returned; callers build it once per
// invocation and pass it explicitly to Normalize.
func ResolveAbbreviations() AbbrevMap {
	return resolveFrom(zoneNames())
}

// resolveFrom builds the map from an explicit zone-name list, sorted first so
// the last-write-wins collision policy is deterministic.
func resolveFrom(names []string) AbbrevMap {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	m := make(AbbrevMap)
	for _, name := range sorted {
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		for _, ref := range referenceDates {
			abbr, _ := time.Date(referenceYear, ref.month, ref.day, 12, 0, 0, 0, loc).Zone()
			if abbr != "" {
				m[abbr] = loc
			}
		}
	}
	return m
}

// zoneNames enumerates IANA zone names by walking the zoneinfo database on
// disk ($ZONEINFO first, then the standard source directories). The first
// directory that yields any names wins, matching LoadLocation's lookup order.
func zoneNames() []string {
	sources := zoneSources
	if env := os.Getenv("ZONEINFO"); env != "" {
		sources = append([]string{env}, sources...)
	}
	for _, dir := range sources {
		if names := namesUnder(dir); len(names) > 0 {
			return names
		}
	}
	return nil
}

func namesUnder(dir string) []string {
	var names []string
	root := os.DirFS(dir)
	fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		base := filepath.Base(path)
		if d.IsDir() {
			// posix/ and right/ duplicate the tree with alternate leap handling.
			if base == "posix" || base == "right" {
				return fs.SkipDir
			}
			return nil
		}
		// Zone names start with an uppercase letter and contain no dot;
		// this skips zone.tab, leap-seconds.list, posixrules and friends.
		if base[0] < 'A' || base[0] > 'Z' || strings.Contains(base, ".") {
			return nil
		}
		names = append(names, path)
		return nil
	})
	return names
}
