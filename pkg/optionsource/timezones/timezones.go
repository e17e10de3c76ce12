// Package timezones ships a deterministic IANA timezone catalog that plugs
// into option-source tables, plus search helpers and a JSON handler for
// async dropdowns.
package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-metaform/pkg/optionsource"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const dataPath = "data/iana_timezones.txt"

// SourceID is the option-source id the catalog registers under in Table().
const SourceID = "timezones"

var (
	loadOnce  sync.Once
	loadedSet []string
	loadErr   error
)

// Zones returns the embedded identifier list, sorted. The returned slice is
// a copy.
func Zones() ([]string, error) {
	loadOnce.Do(func() {
		f, err := dataFS.Open(dataPath)
		if err != nil {
			loadErr = err
			return
		}
		defer func() { _ = f.Close() }()
		loadedSet, loadErr = ReadZones(f)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]string(nil), loadedSet...), nil
}

// ReadZones parses a newline-separated zone list. Blank lines, comments, and
// duplicates are skipped and the result is sorted.
func ReadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 256)
	seen := map[string]struct{}{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return zones, nil
}

// Table returns an option-source table exposing the catalog under SourceID,
// ready to merge into the table handed to renderers and resolvers.
func Table() (optionsource.Table, error) {
	zones, err := Zones()
	if err != nil {
		return nil, err
	}
	records := make([]any, 0, len(zones))
	for _, zone := range zones {
		records = append(records, zone)
	}
	return optionsource.Table{SourceID: records}, nil
}

// Search filters zones by a case-insensitive substring query. Prefix matches
// rank before infix matches; ties sort alphabetically. A limit of 0 or less
// means no limit. An empty query returns the first limit zones.
func Search(zones []string, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if limit > 0 && len(zones) > limit {
			zones = zones[:limit]
		}
		return append([]string(nil), zones...)
	}

	type match struct {
		name   string
		prefix bool
	}
	matches := make([]match, 0, 32)
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, query) {
			continue
		}
		matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, query)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}
