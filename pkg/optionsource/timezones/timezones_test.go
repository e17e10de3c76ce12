package timezones_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/optionsource/timezones"
)

func TestZonesSortedAndDeduplicated(t *testing.T) {
	zones, err := timezones.Zones()
	if err != nil {
		t.Fatalf("Zones: %v", err)
	}
	if len(zones) == 0 {
		t.Fatal("catalog is empty")
	}
	if !sort.StringsAreSorted(zones) {
		t.Fatal("catalog is not sorted")
	}
	seen := map[string]struct{}{}
	for _, zone := range zones {
		if _, dup := seen[zone]; dup {
			t.Fatalf("duplicate zone %q", zone)
		}
		seen[zone] = struct{}{}
	}
	if _, ok := seen["UTC"]; !ok {
		t.Fatal("catalog missing UTC")
	}
}

func TestReadZonesSkipsCommentsAndBlanks(t *testing.T) {
	input := "# header\n\nEurope/Madrid\nAsia/Tokyo\nEurope/Madrid\n"
	zones, err := timezones.ReadZones(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadZones: %v", err)
	}
	want := []string{"Asia/Tokyo", "Europe/Madrid"}
	if len(zones) != len(want) || zones[0] != want[0] || zones[1] != want[1] {
		t.Fatalf("ReadZones = %v, want %v", zones, want)
	}
}

func TestSearchRanksPrefixMatchesFirst(t *testing.T) {
	zones := []string{"America/Lima", "Asia/Manila", "Europe/Lisbon", "Pacific/Palau"}

	got := timezones.Search(zones, "li", 10)
	if len(got) < 2 {
		t.Fatalf("Search = %v", got)
	}
	// Substring matches only; prefix matches would sort first.
	if got[0] != "America/Lima" {
		t.Fatalf("Search order = %v", got)
	}

	capped := timezones.Search(zones, "", 2)
	if len(capped) != 2 {
		t.Fatalf("limit ignored: %v", capped)
	}
}

func TestTableFeedsResolver(t *testing.T) {
	table, err := timezones.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	field := model.Field{
		Key:          "timezone",
		Type:         model.ValueTypeDropdown,
		OptionSource: timezones.SourceID,
	}
	options := optionsource.New().Resolve(field, table)
	if len(options) == 0 {
		t.Fatal("resolver produced no options")
	}
	found := false
	for _, option := range options {
		if option.Value == "Europe/Madrid" && option.Label == "Europe/Madrid" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Europe/Madrid missing from %d options", len(options))
	}
}

func TestHandlerFiltersAndLimits(t *testing.T) {
	server := httptest.NewServer(timezones.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "?query=europe&limit=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var payload struct {
		Options []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"options"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(payload.Options))
	}
	for _, option := range payload.Options {
		if !strings.HasPrefix(option.Value, "Europe/") {
			t.Fatalf("unexpected option %q", option.Value)
		}
	}
}

func TestHandlerRejectsWrites(t *testing.T) {
	server := httptest.NewServer(timezones.Handler())
	defer server.Close()

	resp, err := http.Post(server.URL, "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
