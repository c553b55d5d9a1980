// Package dashboard resolves the daily mail-report images. Each
// organization ships a map of report type to day-indexed hosted image
// IDs; the dashboard page picks the image for the selected date.
package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// WindowDays is the number of selectable report days. Reports are
// produced for yesterday and the 27 days before it.
const WindowDays = 28

// ImageMaps maps report type -> day index -> hosted image ID for one
// organization.
type ImageMaps map[string]map[int]string

// Set maps organization name -> image maps.
type Set map[string]ImageMaps

// Load reads image_maps.json from dir. The file layout is
// {"<organization>": {"<report type>": {"<day index>": "<image id>"}}}.
// A missing file yields an empty set, not an error: the dashboard then
// simply has no images to show.
func Load(dir string) (Set, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "image_maps.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, errors.Wrap(err, "reading image_maps.json")
	}

	var parsed map[string]map[string]map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "parsing image_maps.json")
	}

	set := make(Set, len(parsed))
	for org, byType := range parsed {
		maps := make(ImageMaps, len(byType))
		for imageType, byDay := range byType {
			days := make(map[int]string, len(byDay))
			for dayKey, id := range byDay {
				day, err := strconv.Atoi(dayKey)
				if err != nil {
					return nil, errors.Wrapf(err, "image_maps.json: bad day index %q for %s/%s", dayKey, org, imageType)
				}
				days[day] = id
			}
			maps[imageType] = days
		}
		set[org] = maps
	}
	return set, nil
}

// DayIndex maps a report date onto the image-map index (day of month
// plus one, matching how the hosted images are numbered).
func DayIndex(date time.Time) int {
	return date.Day() + 1
}

// Window returns the selectable date range ending at yesterday.
func Window(now time.Time) (min, max time.Time) {
	max = now.AddDate(0, 0, -1)
	min = max.AddDate(0, 0, -(WindowDays - 1))
	return min, max
}

// Types returns the report types of an organization's maps in sorted
// order for stable dropdown rendering.
func (m ImageMaps) Types() []string {
	types := make([]string, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ImageID resolves the hosted image ID for a report type and date,
// falling back to index 1 when the date has no entry. Empty when the
// type is unknown.
func (m ImageMaps) ImageID(imageType string, date time.Time) string {
	byDay := m[imageType]
	if byDay == nil {
		return ""
	}
	if id, ok := byDay[DayIndex(date)]; ok {
		return id
	}
	return byDay[1]
}

// ImageURL builds the hosted image URL from the host base and an ID.
func ImageURL(base, id string) string {
	if id == "" {
		return ""
	}
	return base + id
}
