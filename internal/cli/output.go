package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/courtwatch/courtwatch/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteSnapshot writes the snapshot in the specified format
func WriteSnapshot(w io.Writer, snapshot *schedule.Snapshot, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, snapshot)
	case FormatText:
		return writeText(w, snapshot)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, snapshot *schedule.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

func writeText(w io.Writer, snapshot *schedule.Snapshot) error {
	if len(snapshot.Venues) == 0 {
		fmt.Fprintln(w, "No availability data.")
		return nil
	}

	ids := make([]string, 0, len(snapshot.Venues))
	for id := range snapshot.Venues {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		venue := snapshot.Venues[id]
		fmt.Fprintf(w, "\n%s (%s)\n", venue.Name, id)

		if venue.Error != "" {
			fmt.Fprintf(w, "  ERROR: %s\n", venue.Error)
			continue
		}
		if len(venue.Days) == 0 {
			fmt.Fprintln(w, "  No slots found.")
			continue
		}

		for _, date := range venue.Dates() {
			fmt.Fprintf(w, "  %s:\n", date)
			for _, slot := range venue.Days[date] {
				fmt.Fprintf(w, "    %-9s %d/%d  %s\n",
					slot.TimeLabel, slot.Available, slot.Capacity, availabilityLabel(slot.Available))
			}
		}
	}

	if snapshot.LastUpdated != "" {
		fmt.Fprintf(w, "\nLast updated: %s\n", snapshot.LastUpdated)
	}
	return nil
}

// availabilityLabel buckets a slot's free count for the text view.
func availabilityLabel(available int) string {
	switch {
	case available == 0:
		return "Full"
	case available < 3:
		return "Limited"
	default:
		return "Good"
	}
}
