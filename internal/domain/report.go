package domain

import "math"

// Report is every work entry logged against one client, newest first.
type Report struct {
	Client     *Client
	Entries    []*WorkEntry
	TotalHours float64
	EntryCount int
}

func NewReport(client *Client, entries []*WorkEntry) *Report {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return &Report{
		Client:     client,
		Entries:    entries,
		TotalHours: math.Round(total*100) / 100,
		EntryCount: len(entries),
	}
}
