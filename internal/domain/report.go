package domain

import (
	"fmt"
	"strings"
	"time"
)

// ChannelReport accumulates the outcome of walking one channel.
type ChannelReport struct {
	ChannelID string
	Name      string
	Processed int
	Failed    int
	Skipped   bool
}

// RunReport is the outcome of one full run across all configured channels.
// Channels appear in configuration order.
type RunReport struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Channels   []*ChannelReport
}

// NewRunReport initializes a report with a zero-count entry for every
// configured channel, preserving order.
func NewRunReport(id string, channelIDs []string) *RunReport {
	r := &RunReport{
		ID:        id,
		StartedAt: time.Now().UTC(),
		Channels:  make([]*ChannelReport, 0, len(channelIDs)),
	}
	for _, chID := range channelIDs {
		r.Channels = append(r.Channels, &ChannelReport{ChannelID: chID})
	}
	return r
}

// Channel returns the report entry for the given channel ID, or nil.
func (r *RunReport) Channel(channelID string) *ChannelReport {
	for _, ch := range r.Channels {
		if ch.ChannelID == channelID {
			return ch
		}
	}
	return nil
}

// TotalProcessed sums processed counts across all channels.
func (r *RunReport) TotalProcessed() int {
	total := 0
	for _, ch := range r.Channels {
		total += ch.Processed
	}
	return total
}

// Summary renders the run summary posted to the log channel: one line per
// configured channel, in configuration order.
func (r *RunReport) Summary() string {
	lines := make([]string, 0, len(r.Channels))
	for _, ch := range r.Channels {
		lines = append(lines, fmt.Sprintf("total %d msg converted in <#%s>", ch.Processed, ch.ChannelID))
	}
	return strings.Join(lines, "\n")
}
