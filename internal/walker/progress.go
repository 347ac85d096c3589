package walker

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time view of a run, safe to serve while the walk
// is in flight.
type Snapshot struct {
	RunID          string    `json:"run_id,omitempty"`
	State          string    `json:"state"`
	CurrentChannel string    `json:"current_channel,omitempty"`
	ChannelsDone   int       `json:"channels_done"`
	ChannelsTotal  int       `json:"channels_total"`
	Processed      int       `json:"processed"`
	StartedAt      time.Time `json:"started_at,omitempty"`
}

// Run states.
const (
	StateIdle    = "idle"
	StateRunning = "running"
	StateDone    = "done"
)

// progress is the walker's mutable run state, guarded for concurrent
// reads from the status server. The walk itself stays single-threaded.
type progress struct {
	mu   sync.Mutex
	snap Snapshot
}

func (p *progress) start(runID string, total int, startedAt time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = Snapshot{
		RunID:         runID,
		State:         StateRunning,
		ChannelsTotal: total,
		StartedAt:     startedAt,
	}
}

func (p *progress) channel(index int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.CurrentChannel = name
	p.snap.ChannelsDone = index
}

func (p *progress) processed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Processed++
}

func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.State = StateDone
	p.snap.CurrentChannel = ""
	p.snap.ChannelsDone = p.snap.ChannelsTotal
}

func (p *progress) runID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.RunID
}

func (p *progress) snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.snap
	if snap.State == "" {
		snap.State = StateIdle
	}
	return snap
}
