// Package walker drives one full run: it sweeps every configured channel
// in order, turns supported video links into replies with the video
// attached, and posts a per-channel summary to the log channel.
package walker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ferrovax/vidrelay/internal/domain"
	"github.com/ferrovax/vidrelay/internal/media"
)

// replyDateLayout renders the originating message date as DD-Mon-YY.
const replyDateLayout = "02-Jan-06"

// ChatClient is the chat platform surface the walker needs.
type ChatClient interface {
	// ChannelName resolves a channel into a human-readable reference.
	ChannelName(channelID string) (string, error)

	// LastSelfMessage returns the bot's most recent message in a channel,
	// scanning backward at most scanLimit messages. Nil with no error
	// means nothing was found within the cap.
	LastSelfMessage(channelID string, scanLimit int) (*domain.Message, error)

	// MessagesAfter returns every message posted strictly after the given
	// instant, oldest first.
	MessagesAfter(channelID string, after time.Time) ([]domain.Message, error)

	// Reply responds to a message with text and a file attached, without
	// pinging the author.
	Reply(msg domain.Message, content, filePath string) error

	// Send posts a plain message to a channel.
	Send(channelID, content string) error
}

// Fetcher downloads the video a URL references into dir.
type Fetcher interface {
	Fetch(ctx context.Context, url, dir string) (domain.Artifact, error)
}

// Compressor re-encodes a file to fit under maxMB, passing through files
// already small enough. On failure it returns the original path.
type Compressor interface {
	CompressToFit(ctx context.Context, path string, maxMB float64) (string, error)
}

// Recorder persists run bookkeeping. Purely write-behind: nothing the
// walker decides ever depends on what was recorded.
type Recorder interface {
	RecordRun(ctx context.Context, report *domain.RunReport) error
	RecordReply(ctx context.Context, runID string, msg domain.Message, url string) error
}

// Config holds the walk parameters.
type Config struct {
	ChannelIDs       []string
	LogChannelID     string
	Lookback         time.Duration
	HistoryScanLimit int
	ChannelPause     time.Duration
	MaxAttachmentMB  float64
}

// Walker sweeps the configured channels once, strictly sequentially.
type Walker struct {
	cfg        Config
	client     ChatClient
	fetcher    Fetcher
	compressor Compressor
	ws         *media.Workspace
	recorder   Recorder
	logger     *slog.Logger

	now func() time.Time

	progress progress
}

// New creates a walker. compressor may be nil, in which case oversized
// artifacts are sent as-is.
func New(cfg Config, client ChatClient, fetcher Fetcher, compressor Compressor, ws *media.Workspace, logger *slog.Logger) *Walker {
	return &Walker{
		cfg:        cfg,
		client:     client,
		fetcher:    fetcher,
		compressor: compressor,
		ws:         ws,
		logger:     logger,
		now:        time.Now,
	}
}

// SetRecorder attaches an optional run-history recorder.
func (w *Walker) SetRecorder(r Recorder) {
	w.recorder = r
}

// Run executes one full sweep and posts the summary. The returned report
// covers whatever completed; cancellation mid-run still yields a report
// for the channels walked so far.
func (w *Walker) Run(ctx context.Context) (*domain.RunReport, error) {
	runID := uuid.New().String()
	report := domain.NewRunReport(runID, w.cfg.ChannelIDs)
	report.StartedAt = w.now().UTC()

	w.progress.start(runID, len(w.cfg.ChannelIDs), report.StartedAt)
	defer w.progress.finish()

	w.logger.Info("run started", "run", runID, "channels", len(w.cfg.ChannelIDs))

	for i, chID := range w.cfg.ChannelIDs {
		if ctx.Err() != nil {
			break
		}

		rep := report.Channels[i]

		name, err := w.client.ChannelName(chID)
		if err != nil {
			w.logger.Warn("channel not found, ensure the bot has access", "channel", chID, "error", err)
			rep.Skipped = true
			continue
		}
		rep.Name = name
		w.progress.channel(i, name)

		w.walkChannel(ctx, chID, name, rep)
		w.logger.Info("processing complete", "channel", name, "converted", rep.Processed)

		// Courtesy pause between channels, skipped after the last one.
		if i < len(w.cfg.ChannelIDs)-1 {
			w.logger.Info("waiting before switching to the next channel", "pause", w.cfg.ChannelPause)
			if err := sleepCtx(ctx, w.cfg.ChannelPause); err != nil {
				break
			}
		}
	}

	report.FinishedAt = w.now().UTC()
	w.summarize(report)

	if w.recorder != nil {
		if err := w.recorder.RecordRun(context.WithoutCancel(ctx), report); err != nil {
			w.logger.Warn("failed to record run", "run", runID, "error", err)
		}
	}

	return report, ctx.Err()
}

// summarize posts the per-channel summary to the log channel. A delivery
// failure never affects processing already completed.
func (w *Walker) summarize(report *domain.RunReport) {
	summary := report.Summary()
	if summary == "" {
		summary = "No messages processed."
	}

	if err := w.client.Send(w.cfg.LogChannelID, summary); err != nil {
		w.logger.Error("failed to send summary to log channel", "channel", w.cfg.LogChannelID, "error", err)
		return
	}
	w.logger.Info("sent summary to log channel", "channel", w.cfg.LogChannelID)
}

// walkChannel processes one channel: resume cursor, history fetch, then
// every supported URL of every new message, oldest first.
func (w *Walker) walkChannel(ctx context.Context, chID, name string, rep *domain.ChannelReport) {
	cursor := w.resumeCursor(chID)

	msgs, err := w.client.MessagesAfter(chID, cursor)
	if err != nil {
		w.logger.Error("failed to fetch channel history", "channel", name, "error", err)
		rep.Skipped = true
		return
	}

	for _, msg := range msgs {
		if ctx.Err() != nil {
			return
		}

		converted := false
		for _, url := range ExtractURLs(msg.Content) {
			if domain.Classify(url) == domain.PlatformUnknown {
				continue
			}
			if w.processURL(ctx, msg, url, name, rep) {
				converted = true
			}
		}
		// A message counts once no matter how many of its links converted.
		if converted {
			rep.Processed++
			w.progress.processed()
		}
	}
}

// resumeCursor computes the instant after which a channel's history is
// considered new: one second past the bot's own last message, or the
// lookback window when none is found. Always derived fresh from chat
// history, never persisted.
func (w *Walker) resumeCursor(chID string) time.Time {
	last, err := w.client.LastSelfMessage(chID, w.cfg.HistoryScanLimit)
	if err != nil {
		w.logger.Warn("history scan failed, falling back to lookback window", "channel", chID, "error", err)
		return w.now().Add(-w.cfg.Lookback)
	}
	if last != nil {
		return last.CreatedAt.Add(time.Second)
	}
	return w.now().Add(-w.cfg.Lookback)
}

// processURL runs fetch → compress → reply for one URL and reports
// whether the reply was delivered. Artifact cleanup is unconditional once
// a file exists, success or failure.
func (w *Walker) processURL(ctx context.Context, msg domain.Message, url, chName string, rep *domain.ChannelReport) bool {
	w.logger.Info("processing url", "url", url, "message", msg.ID, "channel", chName)

	art, err := w.fetcher.Fetch(ctx, url, w.ws.Dir())
	if err != nil {
		w.logger.Error("download failed", "url", url, "error", err)
		rep.Failed++
		return false
	}

	final := art.Path
	defer func() {
		w.ws.Remove(art.Path)
		if final != art.Path {
			w.ws.Remove(final)
		}
	}()

	if w.compressor != nil {
		out, err := w.compressor.CompressToFit(ctx, art.Path, w.cfg.MaxAttachmentMB)
		if err != nil {
			w.logger.Warn("compression failed, sending original", "path", art.Path, "error", err)
		}
		final = out
	}

	text := fmt.Sprintf("sent on %s by %s", msg.CreatedAt.Format(replyDateLayout), msg.AuthorTag)
	if err := w.client.Reply(msg, text, final); err != nil {
		w.logger.Error("failed to reply", "message", msg.ID, "channel", chName, "error", err)
		rep.Failed++
		return false
	}

	w.logger.Info("replied with video", "message", msg.ID, "url", url, "channel", chName)

	if w.recorder != nil {
		if err := w.recorder.RecordReply(ctx, w.progress.runID(), msg, url); err != nil {
			w.logger.Warn("failed to record reply", "message", msg.ID, "error", err)
		}
	}
	return true
}

// Snapshot returns the current run progress for the status server.
func (w *Walker) Snapshot() Snapshot {
	return w.progress.snapshot()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
