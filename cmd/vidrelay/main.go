package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ferrovax/vidrelay/internal/archive"
	"github.com/ferrovax/vidrelay/internal/config"
	"github.com/ferrovax/vidrelay/internal/discordx"
	"github.com/ferrovax/vidrelay/internal/fetcher"
	"github.com/ferrovax/vidrelay/internal/media"
	"github.com/ferrovax/vidrelay/internal/status"
	"github.com/ferrovax/vidrelay/internal/walker"
	"github.com/ferrovax/vidrelay/pkg/ffmpeg"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vidrelay %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// A .env file is optional; missing is fine.
	godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.LogFormat == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)
	}

	logger.Info("starting vidrelay",
		"version", Version,
		"build_time", BuildTime,
		"channels", len(cfg.Discord.ChannelIDs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// yt-dlp is mandatory; nothing can be downloaded without it.
	ytdlp, err := fetcher.New(cfg.Tools.YTDLPPath, logger)
	if err != nil {
		logger.Error("yt-dlp verification failed", "error", err)
		os.Exit(1)
	}

	// ffmpeg is optional; without it oversized videos go out as-is.
	var compressor walker.Compressor
	if proc, err := ffmpeg.NewProcessor(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath); err != nil {
		logger.Warn("ffmpeg unavailable, oversized videos will be sent uncompressed", "error", err)
	} else {
		compressor = proc
		if v, err := proc.Version(); err == nil {
			logger.Info("ffmpeg available", "version", v)
		}
	}

	ws, err := media.NewWorkspace(cfg.Media.WorkDir, fmt.Sprintf("%d", os.Getpid()), logger)
	if err != nil {
		logger.Error("failed to create work directory", "error", err)
		os.Exit(1)
	}
	defer ws.Close()

	session, err := discordx.Connect(cfg.Discord.Token, logger)
	if err != nil {
		logger.Error("failed to connect to Discord", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	w := walker.New(walker.Config{
		ChannelIDs:       cfg.Discord.ChannelIDs,
		LogChannelID:     cfg.Discord.LogChannelID,
		Lookback:         cfg.Scan.Lookback(),
		HistoryScanLimit: cfg.Scan.HistoryScanLimit,
		ChannelPause:     cfg.Scan.ChannelPause,
		MaxAttachmentMB:  cfg.Media.MaxAttachmentMB,
	}, session, ytdlp, compressor, ws, logger)

	// Optional run-history archive.
	var store *archive.Store
	if cfg.Archive.Path != "" {
		store, err = archive.Open(cfg.Archive.Path, logger)
		if err != nil {
			logger.Error("failed to open archive", "path", cfg.Archive.Path, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		w.SetRecorder(store)
	}

	// Optional status server.
	if cfg.Status.Addr != "" {
		sv := status.New(cfg.Status.Addr, w, store, logger)
		sv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			sv.Shutdown(shutdownCtx)
		}()
	}

	report, err := w.Run(ctx)
	if err != nil {
		logger.Warn("run interrupted", "error", err)
	}

	logger.Info("run finished",
		"run", report.ID,
		"converted", report.TotalProcessed(),
		"duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Second),
	)
}
