package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/genwaves/internal/app"
	"github.com/llehouerou/genwaves/internal/config"
	"github.com/llehouerou/genwaves/internal/decoder"
	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/generate"
	"github.com/llehouerou/genwaves/internal/logging"
	"github.com/llehouerou/genwaves/internal/mpris"
	"github.com/llehouerou/genwaves/internal/notify"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/playlistsync"
	"github.com/llehouerou/genwaves/internal/producer"
	"github.com/llehouerou/genwaves/internal/sharelink"
	"github.com/llehouerou/genwaves/internal/stderr"
	"github.com/llehouerou/genwaves/internal/storage"
	"github.com/llehouerou/genwaves/internal/transport"
)

const healthTimeout = 3 * time.Second

var errEmptyPlaylist = errors.New("saved playlist is empty")

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var extra []string
	if path := cmd.String("config"); path != "" {
		extra = append(extra, path)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// openStore opens local storage. A failure is logged and yields nil, which
// disables persistence for the session.
func openStore(cfg *config.Config, logger *log.Logger) storage.Store {
	m, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpPlaylistLoad, err))
		return nil
	}
	return m
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	base, err := logging.New(logFile, cfg.LogLevel())
	if err != nil {
		return err
	}
	logger := logging.WithSession(base)
	logger.Info("starting", "decoder", cfg.DecoderURL())

	// Capture ALSA noise before the speaker is initialized
	capture, err := stderr.Start(logging.Component(logger, "stderr"))
	if err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	}
	defer capture.Stop()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}
	syncer := playlistsync.New(store, logging.Component(logger, "playlistsync"))

	out := player.New()
	out.SetVolume(cfg.Volume())
	out.SetMuted(cfg.Player.Muted)
	queue := playlist.NewQueue()
	queue.SetRepeatMode(cfg.RepeatMode())
	svc := playback.New(out, queue, syncer)
	defer svc.Close()

	var loc sharelink.Location
	if raw := cmd.String("link"); raw != "" {
		addr, err := sharelink.ParseAddress(raw)
		if err != nil {
			logger.Warn(errmsg.Format(errmsg.OpShareLinkDecode, err))
		} else {
			loc = addr
		}
	}
	synth := producer.NewSynth()
	syncer.Restore(loc, synth, svc)

	dec, err := decoder.New(decoder.Options{
		URL:               cfg.DecoderURL(),
		APIKey:            cfg.Decoder.APIKey,
		Timeout:           cfg.DecoderTimeout(),
		RequestsPerMinute: cfg.Decoder.RequestsPerMinute,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	checkDecoder(ctx, dec, logger)
	pipeline := generate.New(dec, synth, svc, logging.Component(logger, "generate"))

	surface := mpris.New(svc)
	defer surface.Close()
	transport.Register(surface, svc, logging.Component(logger, "transport"),
		transport.WithSeekStep(cfg.SeekStep()))
	surface.Start(logging.Component(logger, "mpris"))

	var notifier notify.Notifier
	if n, err := notify.New(); err != nil {
		logger.Debug("notifications unavailable", "err", err)
	} else {
		notifier = n
	}

	m := app.New(app.Deps{
		Service:      svc,
		Pipeline:     pipeline,
		Announcer:    notify.NewAnnouncer(notifier, cfg.NotificationsEnabled()),
		Logger:       logging.Component(logger, "app"),
		ShareBaseURL: cfg.ShareBaseURL(),
		SeekStep:     cfg.SeekStep(),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info("exiting", "tracks", svc.Len())
	return nil
}

// checkDecoder logs whether the decode service answers. Generation still
// runs when it does not; the first request reports the failure.
func checkDecoder(ctx context.Context, dec *decoder.Client, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := dec.Health(ctx); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpDecode, err), "url", dec.URL())
		return
	}
	logger.Info("decoder reachable", "url", dec.URL())
}

func runShare(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel())
	if err != nil {
		return err
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}
	syncer := playlistsync.New(store, logger)
	list := syncer.LoadPersisted()
	if len(list) == 0 {
		return errEmptyPlaylist
	}

	url, err := playlistsync.ShareURL(cfg.ShareBaseURL(), list)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpShareLinkCopy, err)
	}
	fmt.Println(url)
	summary := fmt.Sprintf("%d tracks, %s", len(list), humanize.Bytes(uint64(len(url))))
	if at, ok := syncer.SavedAt(); ok {
		summary += ", saved " + humanize.Time(at)
	}
	fmt.Fprintln(os.Stderr, summary)
	return nil
}
