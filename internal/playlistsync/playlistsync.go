// Package playlistsync reconciles the playlist between local storage, share
// links and the live playback session.
package playlistsync

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/producer"
	"github.com/llehouerou/genwaves/internal/sharelink"
	"github.com/llehouerou/genwaves/internal/storage"
)

// StorageKey is the key holding the serialized playlist.
const StorageKey = "playlist"

// Verify Synchronizer implements playback.Persister at compile time.
var _ playback.Persister = (*Synchronizer)(nil)

// Synchronizer loads, merges and persists playlists.
//
// Storage is probed once at construction. When the probe fails, or the
// stored playlist cannot be read during Restore, every later persistence
// call is a no-op for the rest of the session.
type Synchronizer struct {
	store   storage.Store
	logger  *log.Logger
	enabled atomic.Bool

	mu sync.Mutex
	// retained holds stored entries the producer rejected during Restore.
	// Persist writes them back so they survive the session.
	retained []params.OutputParams
}

// New probes store and returns a synchronizer. store may be nil.
func New(store storage.Store, logger *log.Logger) *Synchronizer {
	s := &Synchronizer{store: store, logger: logger}
	s.enabled.Store(storage.Available(store))
	if !s.Enabled() {
		logger.Warn("local storage unavailable, playlist will not be saved")
	}
	return s
}

// Enabled reports whether writes reach storage.
func (s *Synchronizer) Enabled() bool {
	return s.enabled.Load()
}

// LoadPersisted returns the stored playlist. Missing, unreadable or corrupt
// data yields an empty list; the last two are logged.
func (s *Synchronizer) LoadPersisted() []params.OutputParams {
	list, err := s.load()
	if err != nil {
		s.logger.Warn("reading stored playlist", "err", err)
	}
	return list
}

// load reads the stored playlist. Only a failed read is returned as an
// error; corrupt data is discarded here.
func (s *Synchronizer) load() ([]params.OutputParams, error) {
	if !s.Enabled() {
		return nil, nil
	}
	raw, err := s.store.Get(StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list, err := params.ParseList([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding corrupt stored playlist", "err", err)
		return nil, nil
	}
	return list, nil
}

// SavedAt returns when the playlist was last written. It reports false when
// storage is disabled, holds no playlist or does not record write times.
func (s *Synchronizer) SavedAt() (time.Time, bool) {
	ts, ok := s.store.(storage.Timestamper)
	if !s.Enabled() || !ok {
		return time.Time{}, false
	}
	at, err := ts.UpdatedAt(StorageKey)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// DecodeLink decodes a share-link query. An empty query contributes nothing;
// an undecodable one is logged and dropped.
func (s *Synchronizer) DecodeLink(query string) []params.OutputParams {
	if query == "" {
		return nil
	}
	list, err := sharelink.Decode(query)
	if err != nil {
		s.logger.Warn("ignoring invalid share link", "err", err)
		return nil
	}
	return list
}

// Merge returns the persisted entries whose title is absent from link,
// followed by link. Duplicate titles within either source keep the first.
func Merge(persisted, link []params.OutputParams) []params.OutputParams {
	link = dedupe(link)
	inLink := make(map[string]struct{}, len(link))
	for _, p := range link {
		inLink[p.Title] = struct{}{}
	}

	out := make([]params.OutputParams, 0, len(persisted)+len(link))
	for _, p := range dedupe(persisted) {
		if _, ok := inLink[p.Title]; !ok {
			out = append(out, p)
		}
	}
	return append(out, link...)
}

func dedupe(list []params.OutputParams) []params.OutputParams {
	seen := make(map[string]struct{}, len(list))
	out := make([]params.OutputParams, 0, len(list))
	for _, p := range list {
		if _, ok := seen[p.Title]; ok {
			continue
		}
		seen[p.Title] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Restore rebuilds the session playlist from storage and the link in loc.
// A link that contributed tracks is stripped from loc. Entries the producer
// rejects are skipped but stay stored. A non-empty result replaces the
// service playlist in one call, which also persists it; an empty result
// leaves the service and storage untouched. When the stored playlist cannot
// be read, saving is disabled for the session so it is never overwritten.
// Returns the number of restored tracks.
func (s *Synchronizer) Restore(loc sharelink.Location, prod producer.Producer, svc playback.Service) int {
	persisted, err := s.load()
	if err != nil {
		s.enabled.Store(false)
		s.logger.Error("reading stored playlist, saving disabled for this session", "err", err)
	}

	var link []params.OutputParams
	if loc != nil {
		link = s.DecodeLink(loc.Query())
		if len(link) > 0 {
			loc.ClearQuery()
		}
	}

	merged := Merge(persisted, link)
	tracks := make([]playlist.Track, 0, len(merged))
	var rejected []params.OutputParams
	for _, p := range merged {
		t, err := prod.Produce(p)
		if err != nil {
			s.logger.Warn("skipping track", "title", p.Title, "err", err)
			rejected = append(rejected, p)
			continue
		}
		tracks = append(tracks, t)
	}

	s.mu.Lock()
	s.retained = rejected
	s.mu.Unlock()

	if len(tracks) == 0 {
		s.logger.Info("nothing to restore", "stored", len(persisted), "linked", len(link))
		return 0
	}
	svc.ReplacePlaylist(tracks)
	s.logger.Info("playlist restored",
		"stored", len(persisted), "linked", len(link), "tracks", len(tracks))
	return len(tracks)
}

// Persist writes list to storage, preceded by any retained entries whose
// title list does not hold. Failures are logged and not retried.
func (s *Synchronizer) Persist(list []params.OutputParams) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	list = Merge(s.retained, list)
	s.mu.Unlock()
	data, err := params.MarshalList(list)
	if err != nil {
		s.logger.Error("encoding playlist", "err", err)
		return
	}
	if err := s.store.Set(StorageKey, string(data)); err != nil {
		s.logger.Error(errmsg.Format(errmsg.OpPlaylistSave, err))
	}
}

// ShareToken returns the share token of the session's current playlist.
func ShareToken(svc playback.Service) (string, error) {
	return sharelink.Encode(svc.Params())
}

// ShareURL returns base with the token of list appended as its query.
func ShareURL(base string, list []params.OutputParams) (string, error) {
	return sharelink.URL(base, list)
}
