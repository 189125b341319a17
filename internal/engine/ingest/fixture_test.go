package ingest_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.trai.ch/intake/internal/adapters/cachestore"
	"go.trai.ch/intake/internal/adapters/idgen"
	"go.trai.ch/intake/internal/adapters/logger"
	"go.trai.ch/intake/internal/adapters/metrics"
	"go.trai.ch/intake/internal/adapters/telemetry"
	"go.trai.ch/intake/internal/adapters/upload"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/intake/internal/engine/ingest"
)

const cacheDir = "/cache"

// eventLog records the order in which probes and uploads are touched.
type eventLog struct {
	events []string
}

func (l *eventLog) add(event string) {
	l.events = append(l.events, event)
}

// steppingProbe grows by step on every snapshot and logs each call.
type steppingProbe struct {
	log     *eventLog
	current int64
	step    int64
}

func (p *steppingProbe) Snapshot() int64 {
	p.log.add("snapshot")
	p.current += p.step
	return p.current
}

// tracedUpload logs when its content is opened.
type tracedUpload struct {
	ports.Upload
	log *eventLog
}

func (u tracedUpload) Open() (io.ReadCloser, error) {
	u.log.add("open:" + u.Name())
	return u.Upload.Open()
}

type fixture struct {
	dir     string
	fs      afero.Fs
	store   *cachestore.Store
	svc     *ingest.Service
	log     *eventLog
	metrics *metrics.Prometheus
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	opts  ingest.Options
	ids   ports.IdentifierGenerator
	fs    afero.Fs
	cache string
}

func withOptions(opts ingest.Options) fixtureOption {
	return func(c *fixtureConfig) { c.opts = opts }
}

func withIDs(ids ports.IdentifierGenerator) fixtureOption {
	return func(c *fixtureConfig) { c.ids = ids }
}

// withOsFs backs the fixture with the real filesystem, caching below a temp dir.
func withOsFs(t *testing.T) fixtureOption {
	t.Helper()
	dir := t.TempDir()
	return func(c *fixtureConfig) {
		c.fs = afero.NewOsFs()
		c.cache = filepath.Join(dir, "cache")
	}
}

func newFixture(t *testing.T, options ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{ids: idgen.NewRandom(), fs: afero.NewMemMapFs(), cache: cacheDir}
	for _, opt := range options {
		opt(&cfg)
	}

	fsys := cfg.fs
	require.NoError(t, fsys.MkdirAll(cfg.cache, domain.DirPerm))
	store, err := cachestore.NewStore(fsys, cfg.cache)
	require.NoError(t, err)

	log := &eventLog{}
	m := metrics.New()
	svc := ingest.NewService(
		fsys,
		store,
		cfg.ids,
		&steppingProbe{log: log, step: 100},
		logger.New(domain.LogPretty, io.Discard),
		telemetry.NewNoOpTracer(),
		m,
		cfg.opts,
	)
	return &fixture{dir: filepath.Dir(cfg.cache), fs: fsys, store: store, svc: svc, log: log, metrics: m}
}

func (f *fixture) upload(name, content string) ports.Upload {
	return tracedUpload{Upload: upload.NewBytes(name, []byte(content)), log: f.log}
}

func (f *fixture) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, f.fs.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0o600))
}

func (f *fixture) cachedIDs(t *testing.T) []string {
	t.Helper()
	entries, err := f.store.List()
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
