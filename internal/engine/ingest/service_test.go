package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/intake/internal/adapters/cachestore"
	"go.trai.ch/intake/internal/adapters/picker"
	"go.trai.ch/intake/internal/adapters/upload"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/intake/internal/core/ports/mocks"
	"go.trai.ch/intake/internal/engine/ingest"
	"go.uber.org/mock/gomock"
)

func TestIngestUpload_HelloScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "hello"))
	require.NoError(t, err)

	id, ok := f.svc.Index().CacheID("a.txt")
	require.True(t, ok)
	assert.Len(t, id, domain.CacheIDLength)
	assert.Equal(t, res.Entry.ID, id)
	assert.Equal(t, "a.txt", res.Name)
	assert.Equal(t, int64(5), res.Entry.Size)

	text, ok := f.svc.Index().Content("a.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", text)

	cached, err := f.svc.ReadCached(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", cached)
}

func TestIngestUpload_RoundTripAtLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	content := strings.Repeat("z", int(domain.MaxUploadSize))

	res, err := f.svc.IngestUpload(ctx, upload.NewStream("big.txt", strings.NewReader(content), -1))
	require.NoError(t, err)

	cached, err := f.svc.ReadCached(ctx, res.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, content, cached)
}

func TestIngestUpload_SizeExceeded(t *testing.T) {
	t.Parallel()
	oversized := bytes.Repeat([]byte("x"), int(domain.MaxUploadSize)+1)

	tests := []struct {
		name   string
		upload ports.Upload
	}{
		{name: "declared size", upload: upload.NewBytes("big.bin", oversized)},
		{name: "unknown size", upload: upload.NewStream("big.bin", bytes.NewReader(oversized), -1)},
		{name: "understated size", upload: upload.NewStream("big.bin", bytes.NewReader(oversized), 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			_, err := f.svc.IngestUpload(context.Background(), tt.upload)
			require.ErrorIs(t, err, domain.ErrSizeExceeded)

			assert.False(t, f.svc.Index().Has("big.bin"))
			assert.Empty(t, f.svc.Index().Contents())
			assert.Empty(t, f.svc.Index().CacheIDs())
			assert.Empty(t, f.cachedIDs(t))
		})
	}
}

func TestIngestUpload_DeclaredSizeFailsWithoutReading(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	u := mocks.NewMockUpload(ctrl)
	u.EXPECT().Name().Return("huge.iso").AnyTimes()
	u.EXPECT().Size().Return(domain.MaxUploadSize + 1)
	// Open must not be called.

	_, err := f.svc.IngestUpload(context.Background(), u)
	require.ErrorIs(t, err, domain.ErrSizeExceeded)
}

func TestIngestUpload_OpenFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	u := mocks.NewMockUpload(ctrl)
	u.EXPECT().Name().Return("gone.txt").AnyTimes()
	u.EXPECT().Size().Return(int64(-1))
	u.EXPECT().Open().Return(nil, errors.Join(errors.New("closed"), domain.ErrIOFailure))

	_, err := f.svc.IngestUpload(context.Background(), u)
	require.ErrorIs(t, err, domain.ErrIOFailure)
	assert.False(t, f.svc.Index().Has("gone.txt"))
}

func TestIngestUpload_PermissionDenied(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	u := mocks.NewMockUpload(ctrl)
	u.EXPECT().Name().Return("secret.txt").AnyTimes()
	u.EXPECT().Size().Return(int64(-1))
	u.EXPECT().Open().Return(nil, fs.ErrPermission)

	_, err := f.svc.IngestUpload(context.Background(), u)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	assert.False(t, f.svc.Index().Has("secret.txt"))
	assert.Empty(t, f.svc.Index().CacheIDs())
	assert.Empty(t, f.cachedIDs(t))
}

func TestIngestUpload_EmptyName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.IngestUpload(context.Background(), f.upload("", "data"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Empty(t, f.cachedIDs(t))
}

func TestIngestUpload_Duplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("overwrite keeps the last upload", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		first, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "first"))
		require.NoError(t, err)
		second, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "second"))
		require.NoError(t, err)

		text, _ := f.svc.Index().Content("a.txt")
		id, _ := f.svc.Index().CacheID("a.txt")
		assert.Equal(t, "second", text)
		assert.Equal(t, second.Entry.ID, id)
		assert.ElementsMatch(t, []string{first.Entry.ID, second.Entry.ID}, f.cachedIDs(t))
	})

	t.Run("reject keeps the first upload", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, withOptions(ingest.Options{Duplicates: domain.DuplicatesReject}))

		first, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "first"))
		require.NoError(t, err)
		_, err = f.svc.IngestUpload(ctx, f.upload("a.txt", "second"))
		require.ErrorIs(t, err, domain.ErrDuplicateName)

		text, _ := f.svc.Index().Content("a.txt")
		id, _ := f.svc.Index().CacheID("a.txt")
		assert.Equal(t, "first", text)
		assert.Equal(t, first.Entry.ID, id)
		assert.Equal(t, []string{first.Entry.ID}, f.cachedIDs(t))
	})
}

func TestIngestUpload_RedrawsCollidingIDs(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ids := mocks.NewMockIdentifierGenerator(ctrl)
	gomock.InOrder(
		ids.EXPECT().Next().Return("AAAAAAAAAAAA"),
		ids.EXPECT().Next().Return("AAAAAAAAAAAA"),
		ids.EXPECT().Next().Return("BBBBBBBBBBBB"),
	)
	f := newFixture(t, withIDs(ids))
	_, err := f.store.Put("AAAAAAAAAAAA", []byte("taken"))
	require.NoError(t, err)

	res, err := f.svc.IngestUpload(context.Background(), f.upload("a.txt", "mine"))
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBBBBBB", res.Entry.ID)

	taken, err := f.store.Get("AAAAAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "taken", string(taken))
}

func TestIngestUpload_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ids := mocks.NewMockIdentifierGenerator(ctrl)
	ids.EXPECT().Next().Return("AAAAAAAAAAAA").Times(domain.MaxIDAttempts)
	f := newFixture(t, withIDs(ids))
	_, err := f.store.Put("AAAAAAAAAAAA", []byte("taken"))
	require.NoError(t, err)

	_, err = f.svc.IngestUpload(context.Background(), f.upload("a.txt", "mine"))
	require.ErrorIs(t, err, domain.ErrIOFailure)
	assert.False(t, f.svc.Index().Has("a.txt"))
}

func TestIngestUpload_RecordsMetricsAndSpans(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	fsys := newFixture(t).fs
	store, err := cachestore.NewStore(fsys, cacheDir)
	require.NoError(t, err)

	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().ObserveIngest(domain.SourceUpload, int64(5), nil)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute("name", "a.txt")
	span.EXPECT().SetAttribute("cache_id", gomock.Any())
	span.EXPECT().RecordError(nil)
	span.EXPECT().End()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), "ingest.upload").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span },
	)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any())

	svc := ingest.NewService(fsys, store, newFixtureIDs(), mocks.NewMockMemoryProbe(ctrl), log, tracer, m, ingest.Options{})
	_, err = svc.IngestUpload(context.Background(), upload.NewBytes("a.txt", []byte("hello")))
	require.NoError(t, err)
}

func TestReadPath(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.writeFile(t, "/docs/readme.txt", "exact text\nwith two lines")
	f.writeFile(t, "/docs/bom.txt", "\ufeffbom text")
	require.NoError(t, f.fs.MkdirAll("/docs/sub", domain.DirPerm))

	text, err := f.svc.ReadPath(ctx, "/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "exact text\nwith two lines", text)

	text, err = f.svc.ReadPath(ctx, "/docs/bom.txt")
	require.NoError(t, err)
	assert.Equal(t, "bom text", text)

	_, err = f.svc.ReadPath(ctx, "/docs/missing.txt")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.ReadPath(ctx, "/docs/sub")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.ReadPath(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Empty(t, f.svc.Index().Names(), "ReadPath must not touch the index")
	assert.Empty(t, f.cachedIDs(t))
}

func TestReadCached(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReadCached(ctx, "NeverIssued1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.ReadCached(ctx, "../escape")
	require.ErrorIs(t, err, domain.ErrNotFound)

	res, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.svc.Index().AccessCount("a.txt"))

	for range 2 {
		_, err := f.svc.ReadCached(ctx, res.Entry.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), f.svc.Index().AccessCount("a.txt"))
}

func TestIngestBatch_SequentialMemoryWindows(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	uploads := []ports.Upload{f.upload("a.txt", "A"), f.upload("b.txt", "B"), f.upload("c.txt", "C")}
	res, err := f.svc.IngestBatch(context.Background(), uploads)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 3, res.Succeeded())
	for i, item := range res.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, uploads[i].Name(), item.Name)
		assert.Equal(t, int64(100), item.MemoryDelta)
		assert.NoError(t, item.Err)
	}

	assert.Equal(t, map[string]int64{"a.txt": 100, "b.txt": 100, "c.txt": 100}, f.svc.Index().MemoryDeltas())
	assert.Equal(t, []string{
		"snapshot", "open:a.txt", "snapshot",
		"snapshot", "open:b.txt", "snapshot",
		"snapshot", "open:c.txt", "snapshot",
	}, f.log.events)
}

func TestIngestBatch_AbortStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t, withOptions(ingest.Options{MaxUploadSize: 4}))

	uploads := []ports.Upload{f.upload("a.txt", "ok"), f.upload("b.txt", "too large"), f.upload("c.txt", "ok")}
	res, err := f.svc.IngestBatch(context.Background(), uploads)
	require.ErrorIs(t, err, domain.ErrBatchItemFailed)
	require.ErrorIs(t, err, domain.ErrSizeExceeded)

	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Succeeded())
	require.ErrorIs(t, res.Items[1].Err, domain.ErrSizeExceeded)

	assert.Equal(t, []string{"a.txt"}, f.svc.Index().Names())
	assert.Equal(t, map[string]int64{"a.txt": 100}, f.svc.Index().MemoryDeltas())
	assert.NotContains(t, f.log.events, "open:c.txt")
}

func TestIngestBatch_ContinueAttemptsEveryItem(t *testing.T) {
	t.Parallel()
	f := newFixture(t, withOptions(ingest.Options{MaxUploadSize: 4, OnError: domain.FailContinue}))

	uploads := []ports.Upload{
		f.upload("a.txt", "ok"),
		f.upload("b.txt", "too large"),
		f.upload("", "nameless"),
		f.upload("d.txt", "ok"),
	}
	res, err := f.svc.IngestBatch(context.Background(), uploads)
	require.ErrorIs(t, err, domain.ErrSizeExceeded)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	require.Len(t, res.Items, 4)
	assert.Equal(t, 2, res.Succeeded())
	assert.Equal(t, []string{"a.txt", "d.txt"}, f.svc.Index().Names())
	assert.Equal(t, map[string]int64{"a.txt": 100, "d.txt": 100}, f.svc.Index().MemoryDeltas())
	assert.Len(t, f.cachedIDs(t), 2)
}

func TestIngestBatch_Cancelled(t *testing.T) {
	t.Parallel()
	f := newFixture(t, withOptions(ingest.Options{OnError: domain.FailContinue}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.svc.IngestBatch(ctx, []ports.Upload{f.upload("a.txt", "A")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Items)
	assert.Empty(t, f.svc.Index().Names())
	assert.Empty(t, f.log.events)
}

func TestIngestBatch_Empty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.IngestBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotEmpty(t, res.ID)
}

func TestIngestFolder_TwoFilesScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.writeFile(t, "/picked/y.txt", "2")
	f.writeFile(t, "/picked/x.txt", "1")
	f.writeFile(t, "/picked/nested/z.txt", "3")

	res, err := f.svc.IngestFolder(context.Background(), picker.NewStatic("/picked"))
	require.NoError(t, err)

	assert.True(t, res.Ingested)
	assert.Equal(t, []string{"x.txt", "y.txt"}, res.Files)
	assert.Equal(t, map[string]string{"x.txt": "1", "y.txt": "2"}, f.svc.Index().Contents())
	assert.Empty(t, f.svc.Index().CacheIDs())
	assert.Empty(t, f.cachedIDs(t))
	assert.Equal(t, "/picked", f.svc.SelectedFolder())
}

func TestIngestFolder_FollowsFileSymlinks(t *testing.T) {
	t.Parallel()
	f := newFixture(t, withOsFs(t))
	folder := filepath.Join(f.dir, "picked")
	elsewhere := t.TempDir()

	f.writeFile(t, filepath.Join(folder, "x.txt"), "1")
	f.writeFile(t, filepath.Join(elsewhere, "target.txt"), "2")
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "target.txt"), filepath.Join(folder, "y.txt")))
	require.NoError(t, os.Mkdir(filepath.Join(elsewhere, "sub"), domain.DirPerm))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "sub"), filepath.Join(folder, "linked-dir")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "missing.txt"), filepath.Join(folder, "dangling.txt")))

	res, err := f.svc.IngestFolder(context.Background(), picker.NewStatic(folder))
	require.NoError(t, err)

	assert.Equal(t, []string{"x.txt", "y.txt"}, res.Files)
	assert.Equal(t, map[string]string{"x.txt": "1", "y.txt": "2"}, f.svc.Index().Contents())
}

func TestIngestFolder_NotADirectoryIsSilent(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/does/not/exist", "/file.txt", ""} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.writeFile(t, "/file.txt", "not a folder")

			res, err := f.svc.IngestFolder(context.Background(), picker.NewStatic(path))
			require.NoError(t, err)
			assert.False(t, res.Ingested)
			assert.Equal(t, path, res.Path)
			assert.Equal(t, path, f.svc.SelectedFolder())

			assert.Empty(t, f.svc.Index().Contents())
			assert.Empty(t, f.svc.Index().CacheIDs())
			assert.Empty(t, f.svc.Index().MemoryDeltas())
		})
	}
}

func TestIngestFolder_UsesPickerContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	f.writeFile(t, "/picked/x.txt", "1")

	p := mocks.NewMockFolderPicker(ctrl)
	p.EXPECT().PickFolder(gomock.Any()).Return("/picked")

	res, err := f.svc.IngestFolder(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, res.Files)
}

func TestIngestFolder_RejectsDuplicates(t *testing.T) {
	t.Parallel()
	f := newFixture(t, withOptions(ingest.Options{Duplicates: domain.DuplicatesReject}))
	ctx := context.Background()
	f.writeFile(t, "/picked/a.txt", "from folder")

	_, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "from upload"))
	require.NoError(t, err)

	_, err = f.svc.IngestFolder(ctx, picker.NewStatic("/picked"))
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	text, _ := f.svc.Index().Content("a.txt")
	assert.Equal(t, "from upload", text)
}

func TestIngestFolder_OverwritesUploadText(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.writeFile(t, "/picked/a.txt", "from folder")

	res, err := f.svc.IngestUpload(ctx, f.upload("a.txt", "from upload"))
	require.NoError(t, err)
	_, err = f.svc.IngestFolder(ctx, picker.NewStatic("/picked"))
	require.NoError(t, err)

	text, _ := f.svc.Index().Content("a.txt")
	id, _ := f.svc.Index().CacheID("a.txt")
	assert.Equal(t, "from folder", text)
	assert.Equal(t, res.Entry.ID, id, "folder ingestion never changes cache ids")
}

func newFixtureIDs() ports.IdentifierGenerator {
	return &fixedIDs{}
}

type fixedIDs struct{ n int }

func (f *fixedIDs) Next() string {
	f.n++
	return strings.Repeat("Q", domain.CacheIDLength-1) + string(domain.CacheIDAlphabet[f.n%len(domain.CacheIDAlphabet)])
}
