package draft

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/style"
	"github.com/matzehuels/bulletins/pkg/wizard"
)

func sampleDraft(t *testing.T) *Draft {
	t.Helper()
	content := document.Content{
		Style: &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#0a4")}},
		Header: &document.Container{Fields: []document.Field{{
			ID:     "title",
			Label:  "Title",
			Config: document.TextConfig{},
			Style:  &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#0a4")}},
		}}},
		Sections: []document.Section{},
	}
	d, err := New(document.KindTemplate, "", content, time.Hour)
	require.NoError(t, err)
	d.Name = "Monthly outlook"
	return d
}

// runStoreTests exercises the Store contract against s.
func runStoreTests(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		d, err := s.Get(ctx, "does-not-exist")
		require.NoError(t, err)
		require.Nil(t, d)
	})

	t.Run("set get delete", func(t *testing.T) {
		d := sampleDraft(t)
		require.NoError(t, s.Set(ctx, d))

		got, err := s.Get(ctx, d.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, d.ID, got.ID)
		require.Equal(t, d.Name, got.Name)
		require.Equal(t, wizard.StepInfo, got.Wizard.Current)
		require.Equal(t, "#0a4", *got.Content.Header.Fields[0].Style.PrimaryColor)
		require.Equal(t, document.TypeText, got.Content.Header.Fields[0].Type())
		require.True(t, d.ExpiresAt.Equal(got.ExpiresAt))

		require.NoError(t, s.Delete(ctx, d.ID))
		got, err = s.Get(ctx, d.ID)
		require.NoError(t, err)
		require.Nil(t, got)

		require.NoError(t, s.Delete(ctx, d.ID), "deleting twice")
	})

	t.Run("overwrite", func(t *testing.T) {
		d := sampleDraft(t)
		require.NoError(t, s.Set(ctx, d))
		d.Name = "Renamed"
		require.NoError(t, s.Set(ctx, d))

		got, err := s.Get(ctx, d.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Name)
		require.NoError(t, s.Delete(ctx, d.ID))
	})

	t.Run("expired is missing", func(t *testing.T) {
		d := sampleDraft(t)
		d.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, s.Set(ctx, d))

		got, err := s.Get(ctx, d.ID)
		require.NoError(t, err)
		require.Nil(t, got)

		all, err := s.List(ctx)
		require.NoError(t, err)
		for _, other := range all {
			require.NotEqual(t, d.ID, other.ID)
		}
	})

	t.Run("list", func(t *testing.T) {
		a, b := sampleDraft(t), sampleDraft(t)
		require.NoError(t, s.Set(ctx, a))
		require.NoError(t, s.Set(ctx, b))

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Less(t, all[0].ID, all[1].ID)

		require.NoError(t, s.Delete(ctx, a.ID))
		require.NoError(t, s.Delete(ctx, b.ID))
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	runStoreTests(t, s)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := sampleDraft(t)
	require.NoError(t, s.Set(ctx, d))

	d.Content.Header.Fields[0].Label = "changed after Set"
	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Title", got.Content.Header.Fields[0].Label)

	got.Name = "changed after Get"
	again, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Monthly outlook", again.Name)
}

func TestMemoryStoreKeepsRefreshedDraft(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := sampleDraft(t)
	d.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.Set(ctx, d))

	fresh := d.Clone()
	fresh.Name = "Saved again"
	fresh.Touch(time.Hour)
	s.beforeEvict = func() { require.NoError(t, s.Set(ctx, fresh)) }

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Saved again", got.Name)

	s.beforeEvict = nil
	again, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, again, "refreshed draft must not be evicted")
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreTests(t, s)
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "../escape")
	require.Error(t, err)
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken"+fileExt), []byte("not msgpack"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = s.Get(context.Background(), "broken")
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	runStoreTests(t, NewRedisStoreFromClient(client, ""))
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(ctx, RedisConfig{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer s.Close()

	d := sampleDraft(t)
	require.NoError(t, s.Set(ctx, d))
	require.True(t, mr.Exists("test:"+d.ID))

	ttl := mr.TTL("test:" + d.ID)
	require.Greater(t, ttl, 59*time.Minute)
	require.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(2 * time.Hour)
	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr})
	require.Error(t, err)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New("report", "", document.Content{}, time.Hour)
	require.Error(t, err)
}

func TestTouch(t *testing.T) {
	d := sampleDraft(t)
	d.ExpiresAt = time.Now().Add(-time.Second)
	require.True(t, d.IsExpired())

	d.Touch(time.Hour)
	require.False(t, d.IsExpired())
	require.False(t, d.UpdatedAt.Before(d.CreatedAt))
}
