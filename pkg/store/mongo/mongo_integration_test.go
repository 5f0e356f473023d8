//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

func TestRepository_Integration(t *testing.T) {
	uri := os.Getenv("BULLETINS_MONGO_URI")
	if uri == "" {
		t.Skip("BULLETINS_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "bulletins_test_" + time.Now().Format("20060102150405")
	r, err := New(ctx, Config{URI: uri, Database: db})
	require.NoError(t, err)
	defer func() {
		r.client.Database(db).Drop(context.Background())
		r.Close(context.Background())
	}()

	m := document.NewMaster(document.KindTemplate, "Monthly", "")
	require.NoError(t, r.CreateMaster(ctx, m))
	require.True(t, errors.Is(r.CreateMaster(ctx, m), errors.ErrCodeConflict))

	content := document.Content{Style: &style.Config{Heritable: style.Heritable{Font: style.String("Inter")}}}
	v1, err := r.AddVersion(ctx, document.NewVersion(m.ID, "first", content), false)
	require.NoError(t, err)
	require.Equal(t, 1, v1.Number)
	v2, err := r.AddVersion(ctx, document.NewVersion(m.ID, "second", content), true)
	require.NoError(t, err)
	require.Equal(t, 2, v2.Number)

	got, err := r.GetVersion(ctx, m.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Inter", *got.Content.Style.Font)

	vs, err := r.ListVersions(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, vs, 2)

	master, err := r.GetMaster(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 2, master.CurrentVersion)

	require.Equal(t, document.StatusPublished, master.Status)

	master.Name = "Weekly"
	master.CurrentVersion = 0
	require.NoError(t, r.UpdateMaster(ctx, master))

	list, err := r.ListMasters(ctx, document.KindTemplate)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, document.StatusPublished, list[0].Status)
	require.Equal(t, "Weekly", list[0].Name)
	require.Equal(t, 2, list[0].CurrentVersion, "UpdateMaster keeps the version counter")

	archived, err := r.SetStatus(ctx, m.ID, document.StatusArchived)
	require.NoError(t, err)
	require.Equal(t, document.StatusArchived, archived.Status)
	_, err = r.AddVersion(ctx, document.NewVersion(m.ID, "third", content), true)
	require.True(t, errors.Is(err, errors.ErrCodeConflict))
	master, err = r.GetMaster(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 2, master.CurrentVersion)

	_, err = r.SetStatus(ctx, "missing", document.StatusArchived)
	require.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound))

	_, err = r.GetVersion(ctx, m.ID, 9)
	require.True(t, errors.Is(err, errors.ErrCodeVersionNotFound))
}
