package journal

import (
	"testing"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"

	"github.com/stretchr/testify/require"
)

func checkInvariants(t *testing.T, e *Entry) {
	t.Helper()
	if e.HiddenByAdmin {
		require.False(t, e.IsPublished, "hidden entries must not stay published")
	}
	if e.IsPublished {
		require.True(t, e.EverPublished, "published implies ever-published")
	}
}

func TestPublishSetsEverPublished(t *testing.T) {
	t.Parallel()

	var e Entry
	e.Publish()
	require.True(t, e.IsPublished)
	require.True(t, e.EverPublished)
	checkInvariants(t, &e)
}

func TestUnpublishClearsAdminHide(t *testing.T) {
	t.Parallel()

	var e Entry
	e.Publish()
	e.Hide()
	e.Unpublish()

	require.False(t, e.IsPublished)
	require.False(t, e.HiddenByAdmin)
	require.True(t, e.EverPublished, "ever-published survives unpublish")
	checkInvariants(t, &e)
}

func TestHideTakesDownPublishedEntry(t *testing.T) {
	t.Parallel()

	var e Entry
	e.Publish()
	e.Hide()

	require.False(t, e.IsPublished)
	require.True(t, e.HiddenByAdmin)
	checkInvariants(t, &e)
}

func TestRestoreAfterHide(t *testing.T) {
	t.Parallel()

	var e Entry
	e.Publish()
	e.Hide()
	require.NoError(t, e.Restore())

	require.True(t, e.IsPublished)
	require.False(t, e.HiddenByAdmin)
	checkInvariants(t, &e)
}

func TestRestoreNeverPublished(t *testing.T) {
	t.Parallel()

	var e Entry
	err := e.Restore()
	require.Error(t, err)
	require.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	require.False(t, e.IsPublished)
}

func TestEverPublishedMonotonic(t *testing.T) {
	t.Parallel()

	var e Entry
	e.Publish()
	for _, step := range []func(){e.Unpublish, e.Publish, e.Hide, func() { _ = e.Restore() }, e.Unpublish} {
		step()
		require.True(t, e.EverPublished)
		checkInvariants(t, &e)
	}
}

func TestReadableBy(t *testing.T) {
	t.Parallel()

	e := Entry{UserID: 7, IsPrivate: true}

	require.True(t, e.ReadableBy(auth.Identity{ID: 7}), "owner reads own private entry")
	require.True(t, e.ReadableBy(auth.Identity{ID: 2, Admin: true}), "admin reads any entry")
	require.False(t, e.ReadableBy(auth.Identity{ID: 2}), "stranger blocked from private entry")

	e.IsPrivate = false
	require.True(t, e.ReadableBy(auth.Identity{ID: 2}))
}
