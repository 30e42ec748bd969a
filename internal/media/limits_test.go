package media

import (
	"strings"
	"testing"

	"dailyjournal/internal/apperr"

	"github.com/stretchr/testify/require"
)

func upload(name string, size int64) Upload {
	return Upload{Name: name, Size: size}
}

func TestCheckAttachmentsAccepts(t *testing.T) {
	t.Parallel()

	uploads := []Upload{
		upload("a.jpg", 2<<20),
		upload("b.PNG", 2<<20),
		upload("c.pdf", 2<<20),
		upload("d.mp3", 2<<20),
	}
	require.NoError(t, CheckAttachments(0, uploads))
}

func TestCheckAttachmentsCountLimit(t *testing.T) {
	t.Parallel()

	err := CheckAttachments(4, []Upload{upload("a.jpg", 1)})
	require.Error(t, err)
	require.Equal(t, apperr.LimitExceeded, apperr.KindOf(err))

	// Existing attachments count against the limit.
	err = CheckAttachments(2, []Upload{upload("a.jpg", 1), upload("b.jpg", 1), upload("c.jpg", 1)})
	require.Error(t, err)
	require.Equal(t, apperr.LimitExceeded, apperr.KindOf(err))
}

func TestCheckAttachmentsIgnoresEmptyParts(t *testing.T) {
	t.Parallel()

	// Empty parts are never stored, so they count toward nothing.
	require.NoError(t, CheckAttachments(4, []Upload{upload("a.jpg", 0)}))

	uploads := []Upload{
		upload("a.jpg", 1),
		upload("b.jpg", 1),
		upload("c.jpg", 1),
		upload("d.jpg", 1),
		upload("padding", 0),
	}
	require.NoError(t, CheckAttachments(0, uploads))
}

func TestCheckAttachmentsFileTooLarge(t *testing.T) {
	t.Parallel()

	err := CheckAttachments(0, []Upload{upload("big.jpg", 4<<20)})
	require.Error(t, err)
	require.Equal(t, apperr.TooLarge, apperr.KindOf(err))
}

func TestCheckAttachmentsBatchTooLarge(t *testing.T) {
	t.Parallel()

	// Each file fits individually, the batch does not.
	uploads := []Upload{
		upload("a.jpg", 3<<20),
		upload("b.jpg", 3<<20),
		upload("c.jpg", 3<<20),
		upload("d.jpg", 3<<20),
	}
	err := CheckAttachments(0, uploads)
	require.Error(t, err)
	require.Equal(t, apperr.TooLarge, apperr.KindOf(err))
}

func TestCheckAttachmentsExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"shell.sh", "binary.exe", "noextension", "archive.zip"} {
		err := CheckAttachments(0, []Upload{upload(name, 1)})
		require.Error(t, err, name)
		require.Equal(t, apperr.UnsupportedType, apperr.KindOf(err), name)
	}
}

func TestCheckProfilePicture(t *testing.T) {
	t.Parallel()

	ok := Upload{Name: "me.png", ContentType: "image/png", Size: 1 << 20}
	require.NoError(t, CheckProfilePicture(ok))

	empty := Upload{Name: "me.png", ContentType: "image/png"}
	require.Equal(t, apperr.InvalidArgument, apperr.KindOf(CheckProfilePicture(empty)))

	big := Upload{Name: "me.png", ContentType: "image/png", Size: 3 << 20}
	require.Equal(t, apperr.TooLarge, apperr.KindOf(CheckProfilePicture(big)))

	gif := Upload{Name: "me.gif", ContentType: "image/gif", Size: 1 << 20}
	require.Equal(t, apperr.UnsupportedType, apperr.KindOf(CheckProfilePicture(gif)))
}

func TestStorageKey(t *testing.T) {
	t.Parallel()

	k1 := StorageKey("photo.jpg")
	k2 := StorageKey("photo.jpg")

	require.True(t, strings.HasSuffix(k1, "_photo.jpg"))
	require.NotEqual(t, k1, k2)
}
