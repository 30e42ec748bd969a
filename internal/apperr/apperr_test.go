package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	err := E(NotFound, "journal %d not found", 42)
	require.Equal(t, NotFound, KindOf(err))
	require.Equal(t, "journal 42 not found", err.Error())
}

func TestKindOfWrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading entry: %w", E(Forbidden, "not yours"))
	require.Equal(t, Forbidden, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()

	require.Equal(t, Internal, KindOf(errors.New("boom")))
	require.Equal(t, Internal, KindOf(nil))
}
