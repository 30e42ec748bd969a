package journal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCriteriaFromValuesEmpty(t *testing.T) {
	t.Parallel()

	c, err := CriteriaFromValues(url.Values{})
	require.NoError(t, err)
	require.Nil(t, c.Search)
	require.Nil(t, c.Mood)
	require.Nil(t, c.Tags)
	require.Nil(t, c.Date)
	require.Nil(t, c.Query)
}

func TestCriteriaFromValuesBlankIsAbsent(t *testing.T) {
	t.Parallel()

	v := url.Values{"mood": {"  "}, "search": {""}, "tags": {"\t"}}
	c, err := CriteriaFromValues(v)
	require.NoError(t, err)
	require.Nil(t, c.Mood)
	require.Nil(t, c.Search)
	require.Nil(t, c.Tags)
}

func TestCriteriaFromValuesAll(t *testing.T) {
	t.Parallel()

	v := url.Values{
		"search": {"beach"},
		"mood":   {"happy"},
		"tags":   {"travel"},
		"date":   {"2024-06-01"},
		"query":  {"alice"},
	}
	c, err := CriteriaFromValues(v)
	require.NoError(t, err)
	require.Equal(t, "beach", *c.Search)
	require.Equal(t, "happy", *c.Mood)
	require.Equal(t, "travel", *c.Tags)
	require.Equal(t, "alice", *c.Query)
	require.Equal(t, "2024-06-01", c.Date.Format("2006-01-02"))
}

func TestCriteriaFromValuesBadDate(t *testing.T) {
	t.Parallel()

	_, err := CriteriaFromValues(url.Values{"date": {"01-06-2024"}})
	require.Error(t, err)
}
