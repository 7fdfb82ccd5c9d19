package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	date, err := ParseDate("2026-03-14")
	require.NoError(t, err)

	raw, err := json.Marshal(date)
	require.NoError(t, err)
	require.Equal(t, `"2026-03-14"`, string(raw))

	var decoded Date
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "2026-03-14", decoded.String())
}

func TestDateUnmarshalWithTimeSuffix(t *testing.T) {
	var date Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-14T00:00:00"`), &date))
	require.Equal(t, "2026-03-14", date.String())
}

func TestDateUnmarshalNull(t *testing.T) {
	date := NewDate(2026, time.March, 14)
	require.NoError(t, json.Unmarshal([]byte(`null`), &date))
	require.Equal(t, "2026-03-14", date.String())
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("14/03/2026")
	require.Error(t, err)
}
