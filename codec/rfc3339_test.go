package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRFC3339_Codec_Basic(t *testing.T) {
	c := TimeRFC3339()

	in := "1985-04-12T23:20:50Z"
	got, err := c.Decode(in)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Unix(482196050, 0)), "unexpected time: %v", got)

	out, err := c.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTimeRFC3339_NormalizesToUTC(t *testing.T) {
	c := TimeRFC3339()
	got, err := c.Decode("2020-01-02T09:00:00.500+09:00")
	require.NoError(t, err)
	out, err := c.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T00:00:00.5Z", out)
}

func TestTimeRFC3339_Invalid(t *testing.T) {
	c := TimeRFC3339()
	_, err := c.Decode("April 12th")
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = c.Encode(time.Time{})
	assert.ErrorIs(t, err, ErrInvalidTime)
}
