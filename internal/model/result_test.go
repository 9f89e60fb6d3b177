package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisSerializesAsMilliseconds(t *testing.T) {
	t.Parallel()

	meta := SourceMetadata{
		Platform: PlatformMeta,
		Count:    3,
		Duration: Millis(1500 * time.Millisecond),
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration_ms":1500`)
}

func TestMillisRoundTrip(t *testing.T) {
	t.Parallel()

	in := AggregateResult{
		RunID:    "r1",
		Company:  "HubSpot",
		Duration: Millis(2 * time.Second),
		Sources: []SourceMetadata{
			{Platform: PlatformGoogle, Duration: Millis(250 * time.Millisecond)},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out AggregateResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, Millis(2*time.Second), out.Duration)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, Millis(250*time.Millisecond), out.Sources[0].Duration)
}
