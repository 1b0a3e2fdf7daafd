package capi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructionConfigJSON(t *testing.T) {
	tests := []struct {
		name string
		cfg  ConstructionConfig
		want string
	}{
		{
			name: "NaN missing, single thread",
			cfg:  ConstructionConfig{Missing: float32(math.NaN()), NThread: 1},
			want: `{"missing": NaN, "nthread": 1}`,
		},
		{
			name: "NaN missing, engine default threading",
			cfg:  ConstructionConfig{Missing: float32(math.NaN())},
			want: `{"missing": NaN}`,
		},
		{
			name: "numeric missing",
			cfg:  ConstructionConfig{Missing: 0, NThread: 4},
			want: `{"missing": 0, "nthread": 4}`,
		},
		{
			name: "negative sentinel",
			cfg:  ConstructionConfig{Missing: -999},
			want: `{"missing": -999}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.JSON())
		})
	}
}

func TestParseConstructionConfig(t *testing.T) {
	t.Run("NaN token with nthread", func(t *testing.T) {
		cfg, err := ParseConstructionConfig(`{"missing": NaN, "nthread": 1}`)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(float64(cfg.Missing)))
		assert.Equal(t, 1, cfg.NThread)
	})

	t.Run("NaN token without nthread", func(t *testing.T) {
		cfg, err := ParseConstructionConfig(`{"missing": NaN}`)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(float64(cfg.Missing)))
		assert.Equal(t, 0, cfg.NThread, "omitted nthread means engine default")
	})

	t.Run("numeric missing", func(t *testing.T) {
		cfg, err := ParseConstructionConfig(`{"missing": -999, "nthread": 8}`)
		require.NoError(t, err)
		assert.EqualValues(t, -999, cfg.Missing)
		assert.Equal(t, 8, cfg.NThread)
	})

	t.Run("empty object keeps defaults", func(t *testing.T) {
		cfg, err := ParseConstructionConfig(`{}`)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(float64(cfg.Missing)))
		assert.Equal(t, 0, cfg.NThread)
	})

	t.Run("rejects non-positive nthread", func(t *testing.T) {
		_, err := ParseConstructionConfig(`{"missing": NaN, "nthread": 0}`)
		assert.Error(t, err)

		_, err = ParseConstructionConfig(`{"missing": NaN, "nthread": -2}`)
		assert.Error(t, err)
	})

	t.Run("rejects malformed document", func(t *testing.T) {
		_, err := ParseConstructionConfig(`{"missing":`)
		assert.Error(t, err)
	})
}

func TestConfigRoundTrip(t *testing.T) {
	for _, cfg := range []ConstructionConfig{
		{Missing: float32(math.NaN()), NThread: 1},
		{Missing: float32(math.NaN())},
		{Missing: 0, NThread: 16},
	} {
		parsed, err := ParseConstructionConfig(cfg.JSON())
		require.NoError(t, err)
		assert.Equal(t, cfg.NThread, parsed.NThread)
		if math.IsNaN(float64(cfg.Missing)) {
			assert.True(t, math.IsNaN(float64(parsed.Missing)))
		} else {
			assert.Equal(t, cfg.Missing, parsed.Missing)
		}
	}
}
