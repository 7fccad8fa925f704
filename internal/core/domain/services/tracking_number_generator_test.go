package services_test

import (
	"testing"
	"time"

	"pickdrop/internal/core/domain/services"
	"pickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingNumberGenerator_Generate(t *testing.T) {
	t.Run("deterministic with injected clock and random", func(t *testing.T) {
		clock := func() time.Time { return time.UnixMilli(1_741_944_600_123) }
		seq := []int{10, 35, 0}
		i := 0
		random := func(n int) int {
			v := seq[i%len(seq)]
			i++
			return v
		}

		g, err := services.NewTrackingNumberGenerator("PDL", services.WithClock(clock), services.WithRandom(random))
		require.NoError(t, err)

		tn := g.Generate()

		assert.Equal(t, "PDL4600123AZ0", tn.String())
		require.NoError(t, tn.Validate())
	})

	t.Run("time digits are zero padded", func(t *testing.T) {
		clock := func() time.Time { return time.UnixMilli(20_000_042) }
		g, err := services.NewTrackingNumberGenerator("ABC", services.WithClock(clock), services.WithRandom(func(int) int { return 1 }))
		require.NoError(t, err)

		assert.Equal(t, "ABC0000042111", g.Generate().String())
	})

	t.Run("default generator matches the format", func(t *testing.T) {
		g, err := services.NewTrackingNumberGenerator(services.DefaultTrackingPrefix)
		require.NoError(t, err)

		for range 100 {
			require.NoError(t, g.Generate().Validate())
		}
	})
}

func TestNewTrackingNumberGenerator_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "PD", "pdl", "PDL1", "P1L"} {
		_, err := services.NewTrackingNumberGenerator(prefix)
		require.ErrorIs(t, err, errs.ErrInvalidInput, prefix)
	}
}
