package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/pkg/netx"
)

func TestNewBucketer(t *testing.T) {
	t.Parallel()

	classifier, err := netx.NewClassifier(nil)
	require.NoError(t, err)

	t.Run("rejects unknown timezone", func(t *testing.T) {
		_, err := NewBucketer("Nowhere/Invalid", classifier, "internal")
		require.Error(t, err)
	})

	t.Run("rejects empty internal tag", func(t *testing.T) {
		_, err := NewBucketer("UTC", classifier, "")
		require.Error(t, err)
	})

	t.Run("rejects internal tag colliding with others", func(t *testing.T) {
		_, err := NewBucketer("UTC", classifier, domain.LocationOthers)
		require.Error(t, err)
	})
}

func TestKeyAtUsesFixedZone(t *testing.T) {
	t.Parallel()

	classifier, err := netx.NewClassifier(nil)
	require.NoError(t, err)

	bucketer, err := NewBucketer("Asia/Tokyo", classifier, "internal")
	require.NoError(t, err)

	// 2025-05-15 16:30 UTC is 2025-05-16 01:30 in Tokyo (UTC+9).
	instant := time.Date(2025, 5, 15, 16, 30, 0, 0, time.UTC)
	key := bucketer.KeyAt(instant)
	require.Equal(t, domain.BucketKey{Year: 2025, Month: 5, Day: 16, Hours: 1}, key)
}

func TestKeyAtStableWithinHour(t *testing.T) {
	t.Parallel()

	bucketer := newTestBucketer(t)

	start := time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 15, 9, 59, 59, 0, time.UTC)
	next := time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC)

	require.Equal(t, bucketer.KeyAt(start), bucketer.KeyAt(end))
	require.NotEqual(t, bucketer.KeyAt(start), bucketer.KeyAt(next))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	bucketer := newTestBucketer(t)

	t.Run("internal range", func(t *testing.T) {
		require.Equal(t, "internal", bucketer.Classify("10.200.0.9"))
		require.True(t, bucketer.IsInternal("10.200.0.9"))
	})

	t.Run("external address", func(t *testing.T) {
		require.Equal(t, domain.LocationOthers, bucketer.Classify("203.0.113.7"))
		require.False(t, bucketer.IsInternal("203.0.113.7"))
	})

	t.Run("4-in-6 mapped internal address", func(t *testing.T) {
		require.Equal(t, "internal", bucketer.Classify("::ffff:10.0.0.1"))
	})

	t.Run("unparseable address is external", func(t *testing.T) {
		require.Equal(t, domain.LocationOthers, bucketer.Classify("not-an-ip"))
		require.Equal(t, domain.LocationOthers, bucketer.Classify(""))
	})
}
