package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/idx"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, screenName string) domain.User {
	t.Helper()

	user := domain.User{
		ID:          idx.New().String(),
		ScreenName:  screenName,
		Visibility:  domain.VisibilityPublic,
		HashedToken: "hash",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func TestInsertCheckinEnforcesBucketIdentity(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore(t)
	user := seedUser(t, st, "bucket_user")

	key := domain.BucketKey{Year: 2025, Month: 5, Day: 15, Hours: 9}

	created, err := st.Checkins().InsertCheckin(ctx, user.ID, key, "internal")
	require.NoError(t, err)
	require.Equal(t, 1, created.Count)
	require.NotZero(t, created.ID)

	// Same composite identity collides.
	_, err = st.Checkins().InsertCheckin(ctx, user.ID, key, "internal")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// A different location class in the same hour is a distinct bucket.
	other, err := st.Checkins().InsertCheckin(ctx, user.ID, key, "others")
	require.NoError(t, err)
	require.NotEqual(t, created.ID, other.ID)

	// Another user shares nothing.
	second := seedUser(t, st, "bucket_user2")
	_, err = st.Checkins().InsertCheckin(ctx, second.ID, key, "internal")
	require.NoError(t, err)
}

func TestIncrementCheckin(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore(t)
	user := seedUser(t, st, "increment_user")

	key := domain.BucketKey{Year: 2025, Month: 5, Day: 15, Hours: 9}
	created, err := st.Checkins().InsertCheckin(ctx, user.ID, key, "internal")
	require.NoError(t, err)

	count, err := st.Checkins().IncrementCheckin(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = st.Checkins().IncrementCheckin(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	_, err = st.Checkins().IncrementCheckin(ctx, created.ID+999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListCheckinsFilter(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore(t)
	user := seedUser(t, st, "filter_user")

	keys := []domain.BucketKey{
		{Year: 2025, Month: 4, Day: 30, Hours: 23},
		{Year: 2025, Month: 5, Day: 1, Hours: 8},
		{Year: 2025, Month: 5, Day: 1, Hours: 9},
	}
	for _, key := range keys {
		_, err := st.Checkins().InsertCheckin(ctx, user.ID, key, "internal")
		require.NoError(t, err)
	}

	all, err := st.Checkins().ListCheckins(ctx, user.ID, domain.CheckinFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	month := 5
	may, err := st.Checkins().ListCheckins(ctx, user.ID, domain.CheckinFilter{Month: &month})
	require.NoError(t, err)
	require.Len(t, may, 2)

	forHour, err := st.Checkins().ListCheckinsForHour(ctx, user.ID, keys[1])
	require.NoError(t, err)
	require.Len(t, forHour, 1)
	require.Equal(t, keys[1], forHour[0].Key())
}

func TestLatestCheckin(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore(t)
	user := seedUser(t, st, "latest_user")

	_, err := st.Checkins().LatestCheckin(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	first, err := st.Checkins().InsertCheckin(ctx, user.ID,
		domain.BucketKey{Year: 2025, Month: 5, Day: 15, Hours: 8}, "internal")
	require.NoError(t, err)

	_, err = st.Checkins().InsertCheckin(ctx, user.ID,
		domain.BucketKey{Year: 2025, Month: 5, Day: 15, Hours: 9}, "others")
	require.NoError(t, err)

	// Incrementing the older bucket bumps its updated_at past the newer row.
	_, err = st.Checkins().IncrementCheckin(ctx, first.ID)
	require.NoError(t, err)

	latest, err := st.Checkins().LatestCheckin(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, latest.ID)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore(t)
	user := seedUser(t, st, "tx_user")

	key := domain.BucketKey{Year: 2025, Month: 5, Day: 15, Hours: 9}

	wantErr := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Checkins().InsertCheckin(ctx, user.ID, key, "internal")
		require.NoError(t, err)
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	rows, err := st.Checkins().ListCheckins(ctx, user.ID, domain.CheckinFilter{})
	require.NoError(t, err)
	require.Empty(t, rows)
}
