package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietlog/dietlog-go/internal/migrations"
	"github.com/dietlog/dietlog-go/internal/model"
)

func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db.DB, "sqlite"))
	return db
}

func seedUser(t *testing.T, users *UserRepository, name string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New(), Name: name, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestSQLite_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newSQLiteDB(t))

	alice := seedUser(t, users, "alice")

	got, err := users.GetByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	ok, err := users.Exists(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	err = users.Create(ctx, &model.User{ID: uuid.New(), Name: "alice", PasswordHash: "x", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSQLite_MealsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	users := NewUserRepository(db)
	meals := NewMealRepository(db)
	owner := seedUser(t, users, "alice")

	// Identical timestamps: the time-ordered id breaks the tie.
	at := time.Now().UTC()
	var want []uuid.UUID
	for _, name := range []string{"breakfast", "lunch", "dinner", "snack"} {
		m := &model.Meal{ID: uuid.Must(uuid.NewV7()), UserID: owner.ID, Name: name, CreatedAt: at}
		require.NoError(t, meals.Create(ctx, m))
		want = append(want, m.ID)
	}

	got, err := meals.List(ctx, owner.ID, "")
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i].ID)
	}
}

func TestSQLite_MealsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	users := NewUserRepository(db)
	meals := NewMealRepository(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	onDiet := true
	for _, owner := range []*model.User{alice, bob} {
		require.NoError(t, meals.Create(ctx, &model.Meal{
			ID: uuid.Must(uuid.NewV7()), UserID: owner.ID, Name: "lunch", CreatedAt: time.Now().UTC(), IsOnDiet: &onDiet,
		}))
	}

	renamed := "brunch"
	n, err := meals.Update(ctx, alice.ID, "lunch", model.MealPatch{Name: &renamed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	bobs, err := meals.List(ctx, bob.ID, "lunch")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	require.NotNil(t, bobs[0].IsOnDiet)
	assert.True(t, *bobs[0].IsOnDiet)

	n, err = meals.Delete(ctx, bob.ID, "brunch")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = meals.Delete(ctx, alice.ID, "brunch")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSQLite_MealRequiresExistingOwner(t *testing.T) {
	meals := NewMealRepository(newSQLiteDB(t))

	err := meals.Create(context.Background(), &model.Meal{
		ID: uuid.Must(uuid.NewV7()), UserID: uuid.New(), Name: "orphan", CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}
