package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/repository"
	"github.com/alexanderramin/itemtracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepo_AddAssignsIDOnFlush(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))
	ctx := context.Background()
	owner := testutil.NewOwnerID()

	it := testutil.NewTestItem(owner, "Write report",
		testutil.WithDescription("quarterly"),
		testutil.WithEstimatedHours(4),
		testutil.WithPriority(3),
		testutil.WithLooped(true),
	)
	require.NoError(t, u.Items().Add(ctx, it))
	assert.Zero(t, it.ID, "ID is assigned only when the insert is flushed")

	n, err := u.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotZero(t, it.ID)

	got, err := u.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Name)
	assert.Equal(t, "quarterly", *got.Description)
	assert.Equal(t, 4, *got.EstimatedHours)
	assert.Equal(t, 3, *got.Priority)
	assert.True(t, *got.IsLooped)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, owner, got.OwnerID)
}

func TestItemRepo_GetByIDNotFound(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))

	got, err := u.Items().GetByID(context.Background(), 999)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemRepo_StagedAddInvisibleUntilSaved(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))
	ctx := context.Background()
	owner := testutil.NewOwnerID()

	require.NoError(t, u.Items().Add(ctx, testutil.NewTestItem(owner, "pending")))
	n, err := u.Items().Count(ctx, repository.ItemFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = u.SaveChanges(ctx)
	require.NoError(t, err)
	n, err = u.Items().Count(ctx, repository.ItemFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestItemRepo_UpdateReplacesMutableFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewTestFactory(database)
	ctx := context.Background()
	owner := testutil.NewOwnerID()

	cat := testutil.SeedCategory(t, f, testutil.NewTestCategory(owner))
	items := testutil.SeedItems(t, f, testutil.NewTestItem(owner, "a",
		testutil.WithPriority(1), testutil.WithCategory(cat.ID), testutil.WithDescription("d")))

	done := time.Date(2025, 3, 1, 12, 30, 0, 123, time.UTC)
	it := testutil.LoadItem(t, f, items[0].ID)
	it.Name = "renamed"
	it.Priority = domain.Ptr(8)
	it.Description = nil
	it.CategoryID = nil
	it.CompletedAt = &done

	u := f()
	require.NoError(t, u.Items().Update(ctx, it))
	_, err := u.SaveChanges(ctx)
	require.NoError(t, err)

	got := testutil.LoadItem(t, f, it.ID)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, 8, *got.Priority)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.CategoryID)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
}

func TestItemRepo_UpdateMissingRowFailsFlush(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, u.Items().Update(ctx, &domain.Item{ID: 42, Name: "ghost", OwnerID: "x"}))
	_, err := u.SaveChanges(ctx)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemRepo_UpdateRequiresID(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))
	err := u.Items().Update(context.Background(), &domain.Item{Name: "new"})
	require.Error(t, err)
	assert.Equal(t, 0, u.(interface{ Pending() int }).Pending())
}

func TestItemRepo_UnknownCategoryViolatesForeignKey(t *testing.T) {
	u := testutil.NewTestUoW(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, u.Items().Add(ctx, testutil.NewTestItem("o", "x", testutil.WithCategory(9999))))
	_, err := u.SaveChanges(ctx)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestItemRepo_RemoveMany(t *testing.T) {
	f := testutil.NewTestFactory(testutil.NewTestDB(t))
	ctx := context.Background()
	owner := testutil.NewOwnerID()

	items := testutil.SeedItems(t, f,
		testutil.NewTestItem(owner, "a"),
		testutil.NewTestItem(owner, "b"),
		testutil.NewTestItem(owner, "c"),
	)

	u := f()
	require.NoError(t, u.Items().RemoveMany(ctx, items[:2]))
	n, err := u.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := f().Items().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "c", all[0].Name)
}

func TestItemRepo_Queries(t *testing.T) {
	f := testutil.NewTestFactory(testutil.NewTestDB(t))
	ctx := context.Background()
	owner := testutil.NewOwnerID()
	other := testutil.NewOwnerID()

	cat := testutil.SeedCategory(t, f, testutil.NewTestCategory(owner))
	testutil.SeedItems(t, f,
		testutil.NewTestItem(owner, "p5", testutil.WithPriority(5), testutil.WithCategory(cat.ID)),
		testutil.NewTestItem(owner, "p1", testutil.WithPriority(1), testutil.WithLooped(true)),
		testutil.NewTestItem(owner, "none"),
		testutil.NewTestItem(owner, "p5b", testutil.WithPriority(5), testutil.WithLooped(false)),
		testutil.NewTestItem(other, "foreign", testutil.WithPriority(5), testutil.WithCategory(cat.ID), testutil.WithLooped(true)),
	)
	repo := f().Items()

	byOwner, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"none", "p1", "p5", "p5b"}, names(byOwner), "ordered by priority, unset first")

	byCat, err := repo.ListByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "foreign"}, names(byCat))

	looped, err := repo.ListLooped(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, names(looped))

	p5, err := repo.ListByPriority(ctx, owner, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "p5b"}, names(p5))

	used, err := repo.Exists(ctx, repository.ItemFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.True(t, used)

	missing := int64(777)
	used, err = repo.Exists(ctx, repository.ItemFilter{CategoryID: &missing})
	require.NoError(t, err)
	assert.False(t, used)

	notLooped := false
	n, err := repo.Count(ctx, repository.ItemFilter{OwnerID: &owner, Looped: &notLooped})
	require.NoError(t, err)
	assert.Equal(t, 3, n, "unset loop flag counts as not looped")
}

func names(items []*domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
