package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCreate_ValidatesNameAndCategory(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	svc := NewItemService(factory, domain.NewFixedClock(fixedNow))
	ctx := context.Background()
	owner := testutil.NewOwnerID()

	_, err := svc.Create(ctx, testutil.NewTestItem(owner, ""))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, testutil.NewTestItem(owner, "orphan", testutil.WithCategory(12345)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	cat := testutil.SeedCategory(t, factory, testutil.NewTestCategory(owner))
	it, err := svc.Create(ctx, testutil.NewTestItem(owner, "ok", testutil.WithCategory(cat.ID)))
	require.NoError(t, err)
	assert.NotZero(t, it.ID)
}

func TestItemUpdate_AppliesPatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	svc := NewItemService(factory, domain.NewFixedClock(fixedNow))
	ctx := context.Background()

	owner := testutil.NewOwnerID()
	items := testutil.SeedItems(t, factory, testutil.NewTestItem(owner, "draft",
		testutil.WithPriority(2), testutil.WithDescription("old")))

	got, err := svc.Update(ctx, items[0].ID, domain.ItemPatch{
		EstimatedHours: domain.Ptr(3),
		Priority:       domain.Ptr(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Name, "blank name keeps the current one")
	assert.Nil(t, got.Description, "patch replaces optional fields")

	reloaded := testutil.LoadItem(t, factory, items[0].ID)
	assert.Equal(t, 3, *reloaded.EstimatedHours)
	assert.Equal(t, 8, *reloaded.Priority)
	assert.Nil(t, reloaded.Description)
}

func TestItemUpdate_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewItemService(testutil.NewTestFactory(database), domain.NewFixedClock(fixedNow))

	_, err := svc.Update(context.Background(), 999, domain.ItemPatch{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	svc := NewItemService(factory, domain.NewFixedClock(fixedNow))
	ctx := context.Background()

	items := testutil.SeedItems(t, factory, testutil.NewTestItem(testutil.NewOwnerID(), "gone"))

	require.NoError(t, svc.Delete(ctx, items[0].ID))
	_, err := svc.GetByID(ctx, items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, items[0].ID), domain.ErrNotFound)
}

func TestItemCompleteToggleAndPriority(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	clock := domain.NewFixedClock(fixedNow)
	svc := NewItemService(factory, clock)
	ctx := context.Background()

	items := testutil.SeedItems(t, factory, testutil.NewTestItem(testutil.NewOwnerID(), "task"))
	id := items[0].ID

	require.NoError(t, svc.Complete(ctx, id))
	got := testutil.LoadItem(t, factory, id)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(fixedNow))

	toggled, err := svc.ToggleLoop(ctx, id)
	require.NoError(t, err)
	assert.True(t, toggled.Looped())
	toggled, err = svc.ToggleLoop(ctx, id)
	require.NoError(t, err)
	assert.False(t, toggled.Looped())
	assert.False(t, testutil.LoadItem(t, factory, id).Looped())

	require.NoError(t, svc.UpdatePriority(ctx, id, 6))
	assert.Equal(t, 6, *testutil.LoadItem(t, factory, id).Priority)

	assert.ErrorIs(t, svc.Complete(ctx, 31337), domain.ErrNotFound)
}

func TestItemPendingCompletedAndStats(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	clock := domain.NewFixedClock(fixedNow)
	svc := NewItemService(factory, clock)
	ctx := context.Background()

	owner := testutil.NewOwnerID()
	done := testutil.NewTestItem(owner, "done", testutil.WithEstimatedHours(2), testutil.WithLooped(true))
	done.Complete(fixedNow.Add(-time.Hour))
	future := testutil.NewTestItem(owner, "scheduled", testutil.WithEstimatedHours(5))
	future.Complete(fixedNow.Add(time.Hour))
	open := testutil.NewTestItem(owner, "open")
	testutil.SeedItems(t, factory, done, future, open,
		testutil.NewTestItem(testutil.NewOwnerID(), "someone else"))

	pending, err := svc.ListPending(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"scheduled", "open"}, itemNames(pending))

	completed, err := svc.ListCompleted(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, itemNames(completed))

	stats, err := svc.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStats{
		Total:               3,
		Completed:           1,
		Pending:             2,
		Looped:              1,
		CompletionRate:      33.33,
		TotalEstimatedHours: 7,
	}, stats)

	// Once the clock passes the future stamp the item counts as completed.
	clock.Advance(2 * time.Hour)
	completed, err = svc.ListCompleted(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"done", "scheduled"}, itemNames(completed))
}

func TestItemListQueries(t *testing.T) {
	database := testutil.NewTestDB(t)
	factory := testutil.NewTestFactory(database)
	svc := NewItemService(factory, domain.NewFixedClock(fixedNow))
	ctx := context.Background()

	owner := testutil.NewOwnerID()
	cat := testutil.SeedCategory(t, factory, testutil.NewTestCategory(owner))
	testutil.SeedItems(t, factory,
		testutil.NewTestItem(owner, "p3", testutil.WithPriority(3), testutil.WithCategory(cat.ID)),
		testutil.NewTestItem(owner, "p1", testutil.WithPriority(1), testutil.WithLooped(true)),
		testutil.NewTestItem(owner, "p3b", testutil.WithPriority(3)),
	)

	byOwner, err := svc.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p3b"}, itemNames(byOwner))

	byCat, err := svc.ListByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, itemNames(byCat))

	looped, err := svc.ListLooped(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, itemNames(looped))

	byPriority, err := svc.ListByPriority(ctx, owner, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p3b"}, itemNames(byPriority))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLogUseCaseObserver_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	database := testutil.NewTestDB(t)
	svc := NewItemService(testutil.NewTestFactory(database), domain.NewFixedClock(fixedNow), NewLogUseCaseObserver(&buf))

	_, err := svc.Create(context.Background(), testutil.NewTestItem("owner-1", "logged"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=item.create")
	assert.Contains(t, out, "success=true")
}

func itemNames(items []*domain.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}
