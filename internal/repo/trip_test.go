package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/repo"
)

func ptr[T any](v T) *T { return &v }

// tripFixture returns a finished cash trip with sensible defaults.
// Callers can override individual fields after calling this function.
// Finished, because the partial unique index allows only one active trip.
func tripFixture() domain.Trip {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	payment := domain.PaymentCash
	return domain.Trip{
		StartTime: start,
		EndTime:   ptr(start.Add(25 * time.Minute)),
		Amount:    ptr(12.5),
		Payment:   &payment,
		Source:    domain.SourceTaxi,
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.True(t, got.StartTime.Equal(input.StartTime), "StartTime mismatch")
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(*input.EndTime), "EndTime mismatch")
	require.NotNil(t, got.Amount)
	assert.Equal(t, 12.5, *got.Amount)
	require.NotNil(t, got.Payment)
	assert.Equal(t, domain.PaymentCash, *got.Payment)
	assert.Equal(t, domain.SourceTaxi, got.Source)
	assert.Nil(t, got.ChargedAmount)
	assert.Nil(t, got.CashTip)
	assert.Nil(t, got.WorkdayID)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_Active(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	input := tripFixture()
	input.EndTime = nil
	input.Amount = nil
	input.Payment = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.Amount)
	assert.Nil(t, got.Payment)
	assert.True(t, got.Active())
}

func TestTripRepo_Create_SecondActiveRejected(t *testing.T) {
	// The partial unique index on end_time IS NULL is the storage-level
	// backstop for "one trip at a time".
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	active := tripFixture()
	active.EndTime = nil
	_, err := r.Create(ctx, active)
	require.NoError(t, err)

	second := tripFixture()
	second.EndTime = nil
	second.StartTime = second.StartTime.Add(time.Minute)
	_, err = r.Create(ctx, second)

	assert.ErrorIs(t, err, domain.ErrTripActive)
}

func TestTripRepo_GetActive(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	active := tripFixture()
	active.EndTime = nil
	active.StartTime = active.StartTime.Add(time.Hour)
	created, err := r.Create(ctx, active)
	require.NoError(t, err)

	got, err := r.GetActive(ctx)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestTripRepo_GetActive_NoneActive(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = r.GetActive(ctx)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))

	_, err := r.GetByID(context.Background(), 999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Amount = ptr(15.0)
	created.ChargedAmount = ptr(18.0)
	payment := domain.PaymentCard
	created.Payment = &payment
	created.Source = domain.SourceCustom
	created.CustomSource = ptr("BOLT")

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, 15.0, *got.Amount)
	require.NotNil(t, got.ChargedAmount)
	assert.Equal(t, 18.0, *got.ChargedAmount)
	assert.Equal(t, domain.PaymentCard, *got.Payment)
	assert.Equal(t, domain.SourceCustom, got.Source)
	require.NotNil(t, got.CustomSource)
	assert.Equal(t, "BOLT", *got.CustomSource)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))

	missing := tripFixture()
	missing.ID = 999999

	_, err := r.Update(context.Background(), missing)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))

	err := r.Delete(context.Background(), 999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByWorkday(t *testing.T) {
	tx := testTx(t)
	trips := repo.NewTripRepo(tx)
	workdays := repo.NewWorkdayRepo(tx)
	ctx := context.Background()

	workday, err := workdays.Create(ctx, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	first := tripFixture()
	first.WorkdayID = &workday.ID
	_, err = trips.Create(ctx, first)
	require.NoError(t, err)

	second := tripFixture()
	second.WorkdayID = &workday.ID
	second.StartTime = first.StartTime.Add(time.Hour)
	second.EndTime = ptr(second.StartTime.Add(15 * time.Minute))
	_, err = trips.Create(ctx, second)
	require.NoError(t, err)

	unrelated := tripFixture()
	unrelated.StartTime = first.StartTime.Add(2 * time.Hour)
	unrelated.EndTime = ptr(unrelated.StartTime.Add(10 * time.Minute))
	_, err = trips.Create(ctx, unrelated)
	require.NoError(t, err)

	got, err := trips.ListByWorkday(ctx, workday.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].StartTime.After(got[1].StartTime), "most recent start first")
}

func TestTripRepo_ListStartedBetween(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	inside := tripFixture()
	_, err := r.Create(ctx, inside)
	require.NoError(t, err)

	before := tripFixture()
	before.StartTime = inside.StartTime.AddDate(0, 0, -7)
	before.EndTime = ptr(before.StartTime.Add(10 * time.Minute))
	_, err = r.Create(ctx, before)
	require.NoError(t, err)

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got, err := r.ListStartedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartTime.Equal(inside.StartTime))
}

func TestTripRepo_ListAll_OrderedAscending(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))
	ctx := context.Background()

	later := tripFixture()
	later.StartTime = later.StartTime.Add(3 * time.Hour)
	later.EndTime = ptr(later.StartTime.Add(10 * time.Minute))
	_, err := r.Create(ctx, later)
	require.NoError(t, err)

	earlier := tripFixture()
	_, err = r.Create(ctx, earlier)
	require.NoError(t, err)

	got, err := r.ListAll(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].StartTime.Before(got[1].StartTime), "export order is oldest first")
}
