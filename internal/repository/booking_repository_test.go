package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(chatID int64) *model.Booking {
	return &model.Booking{
		ID:     fmt.Sprintf("b-%d-%d", chatID, chatID),
		ChatID: chatID,
		Status: model.BookingStatusWaiting,
	}
}

func TestAppend_AssignsNumberAndEstimate(t *testing.T) {
	repo := NewBookingRepository()

	for i := 1; i <= 3; i++ {
		b := newBooking(int64(i))
		b.ID = fmt.Sprintf("b%d", i)
		num := repo.Append(b)
		assert.Equal(t, i, num)
		assert.Equal(t, i, b.QueueNumber)
		assert.Equal(t, i*15, b.EstimatedWaitTime)
	}
	assert.Equal(t, 3, repo.Count())
}

func TestAppend_ConcurrentNumbersAreUnique(t *testing.T) {
	repo := NewBookingRepository()

	const n = 50
	numbers := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := newBooking(int64(i))
			b.ID = fmt.Sprintf("c%d", i)
			numbers <- repo.Append(b)
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int]bool)
	for num := range numbers {
		assert.False(t, seen[num], "queue number %d assigned twice", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestGetByID(t *testing.T) {
	repo := NewBookingRepository()
	b := newBooking(1)
	b.ID = "the-one"
	repo.Append(b)

	assert.Equal(t, b, repo.GetByID("the-one"))
	assert.Nil(t, repo.GetByID("missing"))
}

func TestGetActiveByChatID(t *testing.T) {
	repo := NewBookingRepository()

	first := newBooking(7)
	first.ID = "first"
	repo.Append(first)

	second := newBooking(7)
	second.ID = "second"
	repo.Append(second)

	// Most recent active wins.
	got := repo.GetActiveByChatID(7)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.ID)

	repo.UpdateStatus("second", model.BookingStatusCompleted)
	got = repo.GetActiveByChatID(7)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)

	repo.UpdateStatus("first", model.BookingStatusCompleted)
	assert.Nil(t, repo.GetActiveByChatID(7))

	// Latest ignores status.
	latest := repo.GetLatestByChatID(7)
	require.NotNil(t, latest)
	assert.Equal(t, "second", latest.ID)

	assert.Nil(t, repo.GetActiveByChatID(999))
	assert.Nil(t, repo.GetLatestByChatID(999))
}

func TestGetByChatID_PreservesOrder(t *testing.T) {
	repo := NewBookingRepository()

	for i, id := range []string{"a", "b", "c"} {
		b := newBooking(5)
		b.ID = id
		if i == 1 {
			b.ChatID = 6 // someone else's booking in between
		}
		repo.Append(b)
	}

	got := repo.GetByChatID(5)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	repo := NewBookingRepository()
	b := newBooking(1)
	b.ID = "orig"
	repo.Append(b)

	// Mutating a returned booking leaves the store untouched.
	got := repo.GetByID("orig")
	got.Status = model.BookingStatusCompleted
	got.EstimatedWaitTime = 0
	fresh := repo.GetByID("orig")
	assert.Equal(t, model.BookingStatusWaiting, fresh.Status)
	assert.Equal(t, 15, fresh.EstimatedWaitTime)

	// The pointer passed to Append stays the caller's own.
	b.CustomerName = "changed after append"
	assert.Empty(t, repo.GetByID("orig").CustomerName)

	list := repo.GetByChatID(1)
	require.Len(t, list, 1)
	list[0].QueueNumber = 99
	assert.Equal(t, 1, repo.GetLatestByChatID(1).QueueNumber)
}

func TestConcurrentStatusWritesAndReads(t *testing.T) {
	repo := NewBookingRepository()
	b := newBooking(9)
	b.ID = "live"
	repo.Append(b)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 200; i > 0; i-- {
			repo.UpdateStatus("live", model.BookingStatusReady)
			repo.UpdateEstimatedWait("live", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, got := range repo.GetByChatID(9) {
				_ = got.Status
				_ = got.EstimatedWaitTime
			}
		}
	}()
	wg.Wait()

	got := repo.GetByID("live")
	assert.Equal(t, model.BookingStatusReady, got.Status)
	assert.Equal(t, 1, got.EstimatedWaitTime)
}

func TestCompleteActiveExcept(t *testing.T) {
	repo := NewBookingRepository()
	for _, id := range []string{"old1", "old2", "kept"} {
		b := newBooking(3)
		b.ID = id
		repo.Append(b)
	}
	other := newBooking(4)
	other.ID = "other-chat"
	repo.Append(other)

	repo.CompleteActiveExcept(3, "kept")

	assert.Equal(t, model.BookingStatusCompleted, repo.GetByID("old1").Status)
	assert.Equal(t, model.BookingStatusCompleted, repo.GetByID("old2").Status)
	assert.Equal(t, model.BookingStatusWaiting, repo.GetByID("kept").Status)
	assert.Equal(t, model.BookingStatusWaiting, repo.GetByID("other-chat").Status)

	// The kept booking stays the active one for its chat.
	active := repo.GetActiveByChatID(3)
	require.NotNil(t, active)
	assert.Equal(t, "kept", active.ID)
}

func TestUpdateStatus_OnlyTouchesStatus(t *testing.T) {
	repo := NewBookingRepository()
	b := newBooking(1)
	b.ID = "x"
	repo.Append(b)

	repo.UpdateStatus("x", model.BookingStatusReady)
	got := repo.GetByID("x")
	assert.Equal(t, model.BookingStatusReady, got.Status)
	assert.Equal(t, 1, got.QueueNumber)

	// Unknown ids are ignored.
	repo.UpdateStatus("nope", model.BookingStatusCompleted)
	repo.UpdateEstimatedWait("nope", 0)
}
