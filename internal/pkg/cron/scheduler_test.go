package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyAtNext(t *testing.T) {
	schedule := MonthlyAt{Day: 1, Hour: 0}

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
	}{
		{
			name:  "mid-month rolls to the first of next month",
			after: time.Date(2025, 9, 15, 13, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "just before midnight fires the same night",
			after: time.Date(2025, 8, 31, 23, 59, 0, 0, time.UTC),
			want:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "exactly at the fire instant waits a month",
			after: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "december rolls into the next year",
			after: time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.Next(tt.after))
		})
	}
}

func TestEveryNext(t *testing.T) {
	after := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, after.Add(time.Hour), Every(time.Hour).Next(after))
}

func TestSchedulerRunsDueJob(t *testing.T) {
	scheduler := NewScheduler()

	ran := make(chan struct{}, 1)
	scheduler.AddJob("tick", Every(10*time.Millisecond), func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start()
	defer scheduler.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}
