package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReviewDate(t *testing.T) {
	tests := []struct {
		box  int
		days int
	}{
		{box: 1, days: 1},
		{box: 2, days: 3},
		{box: 3, days: 7},
		{box: 4, days: 14},
		{box: 5, days: 30},
	}

	for _, tt := range tests {
		got, err := NextReviewDate(tt.box)
		require.NoError(t, err, "box %d", tt.box)
		want := time.Now().AddDate(0, 0, tt.days)
		assert.WithinDuration(t, want, got, time.Minute, "box %d", tt.box)
	}
}

func TestNextReviewDateInvalidBox(t *testing.T) {
	for _, box := range []int{0, -1, 6, 100} {
		_, err := NextReviewDate(box)
		require.Error(t, err, "box %d", box)

		var boxErr *InvalidBoxError
		require.True(t, errors.As(err, &boxErr), "box %d", box)
		assert.Equal(t, box, boxErr.Box)
		assert.Contains(t, err.Error(), "between 1 and 5")
	}
}
