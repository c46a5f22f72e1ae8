package cache

import (
	"testing"
	"time"
)

func TestValidityWindow(t *testing.T) {
	t.Parallel()

	if got := ValidityWindow(3*time.Minute, true); got != 3*time.Minute {
		t.Errorf("open market: expected 3m, got %v", got)
	}
	if got := ValidityWindow(3*time.Minute, false); got != 9*time.Minute {
		t.Errorf("closed market: expected 9m, got %v", got)
	}
}
