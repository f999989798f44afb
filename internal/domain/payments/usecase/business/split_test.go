package business

import (
	"errors"
	"testing"

	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
)

func TestSplit(t *testing.T) {
	t.Run("StandardPlatformFee", func(t *testing.T) {
		split, err := Split(1000, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if split.PlatformFee != 120 {
			t.Errorf("expected platform fee 120, got %d", split.PlatformFee)
		}
		if split.CreatorAmount != 880 {
			t.Errorf("expected creator amount 880, got %d", split.CreatorAmount)
		}
		if split.Total != 1000 {
			t.Errorf("expected total 1000, got %d", split.Total)
		}
	})

	t.Run("ZeroGross", func(t *testing.T) {
		split, err := Split(0, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if split.PlatformFee != 0 || split.CreatorAmount != 0 || split.Total != 0 {
			t.Errorf("expected all-zero split, got %+v", split)
		}
	})

	t.Run("NegativeGrossRejected", func(t *testing.T) {
		_, err := Split(-1, 12)
		if !errors.Is(err, payerrors.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("FeePercentOutOfRangeRejected", func(t *testing.T) {
		if _, err := Split(1000, -1); !errors.Is(err, payerrors.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount for negative percent, got %v", err)
		}
		if _, err := Split(1000, 101); !errors.Is(err, payerrors.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount for percent above 100, got %v", err)
		}
	})

	t.Run("RoundingStillSumsToGross", func(t *testing.T) {
		// 999 * 12% = 119.88, rounds to 120; creator gets the remainder
		split, err := Split(999, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if split.PlatformFee != 120 {
			t.Errorf("expected platform fee 120, got %d", split.PlatformFee)
		}
		if split.CreatorAmount != 879 {
			t.Errorf("expected creator amount 879, got %d", split.CreatorAmount)
		}
	})

	t.Run("SumInvariantHoldsAcrossRange", func(t *testing.T) {
		for gross := int64(0); gross <= 5000; gross += 7 {
			for pct := int64(0); pct <= 100; pct += 13 {
				split, err := Split(gross, pct)
				if err != nil {
					t.Fatalf("unexpected error at gross=%d pct=%d: %v", gross, pct, err)
				}
				if split.PlatformFee+split.CreatorAmount != split.Total {
					t.Fatalf("sum invariant broken at gross=%d pct=%d: %+v", gross, pct, split)
				}
				if gross > 0 && split.Total != gross {
					t.Fatalf("total mismatch at gross=%d pct=%d: %+v", gross, pct, split)
				}
			}
		}
	})

	t.Run("FullPercentBoundaries", func(t *testing.T) {
		split, _ := Split(1000, 0)
		if split.PlatformFee != 0 || split.CreatorAmount != 1000 {
			t.Errorf("expected all to creator at 0%%, got %+v", split)
		}

		split, _ = Split(1000, 100)
		if split.PlatformFee != 1000 || split.CreatorAmount != 0 {
			t.Errorf("expected all to platform at 100%%, got %+v", split)
		}
	})
}
