package business

import (
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
)

// PaymentSplit is the exact-cent division of one gross charge
type PaymentSplit struct {
	PlatformFee   int64
	CreatorAmount int64
	Total         int64
}

// Split divides a gross amount (integer minor units) between platform and
// creator. The platform fee is rounded half away from zero; the creator
// amount is always gross minus fee, so the sum invariant holds by
// construction rather than by rounding luck.
func Split(gross, platformFeePercent int64) (PaymentSplit, error) {
	if gross < 0 || platformFeePercent < 0 || platformFeePercent > 100 {
		return PaymentSplit{}, payerrors.ErrInvalidAmount
	}

	if gross == 0 {
		return PaymentSplit{}, nil
	}

	fee := (gross*platformFeePercent + 50) / 100

	return PaymentSplit{
		PlatformFee:   fee,
		CreatorAmount: gross - fee,
		Total:         gross,
	}, nil
}
