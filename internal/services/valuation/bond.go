package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fincatch/fincatch/internal/models"
)

// ErrInvalidBondParameters is returned when bond inputs or the computed price
// are not finite numbers.
var ErrInvalidBondParameters = errors.New("invalid bond parameters")

const (
	secondsPerYear = 365 * 86400
	secondsPerDay  = 86400
)

// BondPresentValue computes a bond's current market value by discounting the
// remaining coupons and the face value at the periodic yield.
//
// The number of remaining periods is the ceiling of time-to-maturity times
// periods-per-year, so a bond one day past a coupon date still carries a full
// remaining period. Full periods discount at (1+y)^t; the final period
// instead discounts at (1 + y × daysToMaturity/365), which smooths the
// valuation as maturity approaches. A matured bond is worth its face value.
// No negative-price clamping is applied.
func BondPresentValue(faceValue, couponRatePct, ytmPct float64, maturityDate int64, frequency models.CouponFrequency, now time.Time) (float64, error) {
	for _, v := range []float64{faceValue, couponRatePct, ytmPct} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: non-finite input", ErrInvalidBondParameters)
		}
	}

	secondsToMaturity := maturityDate - now.Unix()
	timeToMaturityYears := float64(secondsToMaturity) / secondsPerYear
	if timeToMaturityYears <= 0 {
		return faceValue, nil
	}

	periodsPerYear := float64(frequency.PeriodsPerYear())
	periodicCoupon := faceValue * (couponRatePct / 100) / periodsPerYear
	periodicYTM := (ytmPct / 100) / periodsPerYear
	remainingPeriods := int(math.Ceil(timeToMaturityYears * periodsPerYear))

	daysUntilMaturity := math.Ceil(float64(secondsToMaturity) / secondsPerDay)
	if daysUntilMaturity < 0 {
		daysUntilMaturity = 0
	}
	progressRatio := daysUntilMaturity / 365

	value := 0.0
	for t := remainingPeriods; t >= 1; t-- {
		if t > 1 {
			value += periodicCoupon / math.Pow(1+periodicYTM, float64(t))
		} else {
			value += periodicCoupon / (1 + periodicYTM*progressRatio)
		}
	}

	if remainingPeriods > 1 {
		value += faceValue / math.Pow(1+periodicYTM, float64(remainingPeriods))
	} else {
		value += faceValue / (1 + periodicYTM*progressRatio)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: non-finite present value", ErrInvalidBondParameters)
	}

	return value, nil
}
