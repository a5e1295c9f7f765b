package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestCouponFrequency_PeriodsPerYear(t *testing.T) {
	assert.Equal(t, 1, CouponAnnual.PeriodsPerYear())
	assert.Equal(t, 2, CouponSemiannual.PeriodsPerYear())
	assert.Equal(t, 4, CouponQuarterly.PeriodsPerYear())
	assert.Equal(t, 12, CouponMonthly.PeriodsPerYear())
	assert.Equal(t, 1, CouponFrequency("weekly").PeriodsPerYear(), "unknown frequencies default to annual")
}

func TestEffectiveGoldUnit(t *testing.T) {
	e := &PortfolioEntry{AssetType: AssetTypeGold}
	assert.Equal(t, GoldUnitTael, e.EffectiveGoldUnit(), "unset unit defaults to tael")

	e.Unit = GoldUnitMace
	assert.Equal(t, GoldUnitMace, e.EffectiveGoldUnit())
}

func TestHasBondCalculationInputs(t *testing.T) {
	full := PortfolioEntry{
		FaceValue:       1_000_000,
		CouponRate:      8,
		YTM:             ptr(6),
		MaturityDate:    1893456000,
		CouponFrequency: CouponSemiannual,
	}
	assert.True(t, full.HasBondCalculationInputs())

	noYTM := full
	noYTM.YTM = nil
	assert.False(t, noYTM.HasBondCalculationInputs())

	noFace := full
	noFace.FaceValue = 0
	assert.False(t, noFace.HasBondCalculationInputs())

	noMaturity := full
	noMaturity.MaturityDate = 0
	assert.False(t, noMaturity.HasBondCalculationInputs())

	noFrequency := full
	noFrequency.CouponFrequency = ""
	assert.False(t, noFrequency.HasBondCalculationInputs())

	zeroCoupon := full
	zeroCoupon.CouponRate = 0
	assert.True(t, zeroCoupon.HasBondCalculationInputs(), "zero coupon is a valid calculation input")
}

func TestPortfolioEntry_Validate(t *testing.T) {
	valid := PortfolioEntry{
		AssetType:     AssetTypeStock,
		Symbol:        "VNM",
		Quantity:      10,
		PurchasePrice: 100,
		Currency:      "VND",
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.AssetType = "option"
	assert.Error(t, badType.Validate())

	noSymbol := valid
	noSymbol.Symbol = ""
	assert.Error(t, noSymbol.Validate())

	zeroQty := valid
	zeroQty.Quantity = 0
	assert.Error(t, zeroQty.Validate())

	negPrice := valid
	negPrice.PurchasePrice = -1
	assert.Error(t, negPrice.Validate())

	noCurrency := valid
	noCurrency.Currency = ""
	assert.Error(t, noCurrency.Validate())

	badUnit := valid
	badUnit.AssetType = AssetTypeGold
	badUnit.Unit = "pound"
	assert.Error(t, badUnit.Validate())

	goldNoUnit := valid
	goldNoUnit.AssetType = AssetTypeGold
	assert.NoError(t, goldNoUnit.Validate(), "unit is optional for gold")
}

func TestBondCouponPayment_Validate(t *testing.T) {
	valid := BondCouponPayment{EntryID: "b1", Amount: 40_000, Currency: "VND"}
	assert.NoError(t, valid.Validate())

	noEntry := valid
	noEntry.EntryID = ""
	assert.Error(t, noEntry.Validate())

	zeroAmount := valid
	zeroAmount.Amount = 0
	assert.Error(t, zeroAmount.Validate())

	noCurrency := valid
	noCurrency.Currency = ""
	assert.Error(t, noCurrency.Validate())
}
