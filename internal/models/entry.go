// Package models defines data structures for fincatch
package models

import (
	"fmt"
	"time"
)

// AssetType classifies a portfolio entry and selects its pricing path.
type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeGold  AssetType = "gold"
	AssetTypeBond  AssetType = "bond"
)

// Valid returns true for a known asset type.
func (a AssetType) Valid() bool {
	switch a {
	case AssetTypeStock, AssetTypeGold, AssetTypeBond:
		return true
	}
	return false
}

// GoldUnit is the weight unit a gold entry's quantity and purchase price are
// denominated in. Tael (37.5 g) is the base unit for valuation math.
type GoldUnit string

const (
	GoldUnitGram  GoldUnit = "gram"
	GoldUnitMace  GoldUnit = "mace"
	GoldUnitTael  GoldUnit = "tael"
	GoldUnitOunce GoldUnit = "ounce"
	GoldUnitKg    GoldUnit = "kg"
)

// Valid returns true for a known gold unit.
func (u GoldUnit) Valid() bool {
	switch u {
	case GoldUnitGram, GoldUnitMace, GoldUnitTael, GoldUnitOunce, GoldUnitKg:
		return true
	}
	return false
}

// CouponFrequency is how often a bond pays its coupon.
type CouponFrequency string

const (
	CouponAnnual     CouponFrequency = "annual"
	CouponSemiannual CouponFrequency = "semiannual"
	CouponQuarterly  CouponFrequency = "quarterly"
	CouponMonthly    CouponFrequency = "monthly"
)

// PeriodsPerYear returns the number of coupon periods per year.
// Unknown frequencies default to annual.
func (f CouponFrequency) PeriodsPerYear() int {
	switch f {
	case CouponSemiannual:
		return 2
	case CouponQuarterly:
		return 4
	case CouponMonthly:
		return 12
	default:
		return 1
	}
}

// PortfolioEntry is a single holding: a stock position, a gold holding, or a
// bond. Unit semantics of Quantity and PurchasePrice depend on AssetType
// (shares for stock, GoldUnit weight for gold, bond count for bonds).
type PortfolioEntry struct {
	ID          string    `json:"id" badgerhold:"key"`
	PortfolioID string    `json:"portfolio_id" badgerhold:"index"`
	AssetType   AssetType `json:"asset_type"`

	Symbol          string   `json:"symbol"` // ticker, gold price series ID, or bond ISIN
	Quantity        float64  `json:"quantity"`
	PurchasePrice   float64  `json:"purchase_price"` // per unit, in Currency
	Currency        string   `json:"currency"`
	PurchaseDate    int64    `json:"purchase_date"` // Unix seconds
	TransactionFees float64  `json:"transaction_fees,omitempty"`
	Source          string   `json:"source,omitempty"` // pricing provider identifier
	Notes           string   `json:"notes,omitempty"`
	Tags            []string `json:"tags,omitempty"`

	// Gold-specific
	Unit     GoldUnit `json:"unit,omitempty"` // defaults to tael for computation
	GoldType string   `json:"gold_type,omitempty"`

	// Bond-specific
	FaceValue       float64         `json:"face_value,omitempty"`
	CouponRate      float64         `json:"coupon_rate,omitempty"` // annual %, simple
	MaturityDate    int64           `json:"maturity_date,omitempty"`
	CouponFrequency CouponFrequency `json:"coupon_frequency,omitempty"`
	// YTM present => "calculated" pricing mode; CurrentMarketPrice is only
	// meaningful when YTM is absent ("direct" mode).
	YTM                *float64 `json:"ytm,omitempty"`
	CurrentMarketPrice *float64 `json:"current_market_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveGoldUnit returns the unit used for valuation math, defaulting to
// tael when unset.
func (e *PortfolioEntry) EffectiveGoldUnit() GoldUnit {
	if e.Unit == "" {
		return GoldUnitTael
	}
	return e.Unit
}

// HasBondCalculationInputs reports whether the entry carries everything the
// present-value formula needs.
func (e *PortfolioEntry) HasBondCalculationInputs() bool {
	return e.FaceValue > 0 && e.CouponRate >= 0 && e.YTM != nil &&
		e.MaturityDate > 0 && e.CouponFrequency != ""
}

// Validate checks the entry for structural problems before persisting.
func (e *PortfolioEntry) Validate() error {
	if !e.AssetType.Valid() {
		return fmt.Errorf("invalid asset type %q", e.AssetType)
	}
	if e.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", e.Quantity)
	}
	if e.PurchasePrice <= 0 {
		return fmt.Errorf("purchase price must be positive, got %v", e.PurchasePrice)
	}
	if e.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if e.AssetType == AssetTypeGold && e.Unit != "" && !e.Unit.Valid() {
		return fmt.Errorf("invalid gold unit %q", e.Unit)
	}
	return nil
}

// BondCouponPayment is a realized cash distribution tied to one bond entry.
// Payments are summed without deduplication by date.
type BondCouponPayment struct {
	ID          string  `json:"id" badgerhold:"key"`
	EntryID     string  `json:"entry_id" badgerhold:"index"`
	PaymentDate int64   `json:"payment_date"` // Unix seconds
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Notes       string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the payment for structural problems before persisting.
func (p *BondCouponPayment) Validate() error {
	if p.EntryID == "" {
		return fmt.Errorf("entry_id is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", p.Amount)
	}
	if p.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	return nil
}
