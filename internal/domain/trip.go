// Package domain contains the core data types for the taxi logbook API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// PaymentType is how the rider paid for a trip.
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	PaymentCard PaymentType = "CARD"
	PaymentApp  PaymentType = "APP"
)

// Valid reports whether p is one of the known payment types.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentApp:
		return true
	}
	return false
}

// TripSource is the dispatch channel a trip came from: a street hail (TAXI)
// or one of the ride-hailing platforms.
type TripSource string

const (
	SourceTaxi    TripSource = "TAXI"
	SourceUber    TripSource = "UBER"
	SourceCabify  TripSource = "CABIFY"
	SourceFreeNow TripSource = "FREE_NOW"
	SourceCustom  TripSource = "CUSTOM"
)

// Valid reports whether s is one of the known trip sources.
func (s TripSource) Valid() bool {
	switch s {
	case SourceTaxi, SourceUber, SourceCabify, SourceFreeNow, SourceCustom:
		return true
	}
	return false
}

// Trip represents one fare from pickup to drop-off.
//
// A trip with a nil EndTime is "active" (in progress); Amount, ChargedAmount,
// CashTip, and Payment stay nil until the trip is finished. At most one trip
// is active at any time — enforced by a partial unique index on trips.
type Trip struct {
	ID        int64      `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// Amount is the service fare charged to the rider. Tips are never
	// blended into it.
	Amount *float64 `json:"amount,omitempty"`

	// ChargedAmount is the amount actually settled when Payment is CARD.
	// It may exceed Amount; the excess is a card tip. Nil means "same as
	// Amount".
	ChargedAmount *float64 `json:"chargedAmount,omitempty"`

	// CashTip is a tip recorded separately for cash trips. Nil means zero.
	CashTip *float64 `json:"cashTip,omitempty"`

	Payment *PaymentType `json:"payment,omitempty"`
	Source  TripSource   `json:"source"`

	// CustomSource is the free-text platform label when Source is CUSTOM.
	CustomSource *string `json:"customSource,omitempty"`

	// WorkdayID references the workday the trip belongs to: the one open
	// when the trip started, or the one a manual trip's start falls into.
	WorkdayID *int64 `json:"workdayId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the trip is still in progress.
func (t Trip) Active() bool {
	return t.EndTime == nil
}

// FareAmount returns the fare, or 0 while the trip is active.
func (t Trip) FareAmount() float64 {
	if t.Amount == nil {
		return 0
	}
	return *t.Amount
}

// SettledAmount returns the amount actually collected: ChargedAmount when
// recorded, otherwise the fare.
func (t Trip) SettledAmount() float64 {
	if t.ChargedAmount != nil {
		return *t.ChargedAmount
	}
	return t.FareAmount()
}
