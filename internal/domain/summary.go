package domain

// Summary aggregates the trips of a workday or a calendar-date range.
//
// The headline figures count the service fare only; tips are reported in the
// separate Propina fields and are never folded back into Total, Efectivo, or
// the per-platform totals. The one deliberate exception: Tarjeta counts the
// full settled card amount (ChargedAmount), so a card tip baked into the
// settlement is visible there.
type Summary struct {
	// Total is the sum of fares over all finished trips.
	Total float64 `json:"total"`

	// Per-platform fare totals.
	Taxi    float64 `json:"taxi"`
	Uber    float64 `json:"uber"`
	Cabify  float64 `json:"cabify"`
	FreeNow float64 `json:"freeNow"`

	// Efectivo is the fare total of cash trips (money retained by the driver).
	Efectivo float64 `json:"efectivo"`

	// Tarjeta is the settled total of card trips (ChargedAmount, falling
	// back to the fare when no explicit charge was recorded).
	Tarjeta float64 `json:"tarjeta"`

	// App is the fare total of app-paid trips; app payments arrive already
	// net, with no tip concept.
	App float64 `json:"app"`

	// PropinaTarjeta is the card-tip total: max(ChargedAmount-Amount, 0)
	// per card trip.
	PropinaTarjeta float64 `json:"propinaTarjeta"`

	// PropinaEfectivo is the cash-tip total: max(CashTip, 0) per cash trip.
	PropinaEfectivo float64 `json:"propinaEfectivo"`
}

// Accumulate folds one trip into the summary. Active trips contribute
// nothing: every fare-derived field reads 0 until the trip is finished.
func (s *Summary) Accumulate(t Trip) {
	if t.Active() {
		return
	}

	amount := t.FareAmount()
	s.Total += amount

	switch t.Source {
	case SourceTaxi:
		s.Taxi += amount
	case SourceUber:
		s.Uber += amount
	case SourceCabify:
		s.Cabify += amount
	case SourceFreeNow:
		s.FreeNow += amount
	}

	if t.Payment == nil {
		return
	}
	switch *t.Payment {
	case PaymentCash:
		s.Efectivo += amount
		if t.CashTip != nil && *t.CashTip > 0 {
			s.PropinaEfectivo += *t.CashTip
		}
	case PaymentCard:
		settled := t.SettledAmount()
		s.Tarjeta += settled
		if tip := settled - amount; tip > 0 {
			s.PropinaTarjeta += tip
		}
	case PaymentApp:
		s.App += amount
	}
}

// Summarize aggregates a set of trips into a Summary.
func Summarize(trips []Trip) Summary {
	var s Summary
	for _, t := range trips {
		s.Accumulate(t)
	}
	return s
}
