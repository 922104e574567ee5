package domain

// Goals holds the driver's savings targets. A single record exists; saving
// overwrites it wholesale. A missing record reads as all-zero targets.
type Goals struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}
