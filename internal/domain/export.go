package domain

// ExportRow is a single row of the CSV trip export, already rendered to
// strings. Missing values (open trips, trips without a payment) render as
// empty strings. Column order matches the header the mobile app shipped with:
// fecha_inicio, hora_inicio, hora_fin, importe, pago, tipo.
type ExportRow struct {
	FechaInicio string // start date, "02/01/2006"
	HoraInicio  string // start time, "15:04:05"
	HoraFin     string // end time, empty while the trip is active
	Importe     string // fare, empty while the trip is active
	Pago        string // payment type, empty while the trip is active
	Tipo        string // trip source
}

// ExportHeader is the CSV header row for trip exports.
var ExportHeader = []string{"fecha_inicio", "hora_inicio", "hora_fin", "importe", "pago", "tipo"}
