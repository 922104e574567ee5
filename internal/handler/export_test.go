package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTrips(t *testing.T) {
	svc := &mockExportServicer{
		writeCSV: func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w,
				"fecha_inicio,hora_inicio,hora_fin,importe,pago,tipo\n"+
					"14/06/2025,09:15:00,09:40:30,12.5,CASH,TAXI\n")
			return err
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/export/trips.csv", nil)
	rec := httptest.NewRecorder()
	newRouter(serverOpts{exports: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trips.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "fecha_inicio,hora_inicio")
	assert.Contains(t, rec.Body.String(), "14/06/2025")
}

func TestExportTrips_MidStreamFailure(t *testing.T) {
	// A failure after bytes have gone out must not corrupt the download
	// with a JSON error body; the partial CSV is all the client gets.
	svc := &mockExportServicer{
		writeCSV: func(_ context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, "fecha_inicio,hora_inicio,hora_fin,importe,pago,tipo\n"); err != nil {
				return err
			}
			return errors.New("repo.TripRepo.ListAll: connection reset")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/export/trips.csv", nil)
	rec := httptest.NewRecorder()
	newRouter(serverOpts{exports: svc}).ServeHTTP(rec, req)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "fecha_inicio,hora_inicio,hora_fin,importe,pago,tipo\n", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "internal_error")
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newRouter(serverOpts{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
