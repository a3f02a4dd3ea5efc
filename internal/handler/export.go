package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_country", "trip_city",
	"trip_start_date", "trip_end_date",
	"destination_name", "destination_type", "address",
	"visit_date", "priority_level", "completed",
}

// exportRowJSON is the JSON shape of one export row.
type exportRowJSON struct {
	TripID          string `json:"trip_id"`
	TripTitle       string `json:"trip_title"`
	TripCountry     string `json:"trip_country,omitempty"`
	TripCity        string `json:"trip_city,omitempty"`
	TripStartDate   string `json:"trip_start_date"`
	TripEndDate     string `json:"trip_end_date"`
	DestinationName string `json:"destination_name,omitempty"`
	DestinationType string `json:"destination_type,omitempty"`
	Address         string `json:"address,omitempty"`
	VisitDate       string `json:"visit_date,omitempty"`
	PriorityLevel   int    `json:"priority_level,omitempty"`
	Completed       bool   `json:"completed"`
}

// GetExport handles GET /export. It returns the caller's full itinerary as a
// flat table: one row per destination, trip fields repeated, and
// destination-less trips contributing a single row. ?format=csv switches the
// body from JSON to a CSV attachment.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), ident.SubjectID)
	if err != nil {
		respondDomainError(w, r, err, "export failed")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}

	out := make([]exportRowJSON, len(rows))
	for i, row := range rows {
		out[i] = exportRowJSON{
			TripID:          row.TripID,
			TripTitle:       row.TripTitle,
			TripCountry:     row.TripCountry,
			TripCity:        row.TripCity,
			TripStartDate:   row.TripStartDate,
			TripEndDate:     row.TripEndDate,
			DestinationName: row.DestinationName,
			DestinationType: row.DestinationType,
			Address:         row.Address,
			VisitDate:       row.VisitDate,
			PriorityLevel:   row.PriorityLevel,
			Completed:       row.Completed,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSVExport encodes the rows as CSV, buffering so Content-Length can be
// set and a mid-encode failure never truncates a 200 response.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// Writes to a bytes.Buffer cannot fail; errors surface on Flush, and a
	// flush failure here would mean out of memory.
	cw.Write(csvHeaders)
	for _, r := range rows {
		cw.Write([]string{
			r.TripID,
			r.TripTitle,
			r.TripCountry,
			r.TripCity,
			r.TripStartDate,
			r.TripEndDate,
			r.DestinationName,
			r.DestinationType,
			r.Address,
			r.VisitDate,
			strconv.Itoa(r.PriorityLevel),
			strconv.FormatBool(r.Completed),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wayfarer-export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
