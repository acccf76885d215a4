package handler

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderlust/internal/service"
)

// ExportTrip handles GET /trips/{tripId}/export: the single-trip share file.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripId")
	data, err := s.export.ExportTrip(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeAttachment(w, "application/json", "trip-"+id+".json", data)
}

// ExportAll handles GET /export: the full backup.
// Use ?format=csv to receive the flat per-item table; default is JSON.
func (s *Server) ExportAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		var buf bytes.Buffer
		if err := s.export.ExportCSV(r.Context(), &buf); err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeAttachment(w, "text/csv; charset=utf-8", "wanderlust.csv", buf.Bytes())
		return
	}

	data, err := s.export.ExportAll(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeAttachment(w, "application/json", "wanderlust-backup.json", data)
}

// Import handles POST /import. The body is a file produced by either export.
// A full backup replaces every trip and needs ?confirm=true (409 otherwise);
// a single trip is added as a new one and answered with 201.
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.rejectBody(w, r, err)
		return
	}
	res, err := s.export.Import(r.Context(), data, confirmed(r))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	status := http.StatusOK
	if res.Mode == service.ImportAppend {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
