package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/metrics"
	"grimm.is/spagen/internal/secret"
)

// RenderResponse is the body of a successful render.
type RenderResponse struct {
	generator.Document
	PSKFingerprint string `json:"pskFingerprint,omitempty"`
}

// SecretResponse is the body of GET /api/secret.
type SecretResponse struct {
	PSK    string `json:"psk"`
	Length int    `json:"length"`
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, generator.DefaultValues())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)

	var v generator.FormValues
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.collector.ObserveFailure(metrics.SourceAPI, "too_large")
			WriteErrorCtx(w, r, http.StatusRequestEntityTooLarge, i18n.MsgInvalidBody, err)
			return
		}
		s.collector.ObserveFailure(metrics.SourceAPI, "bad_json")
		WriteErrorCtx(w, r, http.StatusBadRequest, i18n.MsgInvalidBody, err)
		return
	}

	resp, err := s.render(r, v, metrics.SourceAPI)
	if err != nil {
		var missing *generator.MissingFieldsError
		if errors.As(err, &missing) {
			p := i18n.GetPrinter(r.Context())
			WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:  p.Sprintf(i18n.MsgMissingFields, strings.Join(missing.Fields, ", ")),
				Fields: missing.Fields,
			})
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// render validates and renders v, recording metrics for source.
func (s *Server) render(r *http.Request, v generator.FormValues, source string) (RenderResponse, error) {
	start := time.Now()
	doc, err := generator.Generate(v)
	if err != nil {
		s.collector.ObserveFailure(source, "missing_fields")
		return RenderResponse{}, err
	}
	statements := generator.StatementCount(v)
	s.collector.ObserveRender(source, statements, time.Since(start))

	fp := secret.Fingerprint(v.IPsecPSK)
	s.logger.Debug("rendered configuration",
		"source", source,
		"network_statements", statements,
		"psk_fingerprint", fp,
		"request_id", RequestIDFromContext(r.Context()),
	)
	return RenderResponse{Document: doc, PSKFingerprint: fp}, nil
}

func (s *Server) handleSecret(w http.ResponseWriter, r *http.Request) {
	length := secret.DefaultLength
	if q := r.URL.Query().Get("length"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid length", err.Error())
			return
		}
		length = n
	}

	psk, err := secret.Generate(length)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.registry.SecretsGenerated.Inc()

	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, SecretResponse{PSK: psk, Length: length})
}
