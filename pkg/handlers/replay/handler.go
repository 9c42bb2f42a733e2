package replay

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/handlers/firehose"
	"github.com/de-tools/log-enricher/pkg/models/api"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxEventSize = 6 << 20 // Lambda synchronous payload limit

// Transformers is the subset of the transformer registry the handler needs.
type Transformers interface {
	Get(variant string) (transform.Transformer, error)
	ListVariants() []string
}

// Handler replays Firehose transformation events against the configured
// transformers.
type Handler struct {
	transformers Transformers
}

func NewHandler(transformers Transformers) *Handler {
	return &Handler{transformers: transformers}
}

func (h *Handler) ListVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.Variants{Variants: h.transformers.ListVariants()})
}

func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	variant := chi.URLParam(r, "variant")
	logger := zerolog.Ctx(ctx).With().Str("variant", variant).Logger()

	transformer, err := h.transformers.Get(variant)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
		return
	}

	var event events.KinesisFirehoseEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventSize)).Decode(&event); err != nil {
		logger.Error().Err(err).Msg("failed to decode firehose event")
		writeJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid firehose event"})
		return
	}

	response := firehose.Invoke(logger.WithContext(ctx), transformer, event)
	writeJSON(w, r, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
