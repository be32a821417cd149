package api

import (
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"feedback-analysis/internal/api/middleware"
	"feedback-analysis/internal/classifier"
	"feedback-analysis/internal/models"
)

type Handler struct {
	classifier *classifier.Classifier
	logger     *zerolog.Logger
}

func NewHandler(classifier *classifier.Classifier, logger *zerolog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		logger:     logger,
	}
}

// POST /api/v1/classify
// Body: ClassifyRequest
// Returns: ClassifyResponse
func (h *Handler) Classify(req *restful.Request, resp *restful.Response) {
	var classifyRequest ClassifyRequest
	if err := req.ReadEntity(&classifyRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	strategy, err := parseStrategy(classifyRequest.Strategy)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("strategy", string(strategy)).
		Int("content_length", len(classifyRequest.Content)).
		Msg("Start classification")

	ctx := req.Request.Context()
	result := h.classifier.Classify(ctx, classifyRequest.Content, strategy)

	h.logger.Info().
		Str("label", result.Label).
		Str("outcome", string(result.Outcome)).
		Dur("duration", result.Duration).
		Msg("Classification complete")

	resp.WriteHeaderAndEntity(http.StatusOK, ClassifyResponse{
		Label:   result.Label,
		Outcome: result.Outcome,
	})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func parseStrategy(s string) (models.Strategy, error) {
	switch s {
	case "", string(models.StrategyAll):
		return models.StrategyAll, nil
	case string(models.StrategyFirst):
		return models.StrategyFirst, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (expected first or all)", s)
	}
}
