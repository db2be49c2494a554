package http

import (
	"net/http"

	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/predict"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// MaternalRiskHandler serves POST /v1/predict/maternal-risk.
type MaternalRiskHandler struct {
	Model   *predict.Model
	Metrics *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Maternal health risk
//	@Description	Classifies maternal vitals as low, medium or high risk. Requires 'predict' scope.
//	@Tags			Predict
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		heysdk.MaternalRiskRequest	true	"Vitals"
//	@Success		200		{object}	heysdk.PredictionResponse	"label 0 low, 1 medium, 2 high"
//	@Failure		400		{object}	heysdk.APIError				"Malformed body"
//	@Failure		401		{object}	heysdk.APIError				"Invalid or missing access token"
//	@Failure		403		{object}	heysdk.APIError				"Missing predict scope"
//	@Failure		503		{object}	heysdk.APIError				"Model not configured"
//	@Router			/v1/predict/maternal-risk [post].
func (h *MaternalRiskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req heysdk.MaternalRiskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		heysdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	classify(w, r, h.Model, h.Metrics, req.Vector())
}

// FetalHealthHandler serves POST /v1/predict/fetal-health.
type FetalHealthHandler struct {
	Model   *predict.Model
	Metrics *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Fetal health
//	@Description	Classifies cardiotocography readings as normal, suspect or pathological. Requires 'predict' scope.
//	@Tags			Predict
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		heysdk.FetalHealthRequest	true	"CTG readings"
//	@Success		200		{object}	heysdk.PredictionResponse	"label 0 normal, 1 suspect, 2 pathological"
//	@Failure		400		{object}	heysdk.APIError				"Malformed body"
//	@Failure		401		{object}	heysdk.APIError				"Invalid or missing access token"
//	@Failure		403		{object}	heysdk.APIError				"Missing predict scope"
//	@Failure		503		{object}	heysdk.APIError				"Model not configured"
//	@Router			/v1/predict/fetal-health [post].
func (h *FetalHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req heysdk.FetalHealthRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		heysdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	classify(w, r, h.Model, h.Metrics, req.Vector())
}

func classify(w http.ResponseWriter, r *http.Request, m *predict.Model, mt *metrics.Metrics, x []float64) {
	if m == nil {
		heysdk.ErrModelUnavailable.WriteError(w)
		return
	}

	log := slogx.FromContext(r.Context())
	if c, ok := httpx.ClaimsFromContext(r.Context()); ok {
		log = log.With("sid", c.SID)
	}

	res, err := m.Classify(x)
	if err != nil {
		log.Error("prediction failed", "model", m.Name, "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	if mt != nil {
		mt.Predictions.WithLabelValues(m.Name, res.Level).Inc()
	}
	log.Debug("prediction served", "model", m.Name, "level", res.Level)
	httpx.WriteJSON(w, http.StatusOK, heysdk.PredictionResponse{
		Model: m.Name,
		Label: res.Label,
		Level: res.Level,
	})
}
