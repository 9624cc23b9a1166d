package analysis

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	"bizchess/internal/httpresponse"
	"bizchess/internal/report"
	analysisuc "bizchess/internal/usecase/analysis"
	"bizchess/internal/utils"
)

type AnalysisHandler struct {
	cfg        bootstrap.Config
	log        *zap.SugaredLogger
	analysisUC *analysisuc.AnalysisUseCase
}

func NewAnalysisHandler(cfg bootstrap.Config, log *zap.SugaredLogger, analysisUC *analysisuc.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:        cfg,
		log:        log,
		analysisUC: analysisUC,
	}
}

func (h *AnalysisHandler) Routes(r chi.Router) {
	r.Post("/board/initialize", h.HandleInitializeBoard)
	r.Post("/analysis/bestMove", h.HandleBestMove)
	r.Post("/analysis/batch", h.HandleBatch)
	r.Get("/analysis/{id}", h.HandleGetAnalysis)
	r.Get("/analysis/{id}/report", h.HandleReport)
	r.Get("/sessions/{id}/history", h.HandleSessionHistory)
}

// @Summary Build the opening board for a market
// @Tags board
// @Accept json
// @Produce json
// @Param market body board.MarketData true "market data"
// @Success 200 {object} board.Snapshot
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /board/initialize [post]
func (h *AnalysisHandler) HandleInitializeBoard(w http.ResponseWriter, r *http.Request) {
	var market board.MarketData
	if err := utils.DecodeJSONRequest(r, &market); err != nil {
		h.log.Warnf("initialize board: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	snapshot, err := h.analysisUC.InitializeBoard(r.Context(), market)
	if err != nil {
		h.log.Errorf("initialize board: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, snapshot)
}

// @Summary Search the best COMPANY move
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analysis.Request true "position and depth"
// @Success 200 {object} analysis.Analysis
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 422 {object} httpresponse.ErrorResponse
// @Router /analysis/bestMove [post]
func (h *AnalysisHandler) HandleBestMove(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Warnf("best move: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	result, err := h.analysisUC.AnalyzeBestMove(r.Context(), req)
	if err != nil {
		h.log.Errorf("best move: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

// @Summary Run several independent searches
// @Tags analysis
// @Accept json
// @Produce json
// @Param batch body analysis.BatchRequest true "requests"
// @Success 200 {array} analysis.BatchItem
// @Router /analysis/batch [post]
func (h *AnalysisHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req analysis.BatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Warnf("batch: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	items, err := h.analysisUC.AnalyzeBatch(r.Context(), req.Requests)
	if err != nil {
		h.log.Errorf("batch: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, items)
}

// @Summary Fetch a stored analysis
// @Tags analysis
// @Produce json
// @Param id path string true "analysis id"
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /analysis/{id} [get]
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := h.analysisUC.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.log.Warnf("get analysis: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, a)
}

// @Summary Download an analysis as PDF
// @Tags analysis
// @Produce application/pdf
// @Param id path string true "analysis id"
// @Success 200 {file} file
// @Router /analysis/{id}/report [get]
//
// HandleReport renders the stored analysis as a PDF. The document is built
// in memory so a rendering failure can still be answered with JSON.
func (h *AnalysisHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.analysisUC.GetAnalysis(r.Context(), id)
	if err != nil {
		h.log.Warnf("report: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteAnalysisPDF(&buf, a); err != nil {
		h.log.Errorf("report %s: %v", id, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis-`+id+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// @Summary List the analyses of a session, newest first
// @Tags analysis
// @Produce json
// @Param id path string true "session id"
// @Param page query int false "page number starting at 1"
// @Success 200 {object} analysis.HistoryPage
// @Router /sessions/{id}/history [get]
func (h *AnalysisHandler) HandleSessionHistory(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "page must be a number"})
			return
		}
		page = parsed
	}

	history, err := h.analysisUC.SessionHistory(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		h.log.Warnf("session history: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, history)
}
