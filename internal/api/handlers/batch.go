package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hydrabatch/hydrabatch/internal/api/middleware"
	"github.com/hydrabatch/hydrabatch/internal/api/models"
	"github.com/hydrabatch/hydrabatch/internal/model"
)

// ApplyBatchChange godoc
// @Summary Submit a batch of DNS record changes
// @Description Validates, discovers zones for, and queues a batch of DNS record changes
// @Tags batch
// @Accept json
// @Produce json
// @Param batch body models.BatchChangeInputRequest true "Batch change request"
// @Success 202 {object} models.BatchChangeResponse
// @Failure 400 {object} models.InvalidBatchChangeResponsesBody
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/batchrecordchanges [post]
func (h *Handler) ApplyBatchChange(c *gin.Context) {
	var req models.BatchChangeInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	principal := middleware.GetPrincipal(c)
	input := toBatchChangeInput(req)

	batch, invalid, err := h.service.ApplyBatchChange(c.Request.Context(), principal, input)
	if err != nil {
		h.writeBatchError(c, err)
		return
	}
	if invalid != nil {
		c.JSON(http.StatusBadRequest, toInvalidBatchChangeResponsesBody(*invalid))
		return
	}

	c.JSON(http.StatusAccepted, toBatchChangeResponse(*batch))
}

// GetBatchChange godoc
// @Summary Get a batch change
// @Description Returns a previously submitted batch change by id
// @Tags batch
// @Produce json
// @Param id path string true "Batch change id"
// @Success 200 {object} models.BatchChangeResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/batchrecordchanges/{id} [get]
func (h *Handler) GetBatchChange(c *gin.Context) {
	id := c.Param("id")
	principal := middleware.GetPrincipal(c)

	batch, err := h.service.GetBatchChange(c.Request.Context(), principal, id)
	if err != nil {
		h.writeBatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBatchChangeResponse(batch))
}

// ListBatchChangeSummaries godoc
// @Summary List the caller's batch change summaries
// @Description Returns a page of the caller's batch change summaries, newest first
// @Tags batch
// @Produce json
// @Param startFrom query int false "Pagination offset"
// @Param maxItems query int false "Page size"
// @Success 200 {object} models.BatchChangeSummaryListResponse
// @Security ApiKeyAuth
// @Router /zones/batchrecordchanges [get]
func (h *Handler) ListBatchChangeSummaries(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	startFrom, _ := strconv.Atoi(c.Query("startFrom"))
	maxItems, _ := strconv.Atoi(c.Query("maxItems"))

	list, err := h.service.ListBatchChangeSummaries(c.Request.Context(), principal, startFrom, maxItems)
	if err != nil {
		h.writeBatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBatchChangeSummaryListResponse(list))
}

func (h *Handler) writeBatchError(c *gin.Context, err error) {
	var batchErr model.BatchError
	if errors.As(err, &batchErr) {
		switch batchErr.Code {
		case "BatchChangeNotFound":
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: batchErr.Message})
		case "UserNotAuthorizedToView":
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: batchErr.Message})
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: batchErr.Message})
		}
		return
	}
	if h.logger != nil {
		h.logger.Error("batch service error", "error", err)
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
}

func toBatchChangeInput(req models.BatchChangeInputRequest) model.BatchChangeInput {
	changes := make([]model.ChangeInput, 0, len(req.Changes))
	for _, ch := range req.Changes {
		changes = append(changes, model.ChangeInput{
			InputName:  ch.InputName,
			Type:       model.RecordType(ch.Type),
			TTL:        ch.TTL,
			ChangeType: model.ChangeType(ch.ChangeType),
			Record:     toRecordData(ch.Record),
		})
	}
	return model.BatchChangeInput{Comments: req.Comments, Changes: changes}
}

func toRecordData(r models.RecordDataWire) model.RecordData {
	return model.RecordData{
		Address:  r.Address,
		CName:    r.CName,
		Text:     r.Text,
		PTRDName: r.PTRDName,
		MXPref:   r.MXPref,
		MXExch:   r.MXExch,
		NSDName:  r.NSDName,
	}
}

func toRecordDataWire(r model.RecordData) models.RecordDataWire {
	return models.RecordDataWire{
		Address:  r.Address,
		CName:    r.CName,
		Text:     r.Text,
		PTRDName: r.PTRDName,
		MXPref:   r.MXPref,
		MXExch:   r.MXExch,
		NSDName:  r.NSDName,
	}
}

func toBatchChangeResponse(b model.BatchChange) models.BatchChangeResponse {
	changes := make([]models.SingleChangeResponse, 0, len(b.Changes))
	for _, ch := range b.Changes {
		changes = append(changes, models.SingleChangeResponse{
			InputName:  ch.Input.InputName,
			ChangeType: string(ch.Input.ChangeType),
			Type:       string(ch.Input.Type),
			TTL:        ch.Input.TTL,
			Record:     toRecordDataWire(ch.Input.Record),
			ZoneID:     ch.ZoneID,
			ZoneName:   ch.ZoneName,
			RecordName: ch.RelativeName,
			Status:     string(ch.Status),
		})
	}
	return models.BatchChangeResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		UserName:         b.UserName,
		Comments:         b.Comments,
		CreatedTimestamp: b.CreatedTimestamp,
		Status:           string(b.Status),
		Changes:          changes,
	}
}

func toInvalidBatchChangeResponsesBody(r model.InvalidBatchChangeResponses) models.InvalidBatchChangeResponsesBody {
	changes := make([]models.InvalidChangeResponseItem, 0, len(r.Changes))
	for _, ch := range r.Changes {
		changes = append(changes, models.InvalidChangeResponseItem{
			ChangeType: string(ch.Input.ChangeType),
			InputName:  ch.Input.InputName,
			Type:       string(ch.Input.Type),
			TTL:        ch.Input.TTL,
			Record:     toRecordDataWire(ch.Input.Record),
			Errors:     ch.Errors,
		})
	}
	return models.InvalidBatchChangeResponsesBody{Comments: r.Comments, Changes: changes}
}

func toBatchChangeSummaryListResponse(l model.BatchChangeSummaryList) models.BatchChangeSummaryListResponse {
	summaries := make([]models.BatchChangeSummaryResponse, 0, len(l.Summaries))
	for _, s := range l.Summaries {
		summaries = append(summaries, models.BatchChangeSummaryResponse{
			ID:               s.ID,
			UserID:           s.UserID,
			UserName:         s.UserName,
			Comments:         s.Comments,
			CreatedTimestamp: s.CreatedTimestamp,
			Status:           string(s.Status),
			TotalChanges:     s.TotalChanges,
		})
	}
	return models.BatchChangeSummaryListResponse{
		Summaries: summaries,
		StartFrom: l.StartFrom,
		NextID:    l.NextID,
		MaxItems:  l.MaxItems,
	}
}
