package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// TrainingHandler manages training records and guard documents.
type TrainingHandler struct {
	training *services.TrainingService
}

func NewTrainingHandler(training *services.TrainingService) *TrainingHandler {
	return &TrainingHandler{training: training}
}

type addTrainingRecordRequest struct {
	TrainingType string     `json:"training_type" validate:"omitempty,max=100"`
	TrainingName string     `json:"training_name" validate:"omitempty,max=200"`
	CompletedAt  *time.Time `json:"completed_at"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// POST /api/guards/:id/training-records
func (h *TrainingHandler) AddRecord(c *gin.Context) {
	var req addTrainingRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.training.AddRecord(requestContext(c), services.AddTrainingRecordInput{
		GuardID:      c.Param("id"),
		TrainingType: req.TrainingType,
		TrainingName: req.TrainingName,
		CompletedAt:  req.CompletedAt,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// GET /api/guards/:id/training-records
func (h *TrainingHandler) ListRecords(c *gin.Context) {
	records, err := h.training.ListRecords(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// DELETE /api/training-records/:id
func (h *TrainingHandler) DeactivateRecord(c *gin.Context) {
	if err := h.training.DeactivateRecord(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "training record deactivated"})
}

type addDocumentRequest struct {
	DocumentType string     `json:"document_type" validate:"required,max=100"`
	Name         string     `json:"name" validate:"omitempty,max=200"`
	Reference    string     `json:"reference" validate:"omitempty,max=100"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// POST /api/guards/:id/documents
func (h *TrainingHandler) AddDocument(c *gin.Context) {
	var req addDocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	document, err := h.training.AddDocument(requestContext(c), services.AddGuardDocumentInput{
		GuardID:      c.Param("id"),
		DocumentType: req.DocumentType,
		Name:         req.Name,
		Reference:    req.Reference,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, document)
}

// GET /api/guards/:id/documents
func (h *TrainingHandler) ListDocuments(c *gin.Context) {
	documents, err := h.training.ListDocuments(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, documents)
}
