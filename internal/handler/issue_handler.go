package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saralgst/internal/domain"
	"saralgst/internal/service"
)

// IssueHandler handles issue listing and review endpoints.
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// ListByInvoice handles GET /api/v1/invoices/:id/issues
func (h *IssueHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	issues, err := h.issueService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issues)
}

// reviewIssueRequest is the JSON body of an issue review.
type reviewIssueRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// Review handles POST /api/v1/issues/:id/review
func (h *IssueHandler) Review(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	var req reviewIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "status field is required")
		return
	}

	issue, err := h.issueService.Review(c.Request.Context(), issueID, &service.ReviewIssueInput{
		Status:  domain.IssueStatus(req.Status),
		Comment: req.Comment,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issue)
}
