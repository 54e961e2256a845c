package handler

import (
	"net/http"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/messaging"
	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/notify"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const reportSubmittedMessage = "Report submitted successfully and FSSAI has been notified via email"

// ReportRequest is the body of POST /fssai/report
type ReportRequest struct {
	OrderID      string         `json:"orderId"`
	VendorID     string         `json:"vendorId"`
	SupplierID   string         `json:"supplierId"`
	VendorName   string         `json:"vendorName"`
	SupplierName string         `json:"supplierName"`
	ProductName  string         `json:"productName"`
	IssueType    string         `json:"issueType"`
	Description  string         `json:"description"`
	Severity     model.Severity `json:"severity"`
}

func (r *ReportRequest) complete() bool {
	for _, v := range []string{r.OrderID, r.VendorID, r.SupplierID, r.ProductName, r.IssueType, r.Description, string(r.Severity)} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// SubmitReport files a food-safety report and notifies FSSAI by mail. A
// failed mail is logged and does not fail the submission.
func (h *Handler) SubmitReport(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid report request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	if !req.complete() {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}
	if !req.Severity.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid severity level")
	}

	now := h.now()
	report := model.FSSAIReport{
		ID:           model.NewID("fssai"),
		ReportNumber: model.NewReportNumber(now),
		OrderID:      req.OrderID,
		VendorID:     req.VendorID,
		SupplierID:   req.SupplierID,
		VendorName:   req.VendorName,
		SupplierName: req.SupplierName,
		ProductName:  req.ProductName,
		IssueType:    req.IssueType,
		Description:  req.Description,
		Severity:     req.Severity,
		Status:       model.ReportSubmitted,
		CreatedAt:    now,
	}
	h.fillPartyNames(c, &report)

	if err := h.store.CreateReport(ctx, &report); err != nil {
		return internalError(c, "Failed to store report", err)
	}
	prometheus.FSSAIReportsCounter.WithLabelValues(string(report.Severity)).Inc()

	log = log.With(zap.String("report_number", report.ReportNumber))
	if messageID, err := h.mailer.Send(ctx, notify.NewReportNotice(h.mail.FSSAIRecipient, report)); err != nil {
		log.Error("Email sending failed", zap.Error(err))
		prometheus.MailFailuresCounter.Inc()
	} else {
		log.Info("FSSAI notified", zap.String("message_id", messageID))
	}

	h.publish(ctx, log, h.topics.ReportTopic, report.ID, messaging.FSSAIReportSubmitted{
		ReportID:     report.ID,
		ReportNumber: report.ReportNumber,
		OrderID:      report.OrderID,
		VendorID:     report.VendorID,
		SupplierID:   report.SupplierID,
		Severity:     report.Severity,
		SubmittedAt:  report.CreatedAt,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"report":  report,
		"message": reportSubmittedMessage,
	})
}

// fillPartyNames uses the directory for names the reporter left out
func (h *Handler) fillPartyNames(c echo.Context, r *model.FSSAIReport) {
	ctx := c.Request().Context()
	if r.VendorName == "" {
		if u, err := h.store.GetUser(ctx, r.VendorID); err == nil {
			r.VendorName = u.DisplayName()
		}
	}
	if r.SupplierName == "" {
		if u, err := h.store.GetUser(ctx, r.SupplierID); err == nil {
			r.SupplierName = u.DisplayName()
		}
	}
}

// ListReportsByUser returns the reports a vendor has filed
func (h *Handler) ListReportsByUser(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return fail(c, http.StatusBadRequest, "User ID is required")
	}

	reports, err := h.store.ListReports(c.Request().Context(), store.ReportFilter{VendorID: userID})
	if err != nil {
		return internalError(c, "Failed to list reports", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reports": reports})
}

// ListMyReports returns reports filed by the calling vendor, or filed
// against the calling supplier.
func (h *Handler) ListMyReports(c echo.Context) error {
	filter := store.ReportFilter{VendorID: middleware.UserIDOf(c)}
	if middleware.RoleOf(c) == model.RoleSupplier {
		filter = store.ReportFilter{SupplierID: middleware.UserIDOf(c)}
	}

	reports, err := h.store.ListReports(c.Request().Context(), filter)
	if err != nil {
		return internalError(c, "Failed to list reports", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reports": reports})
}

// UpdateReportStatus moves a report through review
func (h *Handler) UpdateReportStatus(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid status update", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}

	report, err := h.store.GetReport(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, "Report", err)
	}
	userID := middleware.UserIDOf(c)
	if report.VendorID != userID && report.SupplierID != userID {
		return fail(c, http.StatusNotFound, "Report not found")
	}

	from := report.Status
	if err := report.TransitionTo(model.ReportStatus(req.Status)); err != nil {
		return fail(c, http.StatusConflict, "Report cannot move from "+string(from)+" to "+req.Status)
	}

	if err := h.store.UpdateReport(ctx, report); err != nil {
		return storeError(c, "Report", err)
	}

	log.Info("Report status updated",
		zap.String("report_id", report.ID),
		zap.String("from", string(from)),
		zap.String("to", string(report.Status)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "report": report})
}
