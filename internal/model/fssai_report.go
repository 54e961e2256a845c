package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Severity grades a food-safety issue
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the four accepted severities
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ReportStatus is the review state of an FSSAI report
type ReportStatus string

const (
	ReportSubmitted   ReportStatus = "submitted"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
	ReportRejected    ReportStatus = "rejected"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportSubmitted:   {ReportUnderReview, ReportRejected},
	ReportUnderReview: {ReportResolved, ReportRejected},
}

// CanTransitionReport reports whether a report may move between statuses
func CanTransitionReport(from, to ReportStatus) bool {
	for _, next := range reportTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FSSAIReport is a food-safety complaint a vendor raises about a supplier's delivery
type FSSAIReport struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(64)"`
	ReportNumber string       `json:"reportNumber" gorm:"type:varchar(20);index"`
	OrderID      string       `json:"orderId" gorm:"type:varchar(64);index"`
	VendorID     string       `json:"vendorId" gorm:"type:varchar(64);index"`
	SupplierID   string       `json:"supplierId" gorm:"type:varchar(64);index"`
	VendorName   string       `json:"vendorName,omitempty" gorm:"type:varchar(100)"`
	SupplierName string       `json:"supplierName,omitempty" gorm:"type:varchar(100)"`
	ProductName  string       `json:"productName" gorm:"type:varchar(100)"`
	IssueType    string       `json:"issueType" gorm:"type:varchar(100)"`
	Description  string       `json:"description" gorm:"type:text"`
	Severity     Severity     `json:"severity" gorm:"type:varchar(10)"`
	Status       ReportStatus `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// TransitionTo moves the report to a new status if the table allows it
func (r *FSSAIReport) TransitionTo(to ReportStatus) error {
	if !CanTransitionReport(r.Status, to) {
		return fmt.Errorf("%w: report %s cannot go from %s to %s", ErrInvalidTransition, r.ID, r.Status, to)
	}
	r.Status = to
	return nil
}

// NewReportNumber derives the public report number from the submission time:
// "FSSAI-" followed by the last eight digits of the Unix millisecond clock.
func NewReportNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) < 8 {
		ms = strings.Repeat("0", 8-len(ms)) + ms
	}
	return "FSSAI-" + ms[len(ms)-8:]
}
