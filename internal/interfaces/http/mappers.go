package http

import (
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func toLedgerEntryDTO(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		ChangeType:     e.ChangeType,
		Reason:         e.Reason,
		QuantityBefore: e.QuantityBefore,
		QuantityChange: e.QuantityChange,
		QuantityAfter:  e.QuantityAfter,
		ReferenceID:    e.ReferenceID,
		UserID:         e.UserID,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
	}
}

func toLedgerEntryDTOs(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	return out
}

func toAlertDTO(a *entity.LowStockAlert) dto.LowStockAlertResponse {
	return dto.LowStockAlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		CurrentStock: a.CurrentStock,
		Threshold:    a.Threshold,
		Acknowledged: a.Acknowledged,
		CreatedAt:    a.CreatedAt,
	}
}

func toAlertDTOs(alerts []*entity.LowStockAlert) []dto.LowStockAlertResponse {
	out := make([]dto.LowStockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertDTO(a))
	}
	return out
}

func toAssessmentDTO(a *entity.QAAssessment) dto.QAAssessmentResponse {
	return dto.QAAssessmentResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		SellerID:        a.SellerID,
		Vendor:          a.Vendor,
		Status:          a.Status,
		LogisticsMethod: a.LogisticsMethod,
		RejectionReason: a.RejectionReason,
		RejectionStage:  a.RejectionStage,
		SubmittedAt:     a.SubmittedAt,
		ApprovedAt:      a.ApprovedAt,
		VerifiedAt:      a.VerifiedAt,
		RejectedAt:      a.RejectedAt,
		RevisionAt:      a.RevisionRequestedAt,
	}
}

func toAssessmentDTOs(list []*entity.QAAssessment) []dto.QAAssessmentResponse {
	out := make([]dto.QAAssessmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssessmentDTO(a))
	}
	return out
}

func toOrderDTO(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Status:    o.Status,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
