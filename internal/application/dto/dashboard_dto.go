package dto

// SellerDashboardResponse contadores del panel del vendedor.
type SellerDashboardResponse struct {
	TotalProducts        int `json:"total_products"`
	ApprovedProducts     int `json:"approved_products"`
	PendingQA            int `json:"pending_qa"`
	UnacknowledgedAlerts int `json:"unacknowledged_alerts"`
	DeductionsToday      int `json:"deductions_today"`
}
