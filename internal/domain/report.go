package domain

// SalesBucket is one calendar day of settled revenue. Buckets are computed
// fresh on each report request and never persisted.
type SalesBucket struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int     `json:"orderCount"`
}
