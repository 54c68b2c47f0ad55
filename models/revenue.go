package models

// RevenueSummary is the partner-side revenue report built from
// ClientService line items.
type RevenueSummary struct {
	TotalRevenue  float64         `json:"total_revenue"`
	TotalClients  int64           `json:"total_clients"`
	TotalServices int64           `json:"total_services"`
	ByClient      []ClientRevenue `json:"by_client"`
}

type ClientRevenue struct {
	ClientID     string  `json:"client_id"`
	FullName     string  `json:"full_name"`
	Revenue      float64 `json:"revenue"`
	ServiceCount int64   `json:"service_count"`
}
