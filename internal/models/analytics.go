package models

// MonthlyRevenue выручка и число платящих участников за месяц.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Year    string  `json:"year"`
	Revenue float64 `json:"revenue"`
	Members int     `json:"members"`
}

// YearlyRevenue выручка и число платящих участников за год.
type YearlyRevenue struct {
	Year    string  `json:"year"`
	Revenue float64 `json:"revenue"`
	Members int     `json:"members"`
}

// Analytics данные для дашборда выручки.
type Analytics struct {
	MonthlyRevenueData []MonthlyRevenue `json:"monthlyRevenueData"`
	YearlyData         []YearlyRevenue  `json:"yearlyData"`
}
