package model

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the admin dashboard report.
type Summary struct {
	Orders            OrderTotals       `json:"orders"`
	Users             UserTotals        `json:"users"`
	DailyOrders       []SalesBucket     `json:"dailyOrders"`
	MonthlyOrders     []SalesBucket     `json:"monthlyOrders"`
	YearlyOrders      []SalesBucket     `json:"yearlyOrders"`
	ProductCategories []CategoryCount   `json:"productCategories"`
	TopProducts       []TopProduct      `json:"topProducts"`
	LowStockProducts  []LowStockProduct `json:"lowStockProducts"`
	RecentOrders      []RecentOrder     `json:"recentOrders"`
	CompletedOrders   int               `json:"completedOrders"`
	PaidOrders        int               `json:"paidOrders"`
	DiscountUsers     int               `json:"discountUsers"`
}

// OrderTotals aggregates every order.
type OrderTotals struct {
	NumOrders  int     `json:"numOrders"`
	TotalSales float64 `json:"totalSales"`
}

// UserTotals counts registered users.
type UserTotals struct {
	NumUsers int `json:"numUsers"`
}

// SalesBucket is one point of a date-bucketed sales series.
// Date is "YYYY-MM-DD", "YYYY-MM" or "YYYY" depending on the granularity.
type SalesBucket struct {
	Date   string  `json:"_id"`
	Orders int     `json:"orders"`
	Sales  float64 `json:"sales"`
}

// CategoryCount is the number of products in a category.
type CategoryCount struct {
	Category string `json:"_id"`
	Count    int    `json:"count"`
}

// TopProduct is a best-selling product by quantity.
type TopProduct struct {
	ProductID    uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	QuantitySold int       `json:"quantitySold"`
	Revenue      float64   `json:"revenue"`
}

// LowStockProduct is a product at or below the restocking threshold.
type LowStockProduct struct {
	ProductID    uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	CountInStock int       `json:"countInStock"`
}

// RecentOrder is a row of the most recent orders table.
type RecentOrder struct {
	ID          uuid.UUID `json:"_id"`
	UserName    string    `json:"userName"`
	TotalPrice  float64   `json:"totalPrice"`
	IsPaid      bool      `json:"isPaid"`
	IsDelivered bool      `json:"isDelivered"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SalesGranularity selects the date bucket size of a sales series.
type SalesGranularity string

const (
	GranularityDay   SalesGranularity = "day"
	GranularityMonth SalesGranularity = "month"
	GranularityYear  SalesGranularity = "year"
)
