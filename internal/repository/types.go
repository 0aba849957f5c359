package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	PharmacyID  uint
	DriverID    uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MedicineListFilter 查询药品列表的过滤条件
type MedicineListFilter struct {
	Page       int
	PageSize   int
	PharmacyID uint
	Keyword    string
	Category   string
	ActiveOnly bool
}

// PharmacyListFilter 查询药房列表的过滤条件
type PharmacyListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	State      string
	ActiveOnly bool
}

// DriverEarningListFilter 查询骑手收入记录的过滤条件
type DriverEarningListFilter struct {
	Page        int
	PageSize    int
	DriverID    uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
