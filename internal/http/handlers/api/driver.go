package api

import (
	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterDriverRequest 登记骑手档案请求
type RegisterDriverRequest struct {
	VehicleNumber string `json:"vehicle_number" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	State         string `json:"state" binding:"required"`
}

// RegisterDriverProfile 登记骑手档案
func (h *Handler) RegisterDriverProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	driver, err := h.DriverService.RegisterProfile(service.RegisterDriverInput{
		UserID:        userID,
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
		State:         req.State,
	})
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to register driver profile")
		return
	}

	response.Created(c, driver)
}

// GetDriverProfile 骑手档案
func (h *Handler) GetDriverProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	driver, err := h.DriverService.GetProfile(userID)
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to load driver profile")
		return
	}

	response.Success(c, driver)
}

// UpdateDriverProfileRequest 更新骑手档案请求，nil 字段表示不修改
type UpdateDriverProfileRequest struct {
	VehicleNumber *string `json:"vehicle_number"`
	LicenseNumber *string `json:"license_number"`
	State         *string `json:"state"`
}

// UpdateDriverProfile 更新骑手档案
func (h *Handler) UpdateDriverProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateDriverProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	driver, err := h.DriverService.UpdateProfile(userID, service.UpdateProfileInput{
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
		State:         req.State,
	})
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to update driver profile")
		return
	}

	response.Success(c, driver)
}

// SetDriverAvailabilityRequest 设置接单状态请求
type SetDriverAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetDriverAvailability 设置是否接单
func (h *Handler) SetDriverAvailability(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SetDriverAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	driver, err := h.DriverService.SetAvailability(userID, *req.Available)
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to update availability")
		return
	}

	response.Success(c, driver)
}

// UpdateDriverLocationRequest 上报位置请求
type UpdateDriverLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// UpdateDriverLocation 上报当前位置
func (h *Handler) UpdateDriverLocation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateDriverLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.DriverService.UpdateLocation(userID, req.Latitude, req.Longitude); err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to update location")
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// GetDriverEarnings 收入汇总与明细
func (h *Handler) GetDriverEarnings(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	summary, err := h.DriverService.Earnings(userID, repository.DriverEarningListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to load earnings")
		return
	}

	response.Success(c, summary)
}

// GetMyDriverReviews 当前骑手收到的评价
func (h *Handler) GetMyDriverReviews(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	reviews, total, err := h.DriverService.Reviews(userID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to load reviews")
		return
	}

	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}

// ListDriverReviews 某骑手的评价列表（公开）
func (h *Handler) ListDriverReviews(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	reviews, total, err := h.DriverService.ReviewsOf(driverID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, driverProfileErrorRules, response.CodeInternal, "failed to load reviews")
		return
	}

	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}
