package api

import (
	"errors"
	"strings"

	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPharmacies 药房列表（公开）
func (h *Handler) ListPharmacies(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.PharmacyListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		State:      strings.TrimSpace(c.Query("state")),
		ActiveOnly: true,
	}

	pharmacies, total, err := h.PharmacyService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list pharmacies", err)
		return
	}

	response.SuccessWithPage(c, pharmacies, response.BuildPagination(page, pageSize, total))
}

// GetPharmacy 药房详情（公开）
func (h *Handler) GetPharmacy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pharmacy, err := h.PharmacyService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load pharmacy", err)
		return
	}

	response.Success(c, pharmacy)
}

// ListPharmacyMedicines 某药房的上架药品（公开）
func (h *Handler) ListPharmacyMedicines(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.PharmacyService.GetByID(id); err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load pharmacy", err)
		return
	}

	page, pageSize := parsePageQuery(c)
	filter := repository.MedicineListFilter{
		Page:       page,
		PageSize:   pageSize,
		PharmacyID: id,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		Category:   strings.TrimSpace(c.Query("category")),
		ActiveOnly: true,
	}

	medicines, total, err := h.MedicineService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list medicines", err)
		return
	}

	response.SuccessWithPage(c, medicines, response.BuildPagination(page, pageSize, total))
}

// GetMyPharmacy 当前账号的药房
func (h *Handler) GetMyPharmacy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	pharmacy, err := h.PharmacyService.GetByOwner(userID)
	if err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load pharmacy", err)
		return
	}

	response.Success(c, pharmacy)
}

// CreatePharmacyRequest 登记药房请求
type CreatePharmacyRequest struct {
	Name          string  `json:"name" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	State         string  `json:"state" binding:"required"`
	Latitude      float64 `json:"latitude" binding:"required"`
	Longitude     float64 `json:"longitude" binding:"required"`
	Phone         string  `json:"phone"`
	LicenseNumber string  `json:"license_number"`
}

// CreatePharmacy 登记药房
func (h *Handler) CreatePharmacy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	pharmacy, err := h.PharmacyService.Create(service.CreatePharmacyInput{
		OwnerID:       userID,
		Name:          req.Name,
		Address:       req.Address,
		State:         req.State,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrPharmacyExists) {
			respondError(c, response.CodeConflict, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create pharmacy", err)
		return
	}

	response.Created(c, pharmacy)
}

// UpdatePharmacyRequest 更新药房请求，nil 字段表示不修改
type UpdatePharmacyRequest struct {
	Name          *string  `json:"name"`
	Address       *string  `json:"address"`
	State         *string  `json:"state"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Phone         *string  `json:"phone"`
	LicenseNumber *string  `json:"license_number"`
	IsActive      *bool    `json:"is_active"`
}

// UpdatePharmacy 更新药房资料
func (h *Handler) UpdatePharmacy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	pharmacy, err := h.PharmacyService.Update(userID, service.UpdatePharmacyInput{
		Name:          req.Name,
		Address:       req.Address,
		State:         req.State,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		IsActive:      req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update pharmacy", err)
		return
	}

	response.Success(c, pharmacy)
}
