package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SearchMedicines 搜索上架药品（公开）。
// 传入 latitude/longitude 时按距离排序并附带预计送达时间。
func (h *Handler) SearchMedicines(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.MedicineListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		Category:   strings.TrimSpace(c.Query("category")),
		ActiveOnly: true,
	}

	var latitude, longitude *float64
	if raw := strings.TrimSpace(c.Query("latitude")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid latitude", nil)
			return
		}
		latitude = &value
	}
	if raw := strings.TrimSpace(c.Query("longitude")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid longitude", nil)
			return
		}
		longitude = &value
	}

	results, total, err := h.MedicineService.Search(filter, latitude, longitude)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to search medicines", err)
		return
	}

	response.SuccessWithPage(c, results, response.BuildPagination(page, pageSize, total))
}

// ListMyMedicines 当前药房的药品列表
func (h *Handler) ListMyMedicines(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	medicines, total, err := h.MedicineService.ListByOwner(userID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to list medicines", err)
		return
	}

	response.SuccessWithPage(c, medicines, response.BuildPagination(page, pageSize, total))
}

// MedicineRequest 创建/更新药品请求
type MedicineRequest struct {
	Name                 string `json:"name" binding:"required"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Price                string `json:"price" binding:"required"`
	Stock                int    `json:"stock"`
	RequiresPrescription bool   `json:"requires_prescription"`
	IsActive             *bool  `json:"is_active"`
}

func (r MedicineRequest) toInput() (service.CreateMedicineInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil || price.IsNegative() {
		return service.CreateMedicineInput{}, errors.New("invalid price")
	}
	return service.CreateMedicineInput{
		Name:                 r.Name,
		Description:          r.Description,
		Category:             r.Category,
		Price:                price,
		Stock:                r.Stock,
		RequiresPrescription: r.RequiresPrescription,
	}, nil
}

// CreateMedicine 创建药品
func (h *Handler) CreateMedicine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	medicine, err := h.MedicineService.Create(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrPharmacyNotFound) {
			respondError(c, response.CodeNotFound, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create medicine", err)
		return
	}

	response.Created(c, medicine)
}

// UpdateMedicine 更新药品
func (h *Handler) UpdateMedicine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	medicineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	medicine, err := h.MedicineService.Update(userID, medicineID, input, req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPharmacyNotFound),
			errors.Is(err, service.ErrMedicineNotFound):
			respondError(c, response.CodeNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrMedicineWrongPharmacy):
			respondError(c, response.CodeForbidden, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "failed to update medicine", err)
		}
		return
	}

	response.Success(c, medicine)
}

// DeleteMedicine 下架并删除药品
func (h *Handler) DeleteMedicine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	medicineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.MedicineService.Delete(userID, medicineID); err != nil {
		switch {
		case errors.Is(err, service.ErrPharmacyNotFound),
			errors.Is(err, service.ErrMedicineNotFound):
			respondError(c, response.CodeNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrMedicineWrongPharmacy):
			respondError(c, response.CodeForbidden, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "failed to delete medicine", err)
		}
		return
	}

	response.SuccessWithMsg(c, "medicine deleted")
}
