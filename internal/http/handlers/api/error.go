package api

import (
	"errors"

	handlershared "github.com/healer-next/internal/http/handlers/shared"
	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: service.ErrForbidden.Error()},
	{target: service.ErrPharmacyNotFound, code: response.CodeNotFound, msg: service.ErrPharmacyNotFound.Error()},
	{target: service.ErrDriverNotFound, code: response.CodeNotFound, msg: service.ErrDriverNotFound.Error()},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderEmptyItems, code: response.CodeBadRequest, msg: service.ErrOrderEmptyItems.Error()},
	{target: service.ErrOrderInvalidQuantity, code: response.CodeBadRequest, msg: service.ErrOrderInvalidQuantity.Error()},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: service.ErrPaymentMethodInvalid.Error()},
	{target: service.ErrPharmacyNotFound, code: response.CodeNotFound, msg: service.ErrPharmacyNotFound.Error()},
	{target: service.ErrPharmacyInactive, code: response.CodeBadRequest, msg: service.ErrPharmacyInactive.Error()},
	{target: service.ErrMedicineNotFound, code: response.CodeBadRequest, msg: service.ErrMedicineNotFound.Error()},
	{target: service.ErrMedicineInactive, code: response.CodeBadRequest, msg: service.ErrMedicineInactive.Error()},
	{target: service.ErrMedicineWrongPharmacy, code: response.CodeBadRequest, msg: service.ErrMedicineWrongPharmacy.Error()},
	{target: service.ErrMedicineOutOfStock, code: response.CodeConflict, msg: service.ErrMedicineOutOfStock.Error()},
	{target: service.ErrCODDistanceExceeded, code: response.CodeBadRequest, msg: service.ErrCODDistanceExceeded.Error()},
	{target: service.ErrInsufficientPoints, code: response.CodeConflict, msg: service.ErrInsufficientPoints.Error()},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "customer not found"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, msg: service.ErrOrderStatusInvalid.Error()},
	{target: service.ErrOrderTerminal, code: response.CodeConflict, msg: service.ErrOrderTerminal.Error()},
	{target: service.ErrOrderAlreadyAssigned, code: response.CodeConflict, msg: service.ErrOrderAlreadyAssigned.Error()},
	{target: service.ErrOrderAlreadyDelivered, code: response.CodeConflict, msg: service.ErrOrderAlreadyDelivered.Error()},
	{target: service.ErrOrderNotAssignedToYou, code: response.CodeForbidden, msg: service.ErrOrderNotAssignedToYou.Error()},
	{target: service.ErrDriverUnavailable, code: response.CodeConflict, msg: service.ErrDriverUnavailable.Error()},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotDelivered, code: response.CodeConflict, msg: service.ErrOrderNotDelivered.Error()},
	{target: service.ErrReviewExists, code: response.CodeConflict, msg: service.ErrReviewExists.Error()},
	{target: service.ErrReviewRatingInvalid, code: response.CodeBadRequest, msg: service.ErrReviewRatingInvalid.Error()},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrOrderTerminal, code: response.CodeConflict, msg: service.ErrOrderTerminal.Error()},
	{target: service.ErrPaymentNotRequired, code: response.CodeBadRequest, msg: service.ErrPaymentNotRequired.Error()},
	{target: service.ErrPaymentAlreadyPaid, code: response.CodeConflict, msg: service.ErrPaymentAlreadyPaid.Error()},
	{target: service.ErrPaymentVerifyFailed, code: response.CodeBadRequest, msg: service.ErrPaymentVerifyFailed.Error()},
	{target: service.ErrPaymentGatewayFailure, code: response.CodeBadGateway, msg: service.ErrPaymentGatewayFailure.Error()},
}

var driverProfileErrorRules = []mappedHandlerError{
	{target: service.ErrDriverNotFound, code: response.CodeNotFound, msg: service.ErrDriverNotFound.Error()},
	{target: service.ErrDriverExists, code: response.CodeConflict, msg: service.ErrDriverExists.Error()},
	{target: service.ErrInvalidRole, code: response.CodeForbidden, msg: service.ErrInvalidRole.Error()},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "user not found"},
}
