package ai

import (
	"errors"
	"strings"

	"aicodegen-backend/internal/provider"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/internal/utils"
)

const (
	quotaMessage  = "API quota exceeded. Please try again later."
	safetyMessage = "Request blocked by safety filters. Please modify your prompt."
)

// providerError maps a failed AI operation to the client-facing error.
// fallback is used for everything that is neither quota nor safety.
func providerError(err error, fallback string) *utils.APIError {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, provider.ErrQuotaExceeded) || strings.Contains(msg, "quota"):
		return utils.NewTooManyRequestsError(quotaMessage).Wrap(err)
	case errors.Is(err, provider.ErrSafetyBlocked) || strings.Contains(msg, "safety"):
		return utils.NewBadRequestError(safetyMessage).Wrap(err)
	default:
		return utils.NewInternalServerError(fallback).Wrap(err)
	}
}

func incompleteOr(err error, incomplete, fallback string) *utils.APIError {
	if errors.Is(err, services.ErrIncompleteGeneration) {
		return utils.NewInternalServerError(incomplete).Wrap(err)
	}
	return providerError(err, fallback)
}
