package apierrors

import (
	attributionProcessor "affiliate-ledger/internal/attribution/processor"
	authProcessor "affiliate-ledger/internal/auth/processor"
	ledgerProcessor "affiliate-ledger/internal/ledger/processor"
	linksProcessor "affiliate-ledger/internal/links/processor"
	"affiliate-ledger/internal/store"
	"errors"
)

// MapError converts processor and store errors to APIErrors. An error that is
// already an APIError is returned as is; anything unknown becomes a sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// auth
	case errors.Is(err, authProcessor.ErrExpiredToken),
		errors.Is(err, authProcessor.ErrInvalidJWTToken),
		errors.Is(err, authProcessor.ErrParseJWTToken):
		return Unauthorized("Invalid or expired token")
	case errors.Is(err, authProcessor.ErrInvalidRole):
		return BadRequest(CodeInvalidInput, "Invalid role")

	// links
	case errors.Is(err, linksProcessor.ErrLinkNotFound):
		return NotFound(CodeLinkNotFound, "Affiliate link not found")
	case errors.Is(err, linksProcessor.ErrInvalidTargetURL):
		return BadRequest(CodeInvalidTargetURL, "Target URL must be an absolute http or https URL")
	case errors.Is(err, linksProcessor.ErrInvalidCodeLength):
		return BadRequest(CodeInvalidInput, "Code length must be between 4 and 32")
	case errors.Is(err, linksProcessor.ErrForbidden):
		return Forbidden("You do not have access to this link")
	case errors.Is(err, linksProcessor.ErrExhaustedAttempts):
		return ServiceUnavailable(CodeCodeAllocation, "Could not allocate an affiliate code. Please try again.", err)

	// attribution
	case errors.Is(err, attributionProcessor.ErrInvalidAmount):
		return BadRequest(CodeInvalidAmount, "Order amount must not be negative")
	case errors.Is(err, attributionProcessor.ErrInvalidOrderID):
		return BadRequest(CodeInvalidOrderID, "External order id is required")
	case errors.Is(err, attributionProcessor.ErrAlreadyAttributed):
		return Conflict(CodeAlreadyAttributed, "Order already attributed")

	// ledger
	case errors.Is(err, ledgerProcessor.ErrReferralNotFound):
		return NotFound(CodeReferralNotFound, "Referral not found")
	case errors.Is(err, ledgerProcessor.ErrWithdrawNotFound):
		return NotFound(CodeWithdrawNotFound, "Withdraw request not found")
	case errors.Is(err, ledgerProcessor.ErrPartnerNotFound):
		return NotFound(CodePartnerNotFound, "Partner profile not found")
	case errors.Is(err, ledgerProcessor.ErrInvalidStatus):
		return BadRequest(CodeInvalidStatus, "Unknown status")
	case errors.Is(err, ledgerProcessor.ErrInvalidTransition):
		return Conflict(CodeInvalidTransition, "Status transition not allowed")
	case errors.Is(err, ledgerProcessor.ErrConcurrentUpdate):
		return Conflict(CodeConcurrentUpdate, "Record was modified by another request. Reload and retry.")
	case errors.Is(err, ledgerProcessor.ErrInsufficientBalance):
		return Unprocessable(CodeInsufficientBalance, "Amount exceeds available balance")
	case errors.Is(err, ledgerProcessor.ErrInvalidAmount):
		return BadRequest(CodeInvalidAmount, "Invalid withdraw amount")
	case errors.Is(err, ledgerProcessor.ErrBankDetailsRequired):
		return BadRequest(CodeBankDetailsRequired, "Bank details are required")
	case errors.Is(err, ledgerProcessor.ErrInvalidRate):
		return BadRequest(CodeInvalidRate, "Commission rate must be between 0 and 1")
	case errors.Is(err, ledgerProcessor.ErrInvalidProfile):
		return BadRequest(CodeInvalidProfile, "Display name and email are required")
	case errors.Is(err, ledgerProcessor.ErrForbidden):
		return Forbidden("You are not allowed to perform this action")

	// store
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")
	case errors.Is(err, store.ErrUnavailable):
		return ServiceUnavailable(CodeDatabaseUnavailable, "Service is temporarily unavailable. Please try again later.", err)

	default:
		return InternalError(err)
	}
}
