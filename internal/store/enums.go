package store

// Referral record statuses
const (
	ReferralStatusPending  = "pending"
	ReferralStatusApproved = "approved"
	ReferralStatusRejected = "rejected"
	ReferralStatusPaid     = "paid"
)

// Withdraw request statuses
const (
	WithdrawStatusPending    = "pending"
	WithdrawStatusApproved   = "approved"
	WithdrawStatusProcessing = "processing"
	WithdrawStatusRejected   = "rejected"
	WithdrawStatusPaid       = "paid"
)

// ReservedWithdrawStatuses hold money that is no longer available to withdraw.
var ReservedWithdrawStatuses = []string{
	WithdrawStatusPending,
	WithdrawStatusApproved,
	WithdrawStatusProcessing,
}
