package constant

const (
	FanClubDiscountMultiplier = 0.90
	FanClubRewardPoints       = 100
)

const (
	PurchaseSuccessMessage = "Purchase processed successfully"
	InternalErrorMessage   = "Internal server error"
)
