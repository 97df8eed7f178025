package constant

const (
	HeaderHasFanClubMember = "hasFanClubMember"
	HeaderSubject          = "Subject"
)

const (
	ConsumerPayment         = "payment-processor"
	ConsumerSeatInventory   = "seat-inventory-updater"
	ConsumerFanReward       = "fan-reward-processor"
	ConsumerNotification    = "notification-dispatcher"
	ConsumerNotificationLog = "notification-logger"
)
