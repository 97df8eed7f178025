package model

// NotificationDelivery is one rendered notification handed to the notification log.
type NotificationDelivery struct {
	Subject    Optional[string]
	Attributes map[string]string
	Message    string
}
