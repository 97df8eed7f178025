package constant

const NotificationTemplate = `Dear Fan,

Thank you for your purchase!

Concert: %s
Date: %s
Tickets:
%s
Total Amount: $%.2f

Enjoy the show!

Best regards,
Concert Ticket Team`

const NotificationTicketLine = "- %s Seat: Section %s, Row %s, Seat %s\n"

const (
	DefaultConcertName = "Concert"
	DefaultConcertDate = "Date"
	UnknownValue       = "Unknown"
	NoSubject          = "No Subject"
)

const NotificationLogSeparatorWidth = 60
