package constant

const (
	LogFieldErr      = "err"
	LogFieldPayload  = "payload"
	LogFieldResponse = "response"
	LogFieldTraceId  = "trace_id"
	LogFieldOrderId  = "order_id"
	LogFieldSubject  = "subject"
	LogFieldConsumer = "consumer"
)
