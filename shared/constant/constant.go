package constant

const (
	RequestParamWeekKey = "weekKey"
	RequestParamID      = "id"
	RequestParamDate    = "date"
)

const (
	FieldCreatedAt = "created_at"
	FieldCreatedBy = "created_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
)

const (
	// DateOnlyFormat is the wire format for dayDate values.
	DateOnlyFormat = "2006-01-02"
	// HourFormat renders a whole hour as a zero-padded HH:00 label.
	HourFormat = "%02d:00"
)

const (
	OtelServiceScopeName = "service"
	OtelStoreScopeName   = "store"
	OtelHandlerScopeName = "handler"

	OtelWeekKeyAttribute  = "booking.week_key"
	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderContentType  = "Content-Type"
	RequestHeaderAllow        = "Allow"
	RequestHeaderUserAgent    = "User-Agent"
	RequestHeaderForwardedFor = "X-Forwarded-For"
	RequestHeaderRealIP       = "X-Real-IP"

	HeaderRateLimit          = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

const (
	AllowedBookingMethods = "GET, POST, DELETE"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
