package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid authentication token",
	ErrTooManyRequests: "too many requests",

	// 住户相关错误码
	ErrHouseholdNotFound:     "household not found",
	ErrHouseholdAlreadyExist: "household already exists",
	ErrHouseholdInvalid:      "flat number and owner/renter name are required",

	// 缴费相关错误码
	ErrPaymentNotFound: "payment record not found",
	ErrInvalidAmount:   "invalid amount entered, please enter a number",
	ErrInvalidDate:     "invalid payment date, expected YYYY-MM-DD",
	ErrInvalidStatus:   "invalid payment status",
	ErrInvalidPeriod:   "invalid payment period",

	// 导入与提取相关错误码
	ErrUploadInvalid:   "invalid upload file",
	ErrChatParseFailed: "failed to parse chat export",
	ErrOCRUnavailable:  "OCR engine is not available",
	ErrOCRTimeout:      "OCR processing timed out",
	ErrOCRFailed:       "OCR processing failed",

	// 认证相关错误码
	ErrAdminNotFound:     "admin not found",
	ErrPasswordIncorrect: "incorrect username or password",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 住户相关错误码
	ErrHouseholdNotFound:     StatusNotFound,
	ErrHouseholdAlreadyExist: StatusBadRequest,
	ErrHouseholdInvalid:      StatusBadRequest,

	// 缴费相关错误码
	ErrPaymentNotFound: StatusNotFound,
	ErrInvalidAmount:   StatusBadRequest,
	ErrInvalidDate:     StatusBadRequest,
	ErrInvalidStatus:   StatusBadRequest,
	ErrInvalidPeriod:   StatusBadRequest,

	// 导入与提取相关错误码
	ErrUploadInvalid:   StatusBadRequest,
	ErrChatParseFailed: StatusBadRequest,
	ErrOCRUnavailable:  StatusServiceUnavailable,
	ErrOCRTimeout:      StatusServiceUnavailable,
	ErrOCRFailed:       StatusInternalServerError,

	// 认证相关错误码
	ErrAdminNotFound:     StatusNotFound,
	ErrPasswordIncorrect: StatusUnauthorized,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
