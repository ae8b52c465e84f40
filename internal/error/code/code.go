package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: 服务不可用.
	StatusServiceUnavailable = 503
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 住户相关错误码 (101xxx).
const (
	// ErrHouseholdNotFound - 404: 住户不存在.
	ErrHouseholdNotFound int = iota + 101000
	// ErrHouseholdAlreadyExist - 400: 住户已存在.
	ErrHouseholdAlreadyExist
	// ErrHouseholdInvalid - 400: 住户信息不完整.
	ErrHouseholdInvalid
)

// 缴费相关错误码 (102xxx).
const (
	// ErrPaymentNotFound - 404: 缴费记录不存在.
	ErrPaymentNotFound int = iota + 102000
	// ErrInvalidAmount - 400: 金额格式无效.
	ErrInvalidAmount
	// ErrInvalidDate - 400: 日期格式无效.
	ErrInvalidDate
	// ErrInvalidStatus - 400: 缴费状态无效.
	ErrInvalidStatus
	// ErrInvalidPeriod - 400: 账期无效.
	ErrInvalidPeriod
)

// 导入与提取相关错误码 (103xxx).
const (
	// ErrUploadInvalid - 400: 上传文件无效.
	ErrUploadInvalid int = iota + 103000
	// ErrChatParseFailed - 400: 聊天记录解析失败.
	ErrChatParseFailed
	// ErrOCRUnavailable - 503: OCR引擎不可用.
	ErrOCRUnavailable
	// ErrOCRTimeout - 503: OCR处理超时.
	ErrOCRTimeout
	// ErrOCRFailed - 500: OCR处理失败.
	ErrOCRFailed
)

// 认证相关错误码 (104xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 104000
	// ErrPasswordIncorrect - 401: 密码错误.
	ErrPasswordIncorrect
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
