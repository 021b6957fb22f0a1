package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrStaffDisabled      ErrCode = "STAFF_LOGIN_DISABLED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrEmptyMessage   ErrCode = "EMPTY_MESSAGE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Admission files ───────────────────────────────────────────────
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrTooManyFiles    ErrCode = "TOO_MANY_FILES"

	// ─── Upstream ──────────────────────────────────────────────────────
	ErrChatUnavailable ErrCode = "CHAT_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrDatabase ErrCode = "DATABASE_ERROR"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	case ErrStaffDisabled:
		return "Tài khoản cán bộ tuyển sinh chưa được cấu hình."
	case ErrTokenRequired:
		return "Yêu cầu token xác thực."
	case ErrTokenInvalid:
		return "Token xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Token xác thực đã hết hạn."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."
	case ErrEmptyMessage:
		return "Tin nhắn trống"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."

	// ─── Admission files ───────────────────────────────────────────────
	case ErrUnsupportedFile:
		return "Định dạng tệp không được hỗ trợ."
	case ErrFileTooLarge:
		return "Kích thước tệp vượt quá giới hạn."
	case ErrTooManyFiles:
		return "Số lượng tệp vượt quá giới hạn."

	// ─── Upstream ──────────────────────────────────────────────────────
	case ErrChatUnavailable:
		return "Hệ thống đang bận, vui lòng thử lại sau."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrDatabase:
		return "Lỗi lưu Database"
	case ErrInternal:
		return "Lỗi máy chủ nội bộ."
	default:
		return "Đã xảy ra lỗi không xác định."
	}
}
