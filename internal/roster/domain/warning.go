package domain

// WarningCode identifies a non-fatal condition reported alongside success.
type WarningCode string

const (
	WarningEmailMismatch      WarningCode = "email_mismatch"
	WarningNotificationFailed WarningCode = "notification_failed"
)

// Warning is a soft error: the operation succeeded but the caller should be
// told something.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}
