package homewizard

import (
	"errors"
	"fmt"
)

// TransportError означает, что запрос к счётчику не дошёл до ответа:
// отказ соединения, ошибка DNS или истекший таймаут.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError означает, что счётчик ответил не-2xx статусом.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d", e.Code)
}

// DecodeError означает, что тело ответа не удалось разобрать в Snapshot.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorKind возвращает имя вида ошибки клиента для структурированных логов.
func ErrorKind(err error) string {
	var (
		transportErr *TransportError
		statusErr    *StatusError
		decodeErr    *DecodeError
	)

	switch {
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &statusErr):
		return "http-status"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "unknown"
	}
}
