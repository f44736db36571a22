package auth

import (
	"errors"
	"fmt"

	"github.com/me/evento/pkg/api"
)

var (
	// ErrTokenRejected indicates the token store refused a freshly
	// issued token (typically clock skew producing an already-expired
	// expiry). Treated as a login failure.
	ErrTokenRejected = errors.New("issued token rejected by token store")

	// ErrInvalidToken indicates a stale or expired token was discovered
	// mid-session; both stores have already been cleared.
	ErrInvalidToken = errors.New("session token is no longer valid")

	// ErrLoginSuperseded indicates a login resolution arrived after a
	// newer attempt had started; its result was discarded.
	ErrLoginSuperseded = errors.New("login superseded by a newer attempt")
)

// ProfileFetchError indicates the backend was reachable but the profile
// could not be retrieved. It carries the underlying response error.
type ProfileFetchError struct {
	Err error
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("profile fetch failed: %v", e.Err)
}

func (e *ProfileFetchError) Unwrap() error {
	return e.Err
}

// PostLoginProfileError indicates the profile fetch directly after a
// successful token exchange failed. Login is all-or-nothing: the token
// has been rolled back by the time this error is returned.
type PostLoginProfileError struct {
	Err error
}

func (e *PostLoginProfileError) Error() string {
	return fmt.Sprintf("login rolled back, profile fetch failed: %v", e.Err)
}

func (e *PostLoginProfileError) Unwrap() error {
	return e.Err
}

// The backend answers failed logins with this exact string; the UI has
// always shown it in Russian.
const (
	incorrectCredentialsDetail = "Incorrect email or password"
	incorrectCredentialsRU     = "Неверный email или пароль"
)

// UserMessage renders an auth error as a user-facing message for a form
// or alert. Server-provided details are surfaced verbatim, except the
// standard bad-credentials message, which is localized.
func UserMessage(err error) string {
	var ce *api.CredentialsError
	if errors.As(err, &ce) {
		if ce.Detail == incorrectCredentialsDetail {
			return incorrectCredentialsRU
		}
		if ce.Detail != "" {
			return ce.Detail
		}
		return "Ошибка при входе"
	}

	var ple *PostLoginProfileError
	if errors.As(err, &ple) {
		return "Не удалось получить данные пользователя после входа"
	}

	if errors.Is(err, ErrInvalidToken) || errors.Is(err, api.ErrNoToken) {
		return "Сессия истекла, войдите снова"
	}

	var se *api.StatusError
	if errors.As(err, &se) && se.Message() != "" {
		return se.Message()
	}

	if err != nil {
		return err.Error()
	}
	return ""
}
