package auth

import (
	"errors"
	"testing"

	"github.com/me/evento/pkg/api"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"standard bad credentials localized",
			&api.CredentialsError{Detail: "Incorrect email or password"},
			"Неверный email или пароль",
		},
		{
			"other server detail surfaced verbatim",
			&api.CredentialsError{Detail: "Account locked"},
			"Account locked",
		},
		{
			"empty detail falls back",
			&api.CredentialsError{},
			"Ошибка при входе",
		},
		{
			"post-login profile failure",
			&PostLoginProfileError{Err: errors.New("boom")},
			"Не удалось получить данные пользователя после входа",
		},
		{
			"invalid token",
			ErrInvalidToken,
			"Сессия истекла, войдите снова",
		},
		{
			"no token",
			api.ErrNoToken,
			"Сессия истекла, войдите снова",
		},
		{
			"status error uses server message",
			&api.StatusError{StatusCode: 403, Detail: "Not enough permissions"},
			"Not enough permissions",
		},
		{
			"wrapped credentials error unwraps",
			&PostLoginProfileError{Err: errors.New("x")},
			"Не удалось получить данные пользователя после входа",
		},
		{
			"plain error passes through",
			errors.New("connection refused"),
			"connection refused",
		},
		{
			"nil error",
			nil,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
