package auth

import "errors"

var (
	// ErrInvalidToken возвращается для подделанного, просроченного или некорректного токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrHashPassword возвращается, если bcrypt не смог построить хэш
	ErrHashPassword = errors.New("auth: failed to hash password")

	// ErrSignToken возвращается при ошибке подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)
