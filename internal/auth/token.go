package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Claims полезная нагрузка токена
type Claims struct {
	Role         string `json:"role"`
	HospitalID   int64  `json:"hospital_id"`
	Name         string `json:"name"`
	HospitalName string `json:"hospital_name"`
	jwt.RegisteredClaims
}

// Token выданный токен доступа
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Session разобранный и проверенный токен
type Session struct {
	Actor     domain.Actor
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer выпускает и проверяет HS256 токены
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создаёт выпускающего токены
func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue выпускает токен для пользователя
func (i *TokenIssuer) Issue(actor domain.Actor) (*Token, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	tokenID := uuid.NewString()

	claims := Claims{
		Role:         string(actor.Role),
		HospitalID:   actor.HospitalID,
		Name:         actor.Name,
		HospitalName: actor.HospitalName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(actor.ID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignToken, err)
	}

	return &Token{Value: signed, ID: tokenID, ExpiresAt: expiresAt}, nil
}

// Parse проверяет подпись, срок и обязательные поля токена
func (i *TokenIssuer) Parse(tokenString string) (*Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	actorID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || actorID <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	if claims.HospitalID <= 0 || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing hospital or token id", ErrInvalidToken)
	}

	return &Session{
		Actor: domain.Actor{
			ID:           actorID,
			Role:         role,
			HospitalID:   claims.HospitalID,
			Name:         claims.Name,
			HospitalName: claims.HospitalName,
		},
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
