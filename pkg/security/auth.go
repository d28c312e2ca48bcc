package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracker/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialStore is the user persistence the login and registration flow needs.
type CredentialStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	PersistUser(ctx context.Context, user *models.User) error
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *TokenIssuer) GenerateJWT(userID uuid.UUID, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID.String(),
		"username": username,
		"exp":      i.now().Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseJWT validates the token signature and expiry and returns its identity.
func (i *TokenIssuer) ParseJWT(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	rawID, ok := claims["userID"].(string)
	if !ok {
		return nil, fmt.Errorf("userID is not a string")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("userID is not a valid id: %w", err)
	}
	username, _ := claims["username"].(string)

	return &Identity{UserID: userID, Username: username}, nil
}

func AuthenticateUser(ctx context.Context, username, password string, store CredentialStore) (*models.User, error) {
	user, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func RegisterUser(ctx context.Context, req models.CreateUserRequest, store CredentialStore) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := store.PersistUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
