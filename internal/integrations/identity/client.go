// Package identity клиент Firebase Auth
// Аутентификация делегирована внешнему identity provider'у: сервис только
// проверяет ID-токены и извлекает стабильный идентификатор пользователя
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// User данные пользователя из проверенного токена
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент проверки ID-токенов Firebase
type Client struct {
	auth *auth.Client
	log  Logger
}

// NewClient инициализирует Firebase App и Auth клиент
// credentialsFile может быть пустым - тогда используются Application
// Default Credentials
func NewClient(ctx context.Context, projectID, credentialsFile string, log Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase app: %v", ErrInternal, err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase auth: %v", ErrInternal, err)
	}

	return &Client{auth: authClient, log: log}, nil
}

// VerifyToken проверяет ID-токен и возвращает данные пользователя
func (c *Client) VerifyToken(ctx context.Context, idToken string) (*User, error) {
	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		c.log.Warn("identity: token verification failed: %v", err)
		return nil, ErrNotAuthenticated
	}

	user := &User{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.DisplayName = name
	}

	return user, nil
}
