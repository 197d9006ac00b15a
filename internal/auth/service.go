package auth

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/saloes-online/internal/config"
)

const (
	RoleAdmin = "admin"
	TokenTTL  = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// LockedError é devolvido enquanto a conta estiver bloqueada.
type LockedError struct {
	Remaining time.Duration
}

func (e LockedError) Error() string {
	return fmt.Sprintf("account locked for %s", e.Remaining)
}

// Message é o texto mostrado na tela de login.
func (e LockedError) Message() string {
	minutes := int(math.Ceil(e.Remaining.Minutes()))
	return fmt.Sprintf("Conta temporariamente bloqueada. Tente novamente em %d minutos.", minutes)
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Claims struct {
	Username string
	Role     string
}

// Service autentica o único administrador configurado.
type Service struct {
	username string
	hash     []byte
	secret   []byte
	limiter  *Limiter
	now      func() time.Time
}

// NewService usa ADMIN_PASSWORD_HASH quando presente; senão gera o hash de
// ADMIN_PASSWORD na subida.
func NewService(cfg *config.Config) (*Service, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		h, err := HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		hash = []byte(h)
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
	}

	return &Service{
		username: cfg.AdminUsername,
		hash:     hash,
		secret:   []byte(cfg.JWTSecret),
		limiter:  NewLimiter(MaxLoginAttempts, LockoutTime),
		now:      time.Now,
	}, nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *Service) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)

	if remaining, locked := s.limiter.Locked(username); locked {
		return Session{}, LockedError{Remaining: remaining}
	}

	if username != s.username || bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		s.limiter.Record(username, false)
		return Session{}, ErrInvalidCredentials
	}
	s.limiter.Record(username, true)

	expires := s.now().Add(TokenTTL)
	token, err := s.generateToken(username, expires)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		Username:  username,
		Role:      RoleAdmin,
		ExpiresAt: expires,
	}, nil
}

func (s *Service) generateToken(username string, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": RoleAdmin,
		"exp":  expires.Unix(),
		"iat":  s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ParseToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role != RoleAdmin {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Username: sub, Role: role}, nil
}
