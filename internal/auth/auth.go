// Package auth issues and verifies cashier bearer tokens. The dashboard
// logs a cashier in once per shift; mutating sale routes require the
// token and the cashier id is stamped onto finalized sales.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/kasir-pos/pkg/httpx"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type ctxKey string

const ctxCashierID ctxKey = "cashierID"

type Claims struct {
	CashierID string `json:"cashier_id"`
	jwt.RegisteredClaims
}

type Service struct {
	db     *sqlx.DB
	secret string
	ttl    time.Duration
}

func NewService(db *sqlx.DB, secret string) *Service {
	return &Service{db: db, secret: secret, ttl: 12 * time.Hour}
}

type cashierRow struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

// Login checks the cashier's password and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	var row cashierRow
	err := s.db.GetContext(ctx, &row, `SELECT id, username, password FROM cashiers WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("look up cashier: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issue(row.ID)
}

func (s *Service) issue(cashierID string) (string, error) {
	claims := Claims{
		CashierID: cashierID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *Service) verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token and stores
// the cashier id on the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			httpx.RespondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
			return
		}
		claims, err := s.verify(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			httpx.RespondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxCashierID, claims.CashierID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CashierID reads the authenticated cashier from the request context.
func CashierID(ctx context.Context) string {
	id, _ := ctx.Value(ctxCashierID).(string)
	return id
}
