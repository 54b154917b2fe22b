package flash

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
)

const cookieName = "staffdesk_flash"

type cookieClaims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// CookieStore keeps pending messages client-side in an HS256-signed cookie.
// A cookie that fails verification or has expired is treated as empty.
// Add rewrites the whole cookie from the request, so only the last Add of a
// single response survives.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	Secure bool
}

func NewCookieStore(secret []byte, ttl time.Duration) *CookieStore {
	return &CookieStore{secret: secret, ttl: ttl}
}

var _ Store = (*CookieStore)(nil)

func (s *CookieStore) Add(w http.ResponseWriter, r *http.Request, msg Message) error {
	msgs := append(s.read(r), msg)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &cookieClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Pop(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	if _, err := r.Cookie(cookieName); err != nil {
		return nil, nil
	}
	msgs := s.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs, nil
}

func (s *CookieStore) read(r *http.Request) []Message {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	var claims cookieClaims
	token, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		logger.L().Debug("discarding flash cookie", zap.Error(err))
		return nil
	}
	return claims.Messages
}
