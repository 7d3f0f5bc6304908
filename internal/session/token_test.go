package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(secret)
	v.now = func() time.Time { return now }

	valid := jwt.MapClaims{
		"user_id": float64(42),
		"email":   "mona@tarzi.test",
		"role":    "customer",
		"exp":     now.Add(time.Hour).Unix(),
	}

	tests := []struct {
		name      string
		token     string
		wantOwner string
		wantErr   error
	}{
		{
			name:      "numeric user_id",
			token:     sign(t, secret, jwt.SigningMethodHS256, valid),
			wantOwner: "42",
		},
		{
			name: "string user_id",
			token: sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"user_id": "64f1c2", "exp": now.Add(time.Hour).Unix(),
			}),
			wantOwner: "64f1c2",
		},
		{
			name: "sub fallback",
			token: sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user-7", "exp": now.Add(time.Hour).Unix(),
			}),
			wantOwner: "user-7",
		},
		{
			name: "expired",
			token: sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"user_id": "u1", "exp": now.Add(-time.Minute).Unix(),
			}),
			wantErr: ErrSessionExpired,
		},
		{
			name:    "missing exp",
			token:   sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong secret",
			token:   sign(t, "other", jwt.SigningMethodHS256, valid),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong algorithm",
			token:   sign(t, secret, jwt.SigningMethodHS512, valid),
			wantErr: ErrInvalidToken,
		},
		{
			name: "no owner",
			token: sign(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"exp": now.Add(time.Hour).Unix(),
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   "not.a.jwt",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty",
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.Verify(tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, claims.OwnerID)
			assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		})
	}
}
