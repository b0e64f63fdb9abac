package account

import (
	"context"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
)

// PushToken is a device token relayed by the native shell for an authenticated account.
type PushToken struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PushTokenRepository interface {
	// Upsert stores the token, moving it to accountID if another account registered it before.
	Upsert(ctx context.Context, token *PushToken) error

	LatestForAccount(ctx context.Context, accountID int64) (*PushToken, error)
}

func NewPushToken(accountID int64, token, platform string) (*PushToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NewValidationError("token", "push token cannot be empty")
	}
	if accountID <= 0 {
		return nil, apperrors.NewValidationError("accountId", "push tokens require an authenticated account")
	}
	return &PushToken{
		AccountID: accountID,
		Token:     token,
		Platform:  strings.ToLower(strings.TrimSpace(platform)),
	}, nil
}
