package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
)

// InitAuthKeys builds the token keyring from the configured secret.
//
// Both purpose keys are derived from the one AUTH_SECRET, so there is
// nothing to persist and nothing to rotate at runtime: tokens survive
// restarts as long as the secret does, and changing the secret invalidates
// every outstanding token at once.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.Keyring, error) {
	if cfg.Secret == DevSecret {
		logger.Warn("AUTH_SECRET is not set, signing tokens with the built-in development secret",
			"hint", "set AUTH_SECRET before exposing this service to anything",
		)
	}

	keyring, err := jwtx.NewKeyring(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token keys: %w", err)
	}

	logger.Info("token keyring derived",
		"algorithm", "HS256",
		"purposes", []string{string(jwtx.PurposeAccess), string(jwtx.PurposeRefresh)},
	)

	return keyring, nil
}
