package utils

import (
	"context"
	"errors"
	"fmt"

	"styledecor/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var ErrFirebaseNotConfigured = errors.New("firebase credentials are not configured")

// NewFirebaseApp builds the Firebase app from the configured service account.
// Callers derive the auth and messaging clients from it explicitly.
func NewFirebaseApp(ctx context.Context) (*firebase.App, error) {
	if config.AppConfig.FirebaseCredentialsFile == "" {
		return nil, ErrFirebaseNotConfigured
	}
	var fbCfg *firebase.Config
	if config.AppConfig.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	}
	app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
