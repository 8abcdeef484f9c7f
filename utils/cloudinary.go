package utils

import (
	"errors"
	"fmt"

	"styledecor/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

var ErrCloudinaryNotConfigured = errors.New("cloudinary credentials not set in configuration")

// NewCloudinary initializes the Cloudinary client from configuration.
func NewCloudinary() (*cloudinary.Cloudinary, error) {
	cloudName := config.AppConfig.CloudinaryCloudName
	apiKey := config.AppConfig.CloudinaryAPIKey
	apiSecret := config.AppConfig.CloudinaryAPISecret

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrCloudinaryNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("utils.NewCloudinary: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
