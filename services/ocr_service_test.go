package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func TestImageToTextEngineUnavailable(t *testing.T) {
	cfg := &config.Config{
		TesseractCmd:      "definitely-not-a-real-binary",
		OCRTimeoutSeconds: 5,
	}
	svc := services.NewOCRService(cfg)

	_, err := svc.ImageToText(context.Background(), "/tmp/receipt.png")
	assert.ErrorIs(t, err, services.ErrOCREngineUnavailable)
}
