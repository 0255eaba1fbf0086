package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"taxprep/config"
	"taxprep/models"
)

// DocumentExtractor turns an uploaded W-2 file into a structured record.
// The static implementation is the default; a remote OCR service can be
// swapped in through EXTRACT_API_URL without touching the handlers.
type DocumentExtractor interface {
	ExtractW2(user *models.User, filePath string) (*models.W2Record, error)
}

// ActiveExtractor is the extractor the W-2 endpoints use. InitExtractor
// picks the implementation at boot; tests may override it directly.
var ActiveExtractor DocumentExtractor = StaticExtractor{}

// InitExtractor selects the extractor implementation from config.
func InitExtractor() {
	if config.AppConfig.ExtractApiURL != "" {
		ActiveExtractor = &RemoteExtractor{
			URL:    config.AppConfig.ExtractApiURL,
			client: resty.New().SetTimeout(30 * time.Second),
		}
		log.Printf("Using remote W-2 extraction service: %s", config.AppConfig.ExtractApiURL)
		return
	}
	ActiveExtractor = StaticExtractor{}
}

// StaticExtractor returns the fixed mock-OCR payload regardless of the
// uploaded document's contents. It only verifies the file is still on disk.
type StaticExtractor struct{}

func (StaticExtractor) ExtractW2(user *models.User, filePath string) (*models.W2Record, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("stored W-2 file is not readable: %v", err)
	}
	return BuildStaticW2(user), nil
}

// RemoteExtractor posts the stored document to an external extraction
// service and decodes the structured W-2 it returns.
type RemoteExtractor struct {
	URL    string
	client *resty.Client
}

func (r *RemoteExtractor) ExtractW2(user *models.User, filePath string) (*models.W2Record, error) {
	resp, err := r.client.R().
		SetFile("document", filePath).
		SetFormData(map[string]string{
			"documentType": "w2",
		}).
		Post(r.URL)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Extraction service returned %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode())
	}

	var record models.W2Record
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %v", err)
	}

	if record.ExtractedAt.IsZero() {
		record.ExtractedAt = time.Now()
	}
	if record.ExtractionMethod == "" {
		record.ExtractionMethod = "remote-ocr"
	}

	return &record, nil
}
