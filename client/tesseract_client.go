package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/otiai10/gosseract/v2"
)

// ErrTesseractClosed is returned by OCR calls made after Close.
var ErrTesseractClosed = errors.New("tesseract client is closed")

// TesseractClient shares one gosseract handle across the process. The handle
// is created on first use and every call is serialised, since the underlying
// engine is not safe for concurrent use.
type TesseractClient struct {
	dataPath string
	language string
	logger   *log.Logger

	once    sync.Once
	initErr error

	mu     sync.Mutex
	client *gosseract.Client
}

func NewTesseractClient(dataPath, language string, logger *log.Logger) *TesseractClient {
	if language == "" {
		language = "eng"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
		logger:   logger,
	}
}

func (tc *TesseractClient) Name() string {
	return "TESSERACT"
}

// ExtractText runs OCR on img.
func (tc *TesseractClient) ExtractText(ctx context.Context, img image.Image) (string, error) {
	text, _, err := tc.ExtractTextAndQuality(ctx, img)
	return text, err
}

// ExtractTextAndQuality runs OCR on img and also returns the mean word
// confidence, 0 when word boxes are unavailable.
func (tc *TesseractClient) ExtractTextAndQuality(ctx context.Context, img image.Image) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", 0, fmt.Errorf("failed to encode image: %w", err)
	}

	if err := tc.start(); err != nil {
		return "", 0, err
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	client := tc.client
	if client == nil {
		return "", 0, ErrTesseractClosed
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return text, 0, nil
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	confidence := total / float64(len(boxes))

	tc.logger.Debug("tesseract pass", "chars", len(text), "confidence", confidence)
	return text, confidence, nil
}

// start creates the engine on first use. It does nothing after Close.
func (tc *TesseractClient) start() error {
	tc.once.Do(func() {
		client := gosseract.NewClient()
		if tc.dataPath != "" {
			if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
				client.Close()
				tc.initErr = fmt.Errorf("failed to set tessdata prefix: %w", err)
				return
			}
		}
		if err := client.SetLanguage(tc.language); err != nil {
			client.Close()
			tc.initErr = fmt.Errorf("failed to set language: %w", err)
			return
		}
		tc.mu.Lock()
		tc.client = client
		tc.mu.Unlock()
		tc.logger.Info("tesseract initialised", "language", tc.language, "tessdata", tc.dataPath)
	})
	return tc.initErr
}

// Close releases the engine if it was ever started. Later OCR calls fail
// with ErrTesseractClosed.
func (tc *TesseractClient) Close() {
	tc.once.Do(func() {})

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.client != nil {
		tc.client.Close()
		tc.client = nil
		tc.logger.Info("tesseract client closed")
	}
}
