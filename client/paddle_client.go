package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const paddleTimeout = 60 * time.Second

// PaddleClient calls a PaddleOCR serving endpoint (ocr_system) over HTTP.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
	logger     *log.Logger
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// NewPaddleClient returns a client for apiURL, e.g.
// http://paddleocr:8866/predict/ocr_system. A nil httpClient gets a default
// with a timeout.
func NewPaddleClient(apiURL string, httpClient *http.Client, logger *log.Logger) *PaddleClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: paddleTimeout}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (p *PaddleClient) Name() string {
	return "PADDLE"
}

// ExtractText sends img to the OCR service and returns one line per detected
// text box.
func (p *PaddleClient) ExtractText(ctx context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	payload, err := json.Marshal(paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(buf.Bytes())},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var text strings.Builder
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			text.WriteString(line.Text)
			text.WriteString("\n")
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("PaddleOCR extracted no text")
	}

	p.logger.Debug("paddle pass", "chars", text.Len())
	return text.String(), nil
}
