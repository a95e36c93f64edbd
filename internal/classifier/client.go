// Package classifier calls the hosted generative-AI API to classify waste
// images and parses its text responses.
package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrClassificationFailed is surfaced for any transport or service failure.
// Classification calls are not retried.
var ErrClassificationFailed = errors.New("failed to classify waste image")

const prompt = `Analyze this image and classify the waste shown. Provide:
1. The main category (one of: Recyclable, Hazardous, Organic, Non-Recyclable, Industrial)
2. Confidence score (0-1)
3. Three specific recommendations for handling or recycling this waste
Format the response exactly as follows (including the ---):
Category: [category]
Confidence: [score]
---
- [recommendation 1]
- [recommendation 2]
- [recommendation 3]`

// Client calls a generateContent-style API with an image payload and a text prompt.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// NewClient creates a classifier client for the configured endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ClassifyImage sends the image to the classification API and parses the reply.
func (c *Client) ClassifyImage(ctx context.Context, image []byte, mimeType string) (Result, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: status %d", ErrClassificationFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	text := ""
	if len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
		text = gr.Candidates[0].Content.Parts[0].Text
	}
	if text == "" {
		return Result{}, fmt.Errorf("%w: empty response body", ErrClassificationFailed)
	}

	return Parse(text), nil
}
