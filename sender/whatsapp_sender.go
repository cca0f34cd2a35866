package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultGraphURL = "https://graph.facebook.com/v19.0"

type WhatsAppSender struct {
	baseURL       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
}

// NewWhatsAppSender reads WHATSAPP_TOKEN and WHATSAPP_PHONE_NUMBER_ID.
// WHATSAPP_API_URL overrides the Graph API base URL.
func NewWhatsAppSender() (*WhatsAppSender, error) {
	token := os.Getenv("WHATSAPP_TOKEN")
	phoneID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")

	if token == "" {
		return nil, fmt.Errorf("WHATSAPP_TOKEN not set")
	}
	if phoneID == "" {
		return nil, fmt.Errorf("WHATSAPP_PHONE_NUMBER_ID not set")
	}

	baseURL := os.Getenv("WHATSAPP_API_URL")
	if baseURL == "" {
		baseURL = defaultGraphURL
	}

	return &WhatsAppSender{
		baseURL:       strings.TrimRight(baseURL, "/"),
		phoneNumberID: phoneID,
		token:         token,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

var _ MessageSender = (*WhatsAppSender)(nil)

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (s *WhatsAppSender) SendText(ctx context.Context, to, body string) (SendResult, error) {
	to = normalizePhone(to)
	if to == "" {
		return SendResult{}, fmt.Errorf("recipient phone is required")
	}

	msg := textMessage{MessagingProduct: "whatsapp", To: to, Type: "text"}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to encode message: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 300 {
		return SendResult{}, fmt.Errorf("whatsapp error %s: %s", resp.Status, string(respBody))
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Messages) == 0 {
		return SendResult{}, fmt.Errorf("unexpected whatsapp response: %s", string(respBody))
	}

	return SendResult{
		MessageID: parsed.Messages[0].ID,
		SentAt:    time.Now(),
	}, nil
}

// normalizePhone keeps digits only: "+52 1 (55) 1234-5678" -> "5215512345678"
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
