package bridge

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

	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client talks to the bridge's REST API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Converter  AudioConverter
	logger     zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, converter AudioConverter, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
		Converter:  converter,
		logger:     logger,
	}
}

type sendRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message,omitempty"`
	MediaPath string `json:"media_path,omitempty"`
}

type sendResponse struct {
	Success *bool   `json:"success"`
	Message *string `json:"message"`
}

type downloadRequest struct {
	MessageID string `json:"message_id"`
	ChatJID   string `json:"chat_jid"`
}

type downloadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

func (c *Client) SendMessage(ctx context.Context, recipient, message string) whatsapp.SendResult {
	jid, err := whatsapp.NormalizeRecipient(recipient)
	if err != nil {
		return whatsapp.SendResult{Message: fmt.Sprintf("Invalid recipient: %s", err)}
	}
	return c.send(ctx, sendRequest{Recipient: jid, Message: message})
}

func (c *Client) SendFile(ctx context.Context, recipient, mediaPath string) whatsapp.SendResult {
	jid, err := whatsapp.NormalizeRecipient(recipient)
	if err != nil {
		return whatsapp.SendResult{Message: fmt.Sprintf("Invalid recipient: %s", err)}
	}
	if !isFile(mediaPath) {
		return whatsapp.SendResult{Message: fmt.Sprintf("Media file not found: %s", mediaPath)}
	}
	return c.send(ctx, sendRequest{Recipient: jid, MediaPath: mediaPath})
}

// SendAudio sends mediaPath as a voice message, converting it to Opus/OGG first
// unless it already is one.
func (c *Client) SendAudio(ctx context.Context, recipient, mediaPath string) whatsapp.SendResult {
	jid, err := whatsapp.NormalizeRecipient(recipient)
	if err != nil {
		return whatsapp.SendResult{Message: fmt.Sprintf("Invalid recipient: %s", err)}
	}
	if !isFile(mediaPath) {
		return whatsapp.SendResult{Message: fmt.Sprintf("Media file not found: %s", mediaPath)}
	}

	if !strings.HasSuffix(strings.ToLower(mediaPath), ".ogg") {
		converted, err := c.Converter.ToOpusOgg(ctx, mediaPath)
		if err != nil {
			return whatsapp.SendResult{Message: fmt.Sprintf("Error converting file to opus ogg. You likely need to install ffmpeg: %s", err)}
		}
		defer os.Remove(converted)
		mediaPath = converted
	}
	return c.send(ctx, sendRequest{Recipient: jid, MediaPath: mediaPath})
}

// DownloadMedia never fails with an error; an unresolvable message is an
// unsuccessful Download.
func (c *Client) DownloadMedia(ctx context.Context, messageID, chatJID string) whatsapp.Download {
	failed := whatsapp.Download{Message: "Failed to download media"}

	status, body, err := c.post(ctx, "/download", downloadRequest{MessageID: messageID, ChatJID: chatJID})
	if err != nil {
		c.logger.Error().Err(err).Str("message_id", messageID).Msg("downloading media")
		return failed
	}
	if status != http.StatusOK {
		c.logger.Warn().Int("status", status).Str("message_id", messageID).Str("body", string(body)).Msg("bridge refused media download")
		return failed
	}
	var res downloadResponse
	if err := json.Unmarshal(body, &res); err != nil {
		c.logger.Error().Err(err).Str("message_id", messageID).Msg("parsing download response")
		return failed
	}
	if !res.Success || res.Path == "" {
		c.logger.Warn().Str("message_id", messageID).Str("reason", res.Message).Msg("media download unsuccessful")
		return failed
	}
	return whatsapp.Download{Success: true, Message: "Media downloaded successfully", FilePath: res.Path}
}

func (c *Client) send(ctx context.Context, req sendRequest) whatsapp.SendResult {
	status, body, err := c.post(ctx, "/send", req)
	if err != nil {
		return whatsapp.SendResult{Message: fmt.Sprintf("Request error: %s", err)}
	}
	if status != http.StatusOK {
		return whatsapp.SendResult{Message: fmt.Sprintf("Error: HTTP %d - %s", status, body)}
	}
	var res sendResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return whatsapp.SendResult{Message: fmt.Sprintf("Error parsing response: %s", body)}
	}
	out := whatsapp.SendResult{Message: "Unknown response"}
	if res.Success != nil {
		out.Success = *res.Success
	}
	if res.Message != nil {
		out.Message = *res.Message
	}
	return out
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
