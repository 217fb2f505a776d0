package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/diillson/momcarebot/internal/shared/types"
)

const DefaultBaseURL = "https://api.telegram.org"

// Credentials identifies the bot and the chat it posts to.
type Credentials struct {
	BotToken string
	ChatID   string
}

// NotifierImpl sends messages through the Telegram Bot API.
type NotifierImpl struct {
	creds   Credentials
	baseURL string
	client  *http.Client
}

// Option configures a NotifierImpl.
type Option func(*NotifierImpl)

// WithBaseURL points the notifier at another API host.
func WithBaseURL(baseURL string) Option {
	return func(n *NotifierImpl) {
		n.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *NotifierImpl) {
		n.client = client
	}
}

// NewNotifier creates a Telegram Notifier for creds.
func NewNotifier(creds Credentials, opts ...Option) repository.Notifier {
	n := &NotifierImpl{
		creds:   creds,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendText posts a plain text message to the chat.
func (n *NotifierImpl) SendText(ctx context.Context, message string) error {
	if err := n.checkCredentials(); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"chat_id": n.creds.ChatID,
		"text":    message,
	})
	if err != nil {
		return fmt.Errorf("error encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return n.do(req)
}

// SendDocument uploads the file at path to the chat with an optional caption.
func (n *NotifierImpl) SendDocument(ctx context.Context, path string, caption string) error {
	if err := n.checkCredentials(); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("document not found: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("chat_id", n.creds.ChatID); err != nil {
		return err
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := writer.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("error reading document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.methodURL("sendDocument"), &buf)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return n.do(req)
}

func (n *NotifierImpl) checkCredentials() error {
	if n.creds.BotToken == "" || n.creds.ChatID == "" {
		return types.ErrMissingCredentials
	}
	return nil
}

func (n *NotifierImpl) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", n.baseURL, n.creds.BotToken, method)
}

// do sends the request and maps anything but a 2xx response to ErrTransportFailure.
// The token is part of the URL, so transport errors are reported without it.
func (n *NotifierImpl) do(req *http.Request) error {
	method := filepath.Base(req.URL.Path)
	resp, err := n.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %s: %v", types.ErrTransportFailure, method, err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s: status %d", types.ErrTransportFailure, method, resp.StatusCode)
	}
	return nil
}
