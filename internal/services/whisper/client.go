package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"aircast/internal/services"
)

const stageName = "transcribe"

// HTTPDoer describes the HTTP client used by the transcription service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the speech-to-text API.
type Client struct {
	baseURL  string
	apiToken string
	language string
	client   HTTPDoer
}

// NewClient constructs a transcription client. A nil doer falls back to
// http.DefaultClient.
func NewClient(baseURL, apiToken, lang string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiToken: strings.TrimSpace(apiToken),
		language: normalizeLanguage(lang),
		client:   doer,
	}
}

// Enabled reports whether the fallback is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != "" && c.apiToken != ""
}

// Transcribe uploads the audio file and returns the subtitle document the
// service emits. The response is expected in the canonical WebVTT form and is
// used verbatim by the caller.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if !c.Enabled() {
		return "", services.Wrap(services.ErrConfiguration, stageName, "transcribe", "speech-to-text credentials missing", nil)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, stageName, "transcribe", "open audio", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "build request body", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "read audio", err)
	}
	if c.language != "" {
		if err := writer.WriteField("language", c.language); err != nil {
			return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "build request body", err)
		}
	}
	if err := writer.WriteField("response_format", "vtt"); err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "build request body", err)
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "finalize request body", err)
	}

	endpoint := c.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTimeout, stageName, "transcribe", "transcription exceeded budget", ctx.Err())
		}
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "call speech-to-text service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrExternalTool, stageName, "transcribe",
			fmt.Sprintf("speech-to-text returned %d", resp.StatusCode), nil)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, stageName, "transcribe", "read response", err)
	}
	document := strings.TrimSpace(string(payload))
	if document == "" {
		return "", services.Wrap(services.ErrExternalTool, stageName, "transcribe", "speech-to-text returned empty document", nil)
	}
	return document + "\n", nil
}

// normalizeLanguage reduces a configured language value to its base ISO tag;
// unparseable values pass through empty so the service picks a default.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
