package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

// maxResponse caps how much of a response body is read.
const maxResponse = 1 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("server %s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// HTTP talks to a ciphergate server.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the server at base. A nil hc uses
// http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Handshake registers the client's keys and returns the new session.
func (c *HTTP) Handshake(ctx context.Context, req domain.HandshakeRequest) (domain.HandshakeResult, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(req); err != nil {
		return domain.HandshakeResult{}, err
	}
	hdr, body, err := c.do(ctx, "/handshake", "application/json", buf, nil)
	if err != nil {
		return domain.HandshakeResult{}, err
	}

	id := domain.SessionID(hdr.Get(domain.HeaderSessionID))
	if id == "" {
		return domain.HandshakeResult{}, fmt.Errorf("handshake response has no %s header", domain.HeaderSessionID)
	}
	serverKey, err := crypto.DecodeB64(body)
	if err != nil {
		return domain.HandshakeResult{}, domain.WrapError(domain.KindMalformedKey, "server exchange key", err)
	}
	return domain.HandshakeResult{SessionID: id, ServerKey: serverKey}, nil
}

// Call posts an encrypted body to path and returns the encrypted reply.
func (c *HTTP) Call(ctx context.Context, path string, id domain.SessionID, signature, body string) (string, error) {
	headers := http.Header{}
	headers.Set(domain.HeaderSessionID, id.String())
	headers.Set(domain.HeaderSignature, signature)
	_, out, err := c.do(ctx, path, "text/plain", strings.NewReader(body), headers)
	return out, err
}

// do posts to path and unwraps the {"statusCode","body"} response.
func (c *HTTP) do(
	ctx context.Context,
	path, contentType string,
	body io.Reader,
	headers http.Header,
) (http.Header, string, error) {
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, "", err
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	var out domain.Response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode/100 != 2 {
		msg := out.Body
		if decodeErr != nil {
			msg = strings.TrimSpace(string(raw))
		}
		return nil, "", &StatusError{Method: http.MethodPost, URL: u, Status: resp.StatusCode, Body: msg}
	}
	if decodeErr != nil {
		return nil, "", fmt.Errorf("decode response from %s: %w", u, decodeErr)
	}
	return resp.Header, out.Body, nil
}

// Compile-time assertion that HTTP implements domain.ServerClient.
var _ domain.ServerClient = (*HTTP)(nil)
