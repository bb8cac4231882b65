package auth

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"sync"
	"time"

	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

const loginPath = "/auth/rsaLogin"

// Session holds the RSA login state for one exchange account. The token
// is refreshed by Login and attached to every authorized protocol call.
type Session struct {
	client     *http.Client
	baseURL    string
	ethAddress string
	key        *rsa.PrivateKey

	mu    sync.Mutex
	token string
}

// NewSession parses the PEM private key and prepares a logged-out session.
func NewSession(client *http.Client, baseURL, ethAddress, pemKey string) (*Session, error) {
	key, err := parseKey(pemKey)
	if err != nil {
		return nil, err
	}

	return &Session{
		client:     client,
		baseURL:    baseURL,
		ethAddress: ethAddress,
		key:        key,
	}, nil
}

func parseKey(pemKey string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, exception.ErrAuthInvalidKey
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(exception.ErrAuthInvalidKey, err.Error())
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, exception.ErrAuthUnsupportedKey
	}
	return key, nil
}

type loginRequest struct {
	EthAddress string `json:"ethAddress"`
	Timestamp  int64  `json:"timestamp"`
	Signature  string `json:"signature"`
}

type loginResponse struct {
	Payload struct {
		Token string `json:"token"`
	} `json:"payload"`
}

// Login signs the current timestamp and exchanges it for a session token.
func (s *Session) Login(ctx context.Context) error {
	if s == nil {
		return exception.ErrNilInstance
	}

	ts := time.Now().UnixMilli()
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", s.ethAddress, ts)))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if err != nil {
		return errors.Wrap(err, "sign login challenge")
	}

	payload, err := sonic.ConfigFastest.Marshal(loginRequest{
		EthAddress: s.ethAddress,
		Timestamp:  ts,
		Signature:  base64.StdEncoding.EncodeToString(sig),
	})
	if err != nil {
		return errors.Wrap(err, "marshal login request")
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send login request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(exception.ErrAuthRejected, "status: %d", resp.StatusCode)
	}

	var data loginResponse
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return errors.Wrap(err, "decode login response")
	}
	if data.Payload.Token == "" {
		return errors.Wrap(exception.ErrAuthRejected, "empty token")
	}

	s.mu.Lock()
	s.token = data.Payload.Token
	s.mu.Unlock()
	return nil
}

// Token returns the most recent session token.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
