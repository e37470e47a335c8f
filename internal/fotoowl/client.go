package fotoowl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"time"
)

// Ошибки клиента провайдера. Сервис переводит их в свою таксономию.
var (
	// ErrUnavailable — провайдер недоступен или ответил не-2xx.
	ErrUnavailable = errors.New("fotoowl: provider unavailable")
	// ErrBadResponse — провайдер ответил 2xx, но тело не соответствует контракту.
	ErrBadResponse = errors.New("fotoowl: malformed provider response")
)

// RegisterResult — данные request'а, выданные провайдером при регистрации.
type RegisterResult struct {
	RequestID   int64
	RequestKey  string
	RedirectURL *string
}

// Client — HTTP-клиент внешнего провайдера матчинга фотографий.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент с общим таймаутом на каждый вызов.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type registerResponse struct {
	OK   bool `json:"ok"`
	Data struct {
		RequestID   int64   `json:"request_id"`
		RequestKey  string  `json:"request_key"`
		RedirectURL *string `json:"redirect_url"`
	} `json:"data"`
}

// CreateRequest регистрирует пользователя на событии провайдера:
// скачивает селфи по ссылке и загружает его multipart'ом вместе
// с event_id и ключом события.
func (c *Client) CreateRequest(ctx context.Context, eventID int64, eventKey, selfieURL string) (*RegisterResult, error) {
	selfie, name, err := c.downloadImage(ctx, selfieURL)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(selfie); err != nil {
		return nil, err
	}
	if err := mw.WriteField("event_id", strconv.FormatInt(eventID, 10)); err != nil {
		return nil, err
	}
	if err := mw.WriteField("key", eventKey); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/open/request", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("%w: ok=false", ErrBadResponse)
	}
	if parsed.Data.RequestID == 0 || parsed.Data.RequestKey == "" {
		return nil, fmt.Errorf("%w: missing request_id or request_key", ErrBadResponse)
	}

	return &RegisterResult{
		RequestID:   parsed.Data.RequestID,
		RequestKey:  parsed.Data.RequestKey,
		RedirectURL: parsed.Data.RedirectURL,
	}, nil
}

// downloadImage скачивает референсное фото по URL.
func (c *Client) downloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: selfie download status %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	name := path.Base(req.URL.Path)
	if name == "" || name == "/" || name == "." {
		name = "selfie.jpg"
	}
	return data, name, nil
}
