package agent

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"go.uber.org/zap"
)

// retryIntervals задаёт паузы между повторными попытками, когда сервер отказывает в соединении.
var retryIntervals = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

const requestTimeout = 10 * time.Second

// Client — HTTP-клиент коллектора.
type Client struct {
	http     *resty.Client
	endpoint string
	sugar    *zap.SugaredLogger
}

// NewClient создаёт клиента для адреса вида "host:port" или полного URL.
func NewClient(addr string, sugar *zap.SugaredLogger) *Client {
	endpoint := addr
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	return &Client{
		http:     resty.New().SetTimeout(requestTimeout),
		endpoint: strings.TrimSuffix(endpoint, "/"),
		sugar:    sugar,
	}
}

// SendStatsSample отправляет замер. Возвращает true, если сервер принял ключ.
func (c *Client) SendStatsSample(ctx context.Context, key string, sample models.StatsSample) (bool, error) {
	data, err := models.SendStatsSampleRequest{Key: key, Payload: sample}.MarshalJSON()
	if err != nil {
		return false, fmt.Errorf("failed to marshal stats sample: %w", err)
	}

	buffer, err := CompressData(data)
	if err != nil {
		return false, fmt.Errorf("failed to compress data: %w", err)
	}

	return c.postWithRetry(ctx, "/stats", buffer, true)
}

// CloseService просит сервер завершить работу. Возвращает true, если сервер принял запрос.
func (c *Client) CloseService(ctx context.Context) (bool, error) {
	return c.postWithRetry(ctx, "/close", nil, false)
}

func (c *Client) postWithRetry(ctx context.Context, path string, body []byte, gz bool) (bool, error) {
	status, err := c.post(ctx, path, body, gz)
	for i := 0; i < len(retryIntervals) && errors.Is(err, syscall.ECONNREFUSED); i++ {
		c.sugar.Warnw("Collector refused connection, retrying", "attempt", i+1, "wait", retryIntervals[i], "error", err)

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryIntervals[i]):
		}

		status, err = c.post(ctx, path, body, gz)
		if err == nil {
			c.sugar.Infow("Request succeeded after retries", "path", path, "retries", i+1)
		}
	}
	return status, err
}

func (c *Client) post(ctx context.Context, path string, body []byte, gz bool) (bool, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if gz {
		req.SetHeader("Content-Encoding", "gzip")
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Post(c.endpoint + path)
	if err != nil {
		return false, fmt.Errorf("failed to send request to %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("server returned status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var status models.StatusResponse
	if err := status.UnmarshalJSON(resp.Body()); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return status.Status, nil
}

// CompressData сжимает данные в gzip.
func CompressData(data []byte) ([]byte, error) {
	var buffer bytes.Buffer

	w := gzip.NewWriter(&buffer)

	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
