// Package homewizard реализует клиент локального API счётчика HomeWizard P1.
// Клиент выполняет один запрос за вызов и не делает повторов:
// политика повторов принадлежит опрашивающему циклу.
package homewizard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/levinOo/homewizard-p1-exporter/internal/models"
)

// Client владеет одним переиспользуемым HTTP-клиентом с фиксированным
// таймаутом на запрос и заранее вычисленным URL эндпоинта данных.
type Client struct {
	client *resty.Client
	url    string
}

// NewClient создаёт клиент счётчика. Непустой apiToken прикрепляется
// к каждому запросу как bearer-токен в заголовке Authorization.
func NewClient(url string, timeout time.Duration, apiToken string) *Client {
	client := resty.New().SetTimeout(timeout)
	if apiToken != "" {
		client.SetAuthToken(apiToken)
	}

	return &Client{
		client: client,
		url:    url,
	}
}

// FetchData выполняет один GET к счётчику и декодирует ответ в dst.
// Возвращает TransportError, StatusError или DecodeError в зависимости
// от того, на каком этапе запрос не удался.
//
// Поле, отсутствующее в теле ответа, остаётся нулевым значением;
// поле неверного JSON-типа приводит к DecodeError.
func (c *Client) FetchData(ctx context.Context, dst *models.Snapshot) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.url)
	if err != nil {
		return &TransportError{Err: err}
	}

	if !resp.IsSuccess() {
		return &StatusError{Code: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}
