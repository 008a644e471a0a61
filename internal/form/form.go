package form

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ordering-system/internal/config"
	"ordering-system/internal/logger"
)

// Submission carries the five fields the external form expects.
type Submission struct {
	CustomerName    string
	ItemNames       string
	ItemQuantities  string
	DiscountedTotal int
	CustomerPhone   string
}

// Client posts submissions to the external form endpoint. The endpoint treats
// anything other than HTTP 200 as a failure; there are no retries here.
type Client struct {
	endpoint string
	fields   config.FormFields
	client   *http.Client
	logger   *logger.Logger
}

// NewClient creates a form client from configuration
func NewClient(cfg config.FormConfig, log *logger.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		fields:   cfg.Fields,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   log,
	}
}

// Post submits one order to the form endpoint as URL-encoded fields.
func (c *Client) Post(ctx context.Context, sub Submission) error {
	values := url.Values{}
	values.Set(c.fields.CustomerName, sub.CustomerName)
	values.Set(c.fields.ItemNames, sub.ItemNames)
	values.Set(c.fields.ItemQuantities, sub.ItemQuantities)
	values.Set(c.fields.DiscountedTotal, strconv.Itoa(sub.DiscountedTotal))
	values.Set(c.fields.CustomerPhone, sub.CustomerPhone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("form submission failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("form endpoint returned status %d", resp.StatusCode)
	}

	c.logger.Debug("form_submitted", "Form submission accepted", "", map[string]interface{}{
		"customer_name": sub.CustomerName,
		"total":         sub.DiscountedTotal,
	})
	return nil
}
