// Package backend provides a REST client of the URL shortening backend.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/backend"
	backendErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/backend/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

const (
	userPath  = "/api/user"
	urlsPath  = "/api/urls"
	urlPath   = "/api/urls/{id}"
	countPath = "/api/count/urls"
	statsPath = "/api/stats/{id}"

	maxErrorBody = 256
)

// Check interface implementation explicitly
var (
	_ backend.API = (*Client)(nil)
)

// Client struct defines data structure handling and provides support for adding new implementations.
type Client struct {
	client *resty.Client
}

type countResponse struct {
	Count int `json:"count"`
}

type createRequest struct {
	Long string `json:"Long"`
}

// InitClient initializes a Client object and sets its attributes.
func InitClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, &backendErrors.NilConfigError{}
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BackendURL, "/")).
		SetTimeout(cfg.BackendTimeout).
		SetHeader("Accept", "application/json")
	if cfg.BackendToken != "" {
		rc.SetAuthToken(cfg.BackendToken)
	}
	return &Client{client: rc}, nil
}

// User retrieves the identity the backend associates with the client.
func (c *Client) User(ctx context.Context) (*modellink.User, error) {
	const op = "get user"
	resp, err := c.client.R().SetContext(ctx).Get(userPath)
	if err = check(op, "", resp, err); err != nil {
		return nil, err
	}
	var user modellink.User
	if err = decode(op, resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListLinks retrieves a page of links.
func (c *Client) ListLinks(ctx context.Context, limit, offset int) ([]modellink.Link, error) {
	const op = "list links"
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit":  strconv.Itoa(limit),
			"offset": strconv.Itoa(offset),
		}).
		Get(urlsPath)
	if err = check(op, "", resp, err); err != nil {
		return nil, err
	}
	links := make([]modellink.Link, 0)
	if err = decode(op, resp, &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = make([]modellink.Link, 0)
	}
	return links, nil
}

// CountLinks retrieves the total number of links.
func (c *Client) CountLinks(ctx context.Context) (int, error) {
	const op = "count links"
	resp, err := c.client.R().SetContext(ctx).Get(countPath)
	if err = check(op, "", resp, err); err != nil {
		return 0, err
	}
	var res countResponse
	if err = decode(op, resp, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// CreateLink shortens long and returns the created link.
func (c *Client) CreateLink(ctx context.Context, long string) (*modellink.Link, error) {
	const op = "create link"
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(createRequest{Long: long}).
		Post(urlsPath)
	if err = check(op, "", resp, err); err != nil {
		return nil, err
	}
	var link modellink.Link
	if err = decode(op, resp, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// DeleteLink removes the link identified by short.
func (c *Client) DeleteLink(ctx context.Context, short string) error {
	const op = "delete link"
	if !modellink.ValidShort(short) {
		return &backendErrors.InvalidShortError{Short: short}
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", short).
		Delete(urlPath)
	return check(op, short, resp, err)
}

// Stats retrieves usage statistics of the link identified by short.
func (c *Client) Stats(ctx context.Context, short string) (*modellink.Statistics, error) {
	const op = "get stats"
	if !modellink.ValidShort(short) {
		return nil, &backendErrors.InvalidShortError{Short: short}
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", short).
		Get(statsPath)
	if err = check(op, short, resp, err); err != nil {
		return nil, err
	}
	var stats modellink.Statistics
	if err = decode(op, resp, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// check converts transport failures and unsuccessful statuses into typed errors.
func check(op, short string, resp *resty.Response, err error) error {
	if err != nil {
		return &backendErrors.TransportError{Op: op, Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return &backendErrors.NotFoundError{Op: op, Short: short}
	}
	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &backendErrors.StatusError{Op: op, Code: resp.StatusCode(), Body: body}
	}
	return nil
}

func decode(op string, resp *resty.Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return &backendErrors.DecodeError{Op: op, Err: err}
	}
	return nil
}
