package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Item is a single todo as exposed by the REST API.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	UserID    int64  `json:"userId,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]Item, error) {
	const op = "list todos"
	req, err := c.newRequest(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	if err := validateList(body); err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, title string) (Item, error) {
	const op = "create todo"
	req, err := c.newRequest(ctx, http.MethodPost, "/todos", titlePayload{Title: title})
	if err != nil {
		return Item{}, err
	}

	body, err := c.do(op, req)
	if err != nil {
		return Item{}, err
	}

	if err := validateItem(body); err != nil {
		return Item{}, err
	}
	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return Item{}, fmt.Errorf("decode %s response: %w", op, err)
	}
	return item, nil
}

func (c *Client) Update(ctx context.Context, id int64, title string) error {
	req, err := c.newRequest(ctx, http.MethodPut, itemPath(id), titlePayload{Title: title})
	if err != nil {
		return err
	}
	_, err = c.do("update todo "+strconv.FormatInt(id, 10), req)
	return err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, itemPath(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do("delete todo "+strconv.FormatInt(id, 10), req)
	return err
}

type titlePayload struct {
	Title string `json:"title"`
}

func itemPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10)
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
