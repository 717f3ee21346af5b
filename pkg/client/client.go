package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studentdb/pkg/bench"
	"studentdb/pkg/common"
)

// Client talks to the studentdb HTTP API.
type Client struct {
	base string
	http *http.Client
}

func Dial(addr string) (*Client, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server address %q", addr)
	}
	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				MaxIdleConnsPerHost: 4,
			},
		},
	}
	if _, err := c.Stats(); err != nil {
		return nil, err
	}
	return c, nil
}

// QueryResult is the server's answer to a SORT or SEARCH statement.
type QueryResult struct {
	Statement string `json:"statement"`
	bench.Bundle
}

func (c *Client) List() ([]common.Record, error) {
	var out []common.Record
	err := c.do(http.MethodGet, "/api/students", nil, &out)
	return out, err
}

func (c *Client) Get(id string) (common.Record, error) {
	var out common.Record
	err := c.do(http.MethodGet, "/api/students/get?id="+url.QueryEscape(id), nil, &out)
	return out, err
}

func (c *Client) Add(rec common.Record) error {
	return c.do(http.MethodPost, "/api/students", rec, nil)
}

func (c *Client) Delete(id string) error {
	return c.do(http.MethodPost, "/api/students/delete?id="+url.QueryEscape(id), nil, nil)
}

func (c *Client) Query(q string) (*QueryResult, error) {
	var out QueryResult
	if err := c.do(http.MethodPost, "/api/query", map[string]string{"query": q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats() (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		text := strings.TrimSpace(string(msg))
		if text == "" {
			text = resp.Status
		}
		return errors.New(text)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
