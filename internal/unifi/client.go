package unifi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/k3v1n-eu/unifi-respondd/internal/config"
	"github.com/k3v1n-eu/unifi-respondd/internal/inventory"
)

// Client is a thin HTTP client for the UniFi controller API. It logs in
// lazily, keeps the session cookie in a jar and retries once on 401 when
// the session expires.
type Client struct {
	baseURL   string
	site      string
	username  string
	password  string
	contact   string
	latitude  float64
	longitude float64
	http      *http.Client
	loggedIn  bool
}

// NewClient creates a client for the given controller settings.
func NewClient(cfg config.ControllerConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		site:      cfg.Site,
		username:  cfg.Username,
		password:  cfg.Password,
		contact:   cfg.Contact,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		http: &http.Client{
			Jar:       jar,
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: transport,
		},
	}, nil
}

// AccessPoints lists the adopted access points of the configured site.
// It implements inventory.Provider.
func (c *Client) AccessPoints(ctx context.Context) ([]inventory.AccessPoint, error) {
	devices, err := c.devices(ctx)
	if err != nil {
		return nil, err
	}

	aps := make([]inventory.AccessPoint, 0, len(devices))
	for _, d := range devices {
		if d.Type != "uap" || !d.Adopted {
			continue
		}
		load, _ := d.SysStats.LoadAvg1.Float64()
		aps = append(aps, inventory.AccessPoint{
			MAC:         d.MAC,
			Name:        d.Name,
			Firmware:    d.Version,
			Model:       d.Model,
			Contact:     c.contact,
			Latitude:    c.latitude,
			Longitude:   c.longitude,
			ClientCount: d.NumSta,
			Uptime:      d.Uptime,
			LoadAvg:     load,
			MemTotal:    d.SysStats.MemTotal,
			MemUsed:     d.SysStats.MemUsed,
			MemBuffer:   d.SysStats.MemBuffer,
		})
	}
	return aps, nil
}

func (c *Client) devices(ctx context.Context) ([]Device, error) {
	if !c.loggedIn {
		if err := c.login(ctx); err != nil {
			return nil, fmt.Errorf("controller login: %w", err)
		}
	}

	endpoint := "/api/s/" + url.PathEscape(c.site) + "/stat/device"
	var resp deviceResponse
	err := c.getJSON(ctx, endpoint, &resp)
	if errStatus(err) == http.StatusUnauthorized {
		// Session expired, log in again.
		c.loggedIn = false
		if err := c.login(ctx); err != nil {
			return nil, fmt.Errorf("controller re-login: %w", err)
		}
		err = c.getJSON(ctx, endpoint, &resp)
	}
	if err != nil {
		return nil, err
	}
	if resp.Meta.RC != "ok" {
		return nil, fmt.Errorf("controller returned rc=%q msg=%q", resp.Meta.RC, resp.Meta.Msg)
	}
	return resp.Data, nil
}

func (c *Client) login(ctx context.Context) error {
	err := c.postJSON(ctx, "/api/login", loginRequest{
		Username: c.username,
		Password: c.password,
	}, nil)
	if err != nil {
		return err
	}
	c.loggedIn = true
	return nil
}

// statusError preserves the HTTP status of a failed request so the 401
// re-login path can tell session expiry from other failures.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func errStatus(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.status
	}
	return 0
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return err
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func checkStatus(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(body))
	if msg != "" {
		return &statusError{status: res.StatusCode, msg: fmt.Sprintf("request failed: %s: %s", res.Status, msg)}
	}
	return &statusError{status: res.StatusCode, msg: fmt.Sprintf("request failed: %s", res.Status)}
}
