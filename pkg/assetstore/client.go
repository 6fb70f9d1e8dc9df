// Package assetstore is the client for the external image hosting
// service. Uploads and deletes go through its HTTP API; delivery URLs
// with optional resize transformations are built locally.
package assetstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/google/uuid"
)

// UploadResult carries the asset reference returned by the store
type UploadResult struct {
	URL     string `json:"secure_url"`
	AssetID string `json:"public_id"`
}

// TransformOptions are the optional delivery transformations
type TransformOptions struct {
	Width  int
	Height int
}

// Client talks to the asset store's HTTP API
type Client struct {
	baseURL     string
	deliveryURL string
	cloudName   string
	apiKey      string
	apiSecret   string
	folder      string
	httpClient  *http.Client
}

var defaultClient *Client

// Initialize sets up the package-level client from configuration
func Initialize(cfg *config.AssetStoreConfig) {
	defaultClient = NewClient(cfg)
}

// NewClient creates an asset store client
func NewClient(cfg *config.AssetStoreConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		deliveryURL: "https://res.cloudinary.com",
		cloudName:   cfg.CloudName,
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		folder:      cfg.Folder,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Upload sends the image bytes to the store and returns the resulting
// asset reference. Safe to retry: the public id is generated per call.
func Upload(filename string, data []byte) (*UploadResult, error) {
	return defaultClient.Upload(filename, data)
}

// Delete removes the asset from the store. Callers treating deletion as
// best-effort log the error and move on.
func Delete(assetID string) error {
	return defaultClient.Delete(assetID)
}

// BuildURL returns the delivery URL for an asset, with optional resize
func BuildURL(assetID string, opts *TransformOptions) string {
	return defaultClient.BuildURL(assetID, opts)
}

// Upload sends the image bytes to the store's upload endpoint
func (c *Client) Upload(filename string, data []byte) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}

	publicID := c.folder + "/" + uuid.New().String()
	_ = writer.WriteField("folder", c.folder)
	_ = writer.WriteField("public_id", publicID)
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequest(http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset upload failed: %d %s", resp.StatusCode, string(respBody))
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("asset upload returned an invalid response: %w", err)
	}
	if result.URL == "" || result.AssetID == "" {
		return nil, fmt.Errorf("asset upload returned an incomplete response")
	}

	return &result, nil
}

// Delete removes the asset from the store's destroy endpoint
func (c *Client) Delete(assetID string) error {
	form := strings.NewReader("public_id=" + assetID)
	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)

	req, err := http.NewRequest(http.MethodPost, endpoint, form)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("asset delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("asset delete failed: %d %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// BuildURL returns the delivery URL for an asset, with optional resize
func (c *Client) BuildURL(assetID string, opts *TransformOptions) string {
	transform := ""
	if opts != nil && (opts.Width > 0 || opts.Height > 0) {
		parts := []string{}
		if opts.Width > 0 {
			parts = append(parts, fmt.Sprintf("w_%d", opts.Width))
		}
		if opts.Height > 0 {
			parts = append(parts, fmt.Sprintf("h_%d", opts.Height))
		}
		parts = append(parts, "c_fill")
		transform = strings.Join(parts, ",") + "/"
	}
	return fmt.Sprintf("%s/%s/image/upload/%s%s", c.deliveryURL, c.cloudName, transform, assetID)
}
