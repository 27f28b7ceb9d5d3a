/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the Medscape laboratory reference ranges article.
const DefaultURL = "https://emedicine.medscape.com/article/2172316-overview"

// maxBodyBytes caps the article size read by Fetch.
var maxBodyBytes int64 = 16 << 20

const (
	userAgent       = "Mozilla/5.0"
	defaultTimeout  = 60 * time.Second
	errorBodyPrefix = 512
)

// Fetch downloads the page at url and returns its body.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("Failed to close response body", "url", url, "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPrefix))
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrUnexpectedStatus, url, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if int64(len(body)) > maxBodyBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, url, maxBodyBytes)
	}

	return body, nil
}
