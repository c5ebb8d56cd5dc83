package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const catalogDownloadTimeout = 2 * time.Minute

// downloadCatalog fetches the card JSON from url and writes it to path.
// The file is written to a temporary name and renamed once complete and
// valid, so a failed download never leaves a truncated catalog behind.
func downloadCatalog(url, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	client := &http.Client{
		Timeout: catalogDownloadTimeout,
	}
	ctx, cancel := context.WithTimeout(context.Background(), catalogDownloadTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(dir, ".cards-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to clean up %s: %v", tmpPath, err)
		}
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write card data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write card data: %w", err)
	}

	// Refuse to install something that will not load.
	if _, err := LoadCatalog(tmpPath); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to install card data: %w", err)
	}
	return nil
}
