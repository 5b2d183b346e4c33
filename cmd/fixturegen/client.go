package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

// newRequest builds a request carrying the client version header
func newRequest(method, url string, body io.Reader) *http.Request {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set(fixture.VersionHeader, fixture.Version)
	return req
}

func pushFixtureHTTP(serverURL, path string) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		log.Fatalf("Failed to build upload body: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := mw.Close(); err != nil {
		log.Fatalf("Failed to build upload body: %v", err)
	}

	req := newRequest(http.MethodPost, serverURL+"/api/fixtures", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Failed to upload fixture: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Upload failed (status %d): %s", resp.StatusCode, body)
	}

	var m fixture.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	fmt.Printf("Fixture uploaded successfully!\n")
	fmt.Printf("  ID:     %s\n", m.ID)
	fmt.Printf("  Size:   %s\n", humanize.Bytes(uint64(m.Bytes)))
	fmt.Printf("  SHA256: %s\n", m.SHA256)
	fmt.Printf("\nDownload with: fixturegen pull %s\n", m.ID)
}

// fetchManifestHTTP retrieves one manifest; non-200 responses become
// errors carrying the server's message
func fetchManifestHTTP(serverURL, fixtureID string) (fixture.Manifest, error) {
	resp, err := http.DefaultClient.Do(newRequest(http.MethodGet, serverURL+"/api/fixtures/"+fixtureID, nil))
	if err != nil {
		return fixture.Manifest{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fixture.Manifest{}, fmt.Errorf("fixture not found: %s", fixtureID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fixture.Manifest{}, fmt.Errorf("server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var m fixture.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return fixture.Manifest{}, fmt.Errorf("decode response: %w", err)
	}
	return m, nil
}

func pullFixtureHTTP(serverURL, fixtureID, outputPath string) {
	m, err := fetchManifestHTTP(serverURL, fixtureID)
	if err != nil {
		log.Fatalf("Failed to get fixture: %v", err)
	}
	if outputPath == "" {
		outputPath = m.Filename
	}

	resp, err := http.DefaultClient.Do(newRequest(http.MethodGet, serverURL+"/api/fixtures/"+fixtureID+"/download", nil))
	if err != nil {
		log.Fatalf("Failed to download fixture: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Fatalf("Fixture file is missing on the server: %s", fixtureID)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Download failed (status %d)", resp.StatusCode)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", outputPath, err)
	}
	defer file.Close()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(file, h), resp.Body)
	if err != nil {
		log.Fatalf("Failed to write %s: %v", outputPath, err)
	}
	if err := file.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", outputPath, err)
	}

	if sum := hex.EncodeToString(h.Sum(nil)); sum != m.SHA256 {
		log.Fatalf("Checksum mismatch for %s: got %s, want %s", fixtureID, sum, m.SHA256)
	}

	fmt.Printf("Downloaded %s (%s) to %s\n", m.Filename, humanize.Bytes(uint64(n)), outputPath)
}

func listFixturesHTTP(serverURL string) {
	resp, err := http.DefaultClient.Do(newRequest(http.MethodGet, serverURL+"/api/fixtures", nil))
	if err != nil {
		log.Fatalf("Failed to list fixtures: %v", err)
	}
	defer resp.Body.Close()

	var listResp fixture.ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	if len(listResp.Fixtures) == 0 {
		fmt.Println("No fixtures found")
		return
	}

	fmt.Printf("%-36s %-20s %-10s %-10s %-8s %s\n", "FIXTURE ID", "FILENAME", "SOURCE", "SIZE", "STATUS", "CREATED")
	fmt.Println("────────────────────────────────────────────────────────────────────────────────────────────────────")
	for _, m := range listResp.Fixtures {
		fmt.Printf("%-36s %-20s %-10s %-10s %-8s %s\n",
			m.ID,
			m.Filename,
			m.Source,
			humanize.Bytes(uint64(m.Bytes)),
			m.Status,
			m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func fixtureInfoHTTP(serverURL, fixtureID string) {
	m, err := fetchManifestHTTP(serverURL, fixtureID)
	if err != nil {
		log.Fatalf("Failed to get fixture: %v", err)
	}

	fmt.Printf("Fixture Details:\n")
	fmt.Printf("  ID:           %s\n", m.ID)
	fmt.Printf("  Filename:     %s\n", m.Filename)
	fmt.Printf("  Source:       %s\n", m.Source)
	fmt.Printf("  Size:         %s\n", humanize.Bytes(uint64(m.Bytes)))
	fmt.Printf("  SHA256:       %s\n", m.SHA256)
	fmt.Printf("  Content-Type: %s\n", m.ContentType)
	fmt.Printf("  Created:      %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))

	if m.Source == fixture.SourceGenerated {
		fmt.Printf("\nGenerated by:\n")
		fmt.Printf("  Generator: %s\n", m.Generator)
		fmt.Printf("  Rows:      %d\n", m.Rows)
	}

	if m.Status == fixture.StatusMissing {
		fmt.Printf("\nWarning: the fixture file is missing on the server\n")
	}
}

func removeFixtureHTTP(serverURL, fixtureID string) {
	resp, err := http.DefaultClient.Do(newRequest(http.MethodDelete, serverURL+"/api/fixtures/"+fixtureID, nil))
	if err != nil {
		log.Fatalf("Failed to delete fixture: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Fatalf("Fixture not found: %s", fixtureID)
	}

	var deleteResp fixture.DeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&deleteResp); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	if !deleteResp.Success {
		log.Fatalf("Failed to delete fixture: %s", deleteResp.Message)
	}

	fmt.Printf("Fixture deleted successfully: %s\n", fixtureID)
}

func serviceStatusHTTP(serverURL string) {
	resp, err := http.DefaultClient.Do(newRequest(http.MethodGet, serverURL+"/api/status", nil))
	if err != nil {
		log.Fatalf("Failed to get status: %v", err)
	}
	defer resp.Body.Close()

	var status fixture.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	fmt.Printf("Fixture Service Status:\n")
	fmt.Printf("  Fixtures:   %d\n", status.Fixtures)
	fmt.Printf("  Uploaded:   %d\n", status.Uploaded)
	fmt.Printf("  Generated:  %d\n", status.Generated)
	fmt.Printf("  Missing:    %d\n", status.Missing)
	fmt.Printf("  Total size: %s\n", humanize.Bytes(uint64(status.TotalBytes)))

	genResp, err := http.DefaultClient.Do(newRequest(http.MethodGet, serverURL+"/api/generators", nil))
	if err != nil {
		log.Fatalf("Failed to list generators: %v", err)
	}
	defer genResp.Body.Close()

	var generators fixture.GeneratorListResponse
	if err := json.NewDecoder(genResp.Body).Decode(&generators); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	fmt.Printf("\nAvailable generators:\n")
	for _, g := range generators.Generators {
		fmt.Printf("  %-12s %s (default %d rows)\n", g.Name, g.Description, g.DefaultRows)
	}
}
