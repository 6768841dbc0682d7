// Package wordfreq builds word lists from the wordfreq frequency dataset
// published as a Python wheel on PyPI.
package wordfreq

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultIndexURL is the PyPI JSON endpoint describing wordfreq releases.
const DefaultIndexURL = "https://pypi.org/pypi/wordfreq/json"

const dataPrefix = "wordfreq/data/"

// List types shipped in the wheel, largest first.
const (
	ListLarge = "large"
	ListSmall = "small"
)

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithIndexURL points the client at another release index.
func WithIndexURL(url string) Option {
	return func(c *Client) {
		c.indexURL = url
	}
}

// Client downloads wordfreq wheels.
type Client struct {
	http     *http.Client
	indexURL string
}

// NewClient returns a client for the public PyPI index.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 60 * time.Second},
		indexURL: DefaultIndexURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir. A wheel
// already present in the cache is reused.
func (c *Client) DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := c.get(ctx, c.indexURL)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected index status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Wheel{}, fmt.Errorf("failed to decode index response: %w", err)
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in index response")
	}
	file, ok := pickWheel(payload.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: payload.Info.Version, Filename: filepath.Base(file.Filename)}
	wheel.Path = filepath.Join(cacheDir, wheel.Filename)
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	if err := c.download(ctx, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

func (c *Client) download(ctx context.Context, url, dest string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected wheel status: %s", resp.Status)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func pickWheel(files []pypiFile) (pypiFile, bool) {
	for _, f := range files {
		if f.Packagetype == "bdist_wheel" && strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f, true
		}
	}
	for _, f := range files {
		if f.Packagetype == "bdist_wheel" {
			return f, true
		}
	}
	return pypiFile{}, false
}

// LanguageTypes maps language codes to the list types available for them.
type LanguageTypes map[string]map[string]struct{}

// Languages returns the sorted language codes.
func (lt LanguageTypes) Languages() []string {
	out := make([]string, 0, len(lt))
	for lang := range lt {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Select returns the preferred list type for lang, falling back from large
// to small.
func (lt LanguageTypes) Select(lang, preferred string) (string, bool) {
	available := lt[lang]
	order := []string{preferred}
	if preferred == ListLarge {
		order = append(order, ListSmall)
	}
	for _, t := range order {
		if _, ok := available[t]; ok {
			return t, true
		}
	}
	return "", false
}

// ListLanguageTypes returns the languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType := parseDataName(file.Name)
		if lang == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// parseDataName splits "wordfreq/data/large_en.msgpack.gz" into ("en", "large").
func parseDataName(name string) (string, string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataPrefix) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataPrefix)
	switch {
	case strings.HasSuffix(base, ".msgpack.gz"):
		base = strings.TrimSuffix(base, ".msgpack.gz")
	case strings.HasSuffix(base, ".msgpack"):
		base = strings.TrimSuffix(base, ".msgpack")
	default:
		return "", ""
	}
	for _, t := range []string{ListLarge, ListSmall} {
		if lang, ok := strings.CutPrefix(base, t+"_"); ok && lang != "" {
			return lang, t
		}
	}
	return "", ""
}

func findDataFile(files []*zip.File, lang, listType string) *zip.File {
	for _, file := range files {
		l, t := parseDataName(file.Name)
		if l == lang && t == listType {
			return file
		}
	}
	return nil
}

// WriteAttribution writes the attribution and license files that must
// accompany lists derived from the dataset.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attribution := strings.Join([]string{
		"Word lists generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"Changes were made: filtered to alphabetic words and truncated to the requested size.",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attribution), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	license, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), license, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	dataLicense := "This word list is licensed under CC BY-SA 4.0.\nhttps://creativecommons.org/licenses/by-sa/4.0/\n"
	if err := os.WriteFile(filepath.Join(outDir, "DATA_LICENSE.txt"), []byte(dataLicense), 0o644); err != nil {
		return fmt.Errorf("failed to write data license: %w", err)
	}
	return nil
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		return readZipFile(file)
	}
	return nil, fmt.Errorf("license file not found in wheel")
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return data, nil
}
