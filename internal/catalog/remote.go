package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

// Source tells where a CodeTable came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceBuiltin Source = "builtin"
)

// Endpoints holds the URLs of the four code endpoints.
type Endpoints struct {
	DisplayTypes string
	Themes       string
	Locations    string
	Templates    string
}

// Configured reports whether every endpoint has a URL.
func (e Endpoints) Configured() bool {
	return e.DisplayTypes != "" && e.Themes != "" && e.Locations != "" && e.Templates != ""
}

type codeResponse struct {
	Success  bool        `json:"success"`
	CodeList []CodeEntry `json:"codeList"`
}

const maxResponseBytes = 1 << 20

// Loader fetches code tables once and falls back to Builtin on any failure.
type Loader struct {
	endpoints Endpoints
	client    *http.Client
	log       *logger.Logger
}

// NewLoader creates a Loader. A nil client gets a 10 second timeout.
func NewLoader(endpoints Endpoints, client *http.Client, log *logger.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{endpoints: endpoints, client: client, log: log.Component("catalog_loader")}
}

// Load returns the remote code table, or Builtin when any endpoint is
// unconfigured or unusable. There is no partial fallback and no retry.
func (l *Loader) Load(ctx context.Context) (CodeTable, Source) {
	table, err := l.fetchAll(ctx)
	if err != nil {
		l.log.Warn("using builtin code table", "error", err.Error())
		return Builtin(), SourceBuiltin
	}
	l.log.Debug("loaded remote code table",
		"display_types", len(table.DisplayTypes),
		"themes", len(table.Themes),
		"locations", len(table.Locations),
		"templates", len(table.Templates))
	return table, SourceRemote
}

func (l *Loader) fetchAll(ctx context.Context) (CodeTable, error) {
	if !l.endpoints.Configured() {
		return CodeTable{}, qdxerrors.NewRemoteLoadError("all", "", errors.New("endpoints not configured"))
	}

	var table CodeTable
	targets := []struct {
		name string
		url  string
		dst  *[]CodeEntry
	}{
		{"display_types", l.endpoints.DisplayTypes, &table.DisplayTypes},
		{"themes", l.endpoints.Themes, &table.Themes},
		{"locations", l.endpoints.Locations, &table.Locations},
		{"templates", l.endpoints.Templates, &table.Templates},
	}
	for _, target := range targets {
		codes, err := l.fetch(ctx, target.url)
		if err != nil {
			return CodeTable{}, qdxerrors.NewRemoteLoadError(target.name, target.url, err)
		}
		*target.dst = codes
	}
	return table, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]CodeEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var decoded codeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if !decoded.Success {
		return nil, errors.New("endpoint reported success=false")
	}
	if len(decoded.CodeList) == 0 {
		return nil, errors.New("empty codeList")
	}
	for i, entry := range decoded.CodeList {
		if strings.TrimSpace(entry.Code) == "" {
			return nil, fmt.Errorf("codeList[%d] has no code", i)
		}
	}
	return decoded.CodeList, nil
}
