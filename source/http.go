package source

import (
	"context"
	"net/url"
	"os"

	"github.com/miosa/window-table/client"
)

// HTTP fetches JSON rows from a URL. A bearer token is taken from
// WTABLE_TOKEN when set.
type HTTP struct {
	URL string

	host   string
	path   string
	client *client.Client
}

// NewHTTP returns a source for rawURL.
func NewHTTP(rawURL string) *HTTP {
	s := &HTTP{URL: rawURL, host: rawURL}
	base := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		s.host = u.Host
		s.path = u.RequestURI()
		u.Path, u.RawPath, u.RawQuery = "", "", ""
		base = u.String()
	}
	s.client = client.New(base)
	if tok := os.Getenv("WTABLE_TOKEN"); tok != "" {
		s.client.SetToken(tok)
	}
	return s
}

func (s *HTTP) Name() string { return s.URL }

func (s *HTTP) Load(ctx context.Context) (Dataset, error) {
	rows, err := s.client.FetchRows(ctx, s.path)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Name: s.host, Columns: columnsOf(rows), Rows: rows}, nil
}
