// Package fetch downloads the reference stations, assigns each one an
// organization from the registry and writes them as a sorted CSV.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/internal/sources/eims"
	"github.com/agentstation/stationmap/internal/transport"
	"github.com/agentstation/stationmap/internal/utils/atomicfile"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
	"github.com/agentstation/stationmap/pkg/stations"
)

// Result reports what a fetch wrote.
type Result struct {
	Path     string
	Records  []stations.Station
	Unmapped []string // work areas with no organization, sorted
}

// Fetcher retrieves the stations and writes the CSV.
type Fetcher struct {
	apiRoot         string
	credentials     string
	credentialsFile string
	output          string
	registry        *stations.Registry
	httpClient      *http.Client
	logger          *zerolog.Logger
	now             func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithAPIRoot sets the API root URL.
func WithAPIRoot(root string) Option {
	return func(f *Fetcher) { f.apiRoot = root }
}

// WithCredentials sets the credential string or bare token.
func WithCredentials(creds string) Option {
	return func(f *Fetcher) { f.credentials = creds }
}

// WithCredentialsFile sets the cached credentials file used when no
// credentials are given.
func WithCredentialsFile(path string) Option {
	return func(f *Fetcher) { f.credentialsFile = path }
}

// WithOutput sets the CSV path.
func WithOutput(path string) Option {
	return func(f *Fetcher) { f.output = path }
}

// WithRegistry sets the organization registry.
func WithRegistry(reg *stations.Registry) Option {
	return func(f *Fetcher) { f.registry = reg }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithLogger sets the logger. Without it the context logger is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithClock overrides the time used to check credential expiry.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		apiRoot: constants.DefaultAPIRoot,
		output:  constants.DefaultStationsCSV,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the stations URL the fetcher requests.
func (f *Fetcher) URL() string {
	return eims.StationsURL(f.root())
}

func (f *Fetcher) root() string {
	if strings.TrimSpace(f.apiRoot) == "" {
		return constants.DefaultAPIRoot
	}
	return f.apiRoot
}

// Run fetches, classifies and sorts the stations, then replaces the CSV.
// Nothing is written when the request or decoding fails.
func (f *Fetcher) Run(ctx context.Context) (*Result, error) {
	logger := f.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	ctx = logging.WithFields(logging.WithLogger(ctx, logger), map[string]any{
		"url":    f.URL(),
		"output": f.output,
	})
	logger = logging.FromContext(ctx)

	reg := f.registry
	if reg == nil {
		var err error
		if reg, err = stations.DefaultRegistry(); err != nil {
			return nil, err
		}
	}

	creds, err := transport.ResolveCredentials(f.credentials, f.credentialsFile, f.now())
	if err != nil {
		return nil, err
	}

	client := eims.NewClient(f.root(), creds, f.httpClient)
	records, err := client.Stations(ctx)
	if err != nil {
		return nil, err
	}

	unmapped := stations.Classify(records, reg)
	if len(unmapped) > 0 {
		logger.Warn().
			Strs("work_areas", unmapped).
			Int("count", len(unmapped)).
			Msg("Some work areas don't have a corresponding organization")
	}
	stations.Sort(records)

	if err := atomicfile.Write(f.output, func(w io.Writer) error {
		return stations.WriteCSV(w, records)
	}); err != nil {
		return nil, errors.WrapResource("write", "stations", f.output, err)
	}

	logger.Info().
		Int("stations", len(records)).
		Msg("Wrote stations")

	return &Result{Path: f.output, Records: records, Unmapped: unmapped}, nil
}
