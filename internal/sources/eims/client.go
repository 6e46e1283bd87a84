// Package eims reads reference stations from the Hakai EIMS "sites" view.
package eims

import (
	"context"
	"net/http"
	"strings"

	"github.com/agentstation/stationmap/internal/transport"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/logging"
	"github.com/agentstation/stationmap/pkg/stations"
)

// Client retrieves station records from the EIMS API.
type Client struct {
	APIRoot   string
	transport *transport.Client
}

// NewClient creates an EIMS client. An empty apiRoot uses
// constants.DefaultAPIRoot; a nil httpClient gets the default timeout.
func NewClient(apiRoot string, auth transport.Authenticator, httpClient *http.Client) *Client {
	if strings.TrimSpace(apiRoot) == "" {
		apiRoot = constants.DefaultAPIRoot
	}
	return &Client{
		APIRoot:   apiRoot,
		transport: transport.New(auth, httpClient),
	}
}

// StationsURL returns the URL listing every station.
func (c *Client) StationsURL() string {
	return StationsURL(c.APIRoot)
}

// StationsURL builds <apiRoot>/eims/views/output/sites?limit=-1. Trailing
// slashes on apiRoot are dropped.
func StationsURL(apiRoot string) string {
	return strings.TrimRight(apiRoot, "/") + "/" + constants.StationsEndpoint + "?" + constants.StationsQuery
}

// Stations fetches every station record in a single request.
func (c *Client) Stations(ctx context.Context) ([]stations.Station, error) {
	url := c.StationsURL()
	logging.FromContext(ctx).Info().Str("url", url).Msg("Getting stations")

	var records []stations.Station
	if err := c.transport.GetJSON(ctx, url, &records); err != nil {
		return nil, err
	}
	return records, nil
}
