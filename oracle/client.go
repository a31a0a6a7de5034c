// Package oracle provides price oracle adapters for the collateral ledger:
// an HTTP client for a remote price daemon, a static in-memory table, and a
// read-through cache decorator.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/vaultd/collateral"
)

// DefaultPricePath is the jsonpath locating the price in a daemon response
// like {"token":"TKA","price":"2.00000000"}.
const DefaultPricePath = "$.price"

// Client queries a price daemon over HTTP REST: GET <base>/price/<token>
// returns a JSON document holding the token's price in common value units
// per smallest token unit.
//
// The client sets no timeout of its own; deadlines travel through the
// caller's context, per the ledger's contract.
type Client struct {
	baseURL    string
	path       string // jsonpath into the response document
	httpClient *http.Client
}

// Compile-time interface check
var _ collateral.PriceOracle = (*Client)(nil)

// NewClient creates a price daemon client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       DefaultPricePath,
		httpClient: new(http.Client),
	}
}

// SetPricePath overrides the jsonpath used to locate the price in the
// daemon's response, for daemons with a different payload shape.
func (c *Client) SetPricePath(path string) { c.path = path }

// GetPrice implements collateral.PriceOracle.
func (c *Client) GetPrice(ctx context.Context, token string) (*big.Int, error) {
	addr := fmt.Sprintf("%s/price/%s", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build price request for %q: %w", token, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %v: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	// decode with UseNumber so prices never round-trip through float64.
	var jobj any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode price response for %q: %w", token, err)
	}

	jval, err := jsonpath.Get(c.path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing price for %q: %q %w", token, c.path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	rate, err := ParseRate(jval)
	if err != nil {
		return nil, fmt.Errorf("invalid price for %q: %w", token, err)
	}
	return rate, nil
}

// ParseRate converts a JSON price value (a string or a number) into an
// integer rate scaled by 10^RateDecimals. Prices finer than the rate scale
// or non-positive prices are rejected.
func ParseRate(v any) (*big.Int, error) {
	var d decimal.Decimal
	var err error
	switch t := v.(type) {
	case string:
		d, err = decimal.NewFromString(t)
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case decimal.Decimal:
		d = t
	default:
		return nil, fmt.Errorf("price is %T, not a string or a number", v)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse price %v: %w", v, err)
	}
	d = d.Shift(collateral.RateDecimals)
	if !d.IsInteger() {
		return nil, fmt.Errorf("price %v is finer than 1e-%d", v, collateral.RateDecimals)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("price %v is not positive", v)
	}
	return d.BigInt(), nil
}
