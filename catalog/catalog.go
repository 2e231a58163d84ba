// Package catalog is a read-only client for the external product catalog API.
// The catalog is not under our control; callers must treat failures as an
// upstream condition and never block correctness on it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CharlieNndwa/e-commerce-app-v2/errs"
)

const DefaultBaseURL = "https://api.escuelajs.co/api/v1"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Category struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Slug is the URL-friendly form of the category name.
func (c Category) Slug() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Name)), " ", "-")
}

type Product struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    Category `json:"category"`
}

// ProductQuery filters and paginates a catalog listing. Zero values are
// omitted from the request.
type ProductQuery struct {
	CategorySlug string
	Title        string
	MinPrice     float64
	MaxPrice     float64
	Limit        int
	Offset       int
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Products lists catalog products. A category slug is resolved to the
// upstream category id via a categories fetch first; an unknown slug just
// drops the filter rather than failing the listing.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	params := url.Values{}

	if q.CategorySlug != "" && q.CategorySlug != "allproducts" {
		categories, err := c.Categories(ctx)
		if err != nil {
			return nil, err
		}
		for _, cat := range categories {
			if cat.Slug() == q.CategorySlug {
				params.Set("categoryId", strconv.FormatUint(uint64(cat.ID), 10))
				break
			}
		}
	}

	if q.Title != "" {
		params.Set("title", q.Title)
	}
	if q.MinPrice > 0 {
		params.Set("price_min", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		params.Set("price_max", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	var products []Product
	if err := c.getJSON(ctx, "/products", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: catalog returned %d", errs.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding catalog response: %v", errs.ErrUpstream, err)
	}
	return nil
}
