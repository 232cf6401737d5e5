package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/repository"
)

const apiPrefix = "/wp-json/wc/v3"

// Client WooCommerce REST 目录适配器
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
}

var _ repository.ProductStore = (*Client)(nil)

// NewClient 创建适配器，baseURL 为店铺根地址
func NewClient(httpClient *http.Client, baseURL, consumerKey, consumerSecret string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
	}
}

// Query 拉取已发布商品，并按属性做不区分大小写的等值过滤
func (c *Client) Query(ctx context.Context, query repository.ProductQuery) ([]repository.CatalogProduct, error) {
	status := strings.TrimSpace(query.Status)
	if status == "" {
		status = constants.ProductStatusPublish
	}
	params := url.Values{}
	params.Set("status", status)
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}

	var products []wcProduct
	if err := c.get(ctx, "/products", params, &products); err != nil {
		return nil, err
	}

	result := make([]repository.CatalogProduct, 0, len(products))
	for _, p := range products {
		item := mapProduct(p)
		if !equalFoldOrEmpty(query.Genre, item.Genre) ||
			!equalFoldOrEmpty(query.Mood, item.Mood) ||
			!equalFoldOrEmpty(query.Key, item.Key) {
			continue
		}
		if query.WithVariations && len(item.VariationIDs) > 0 {
			variations, err := c.variations(ctx, item.ID)
			if err != nil {
				return nil, err
			}
			item.Variations = variations
		}
		result = append(result, item)
	}
	return result, nil
}

// GetByID 获取单个商品及其规格，404 返回 nil
func (c *Client) GetByID(ctx context.Context, id uint) (*repository.CatalogProduct, error) {
	var product wcProduct
	err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	item := mapProduct(product)
	if len(item.VariationIDs) > 0 {
		variations, err := c.variations(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.Variations = variations
	}
	return &item, nil
}

func (c *Client) variations(ctx context.Context, productID uint) ([]repository.CatalogVariation, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(constants.DefaultMaxPerPage))
	var raw []wcVariation
	if err := c.get(ctx, fmt.Sprintf("/products/%d/variations", productID), params, &raw); err != nil {
		return nil, err
	}
	result := make([]repository.CatalogVariation, 0, len(raw))
	for _, v := range raw {
		result = append(result, mapVariation(productID, v))
	}
	return result, nil
}

// StatusError 平台返回非 200 状态
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("woocommerce adapter: %s status %d", e.Path, e.StatusCode)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("woocommerce adapter: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("woocommerce adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Path: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("woocommerce adapter: %w", err)
	}
	return nil
}

func equalFoldOrEmpty(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}
