package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rarebeats-player/internal/constants"
)

// APIError 接口返回的错误体 {code, message, data:{status}}
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api: status %d", e.Status)
	}
	return fmt.Sprintf("storefront api: %s (%d): %s", e.Code, e.Status, e.Message)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

// APIClient 命名空间接口客户端
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	nonce      string
}

// NewAPIClient 创建客户端，baseURL 为命名空间完整地址
func NewAPIClient(httpClient *http.Client, baseURL, nonce string) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		nonce:      strings.TrimSpace(nonce),
	}
}

// ListProducts 商品列表
func (c *APIClient) ListProducts(ctx context.Context, perPage int) (*ProductList, error) {
	params := url.Values{}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}
	var out ProductList
	if err := c.do(ctx, http.MethodGet, "/products", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct 商品详情（含许可规格）
func (c *APIClient) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFilters 可用筛选项
func (c *APIClient) GetFilters(ctx context.Context) (*Facets, error) {
	var out Facets
	if err := c.do(ctx, http.MethodGet, "/filters", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCart 购物车快照
func (c *APIClient) GetCart(ctx context.Context) (*Cart, error) {
	var out Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart 加入购物车，返回新增行
func (c *APIClient) AddToCart(ctx context.Context, item AddCartItem) (*CartItem, error) {
	var out CartItem
	if err := c.do(ctx, http.MethodPost, "/cart", nil, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromCart 删除单行
func (c *APIClient) RemoveFromCart(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, nil, nil)
}

// ClearCart 清空购物车
func (c *APIClient) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, nil)
}

// Checkout 创建结账
func (c *APIClient) Checkout(ctx context.Context) (*CheckoutResult, error) {
	var out CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/checkout", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("storefront api: encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("storefront api: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.nonce != "" {
		req.Header.Set(constants.DefaultNonceHeader, c.nonce)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("storefront api: decode %s: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		if body.Data.Status > 0 {
			apiErr.Status = body.Data.Status
		}
	}
	return apiErr
}
