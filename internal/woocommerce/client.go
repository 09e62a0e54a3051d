package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/models"
)

var (
	ErrConfigInvalid = errors.New("woocommerce config invalid")
	ErrUnreachable   = errors.New("woocommerce unreachable")
	ErrTimeout       = errors.New("woocommerce request timeout")
	ErrDecode        = errors.New("woocommerce response decode failed")
)

// APIError 非 2xx 响应（协议层错误，区别于传输层不可达）
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("woocommerce api error: status=%d body=%s", e.Status, e.Body)
}

// 分页元数据响应头（dashboard 客户端约定；缺失时退回响应体计数）
const (
	headerTotal      = "X-WP-Total"
	headerTotalPages = "X-WP-TotalPages"
)

// Config 远端目录客户端配置
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// ProductQuery 商品列表查询参数
type ProductQuery struct {
	Page        int
	PageSize    int
	Search      string
	Category    string
	MinPrice    string
	MaxPrice    string
	Featured    *bool
	OnSale      *bool
	SortBy      string // date / price / rating / popularity / name
	Order       string // asc / desc
	StockStatus string
}

// CategoryQuery 分类列表查询参数
type CategoryQuery struct {
	Page      int
	PageSize  int
	HideEmpty bool
	Parent    *uint
	SortBy    string
	Order     string
}

// PageMeta 列表响应的分页元数据
type PageMeta struct {
	Total      int64
	TotalPages int64
}

// Client 远端目录客户端：无状态、无缓存、无重试，
// 只负责把查询翻译成一次 HTTP 请求并把响应映射为规范模型
type Client struct {
	config Config
	client *http.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: empty base url", ErrConfigInvalid)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// ListProducts 查询商品列表
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) ([]models.Product, PageMeta, error) {
	params := url.Values{}
	params.Set("status", "publish")
	params.Set("page", strconv.Itoa(normalizePage(query.Page)))
	params.Set("per_page", strconv.Itoa(normalizePageSize(query.PageSize)))
	if s := strings.TrimSpace(query.Search); s != "" {
		params.Set("search", s)
	}
	if s := strings.TrimSpace(query.Category); s != "" {
		params.Set("category", s)
	}
	if s := strings.TrimSpace(query.MinPrice); s != "" {
		params.Set("min_price", s)
	}
	if s := strings.TrimSpace(query.MaxPrice); s != "" {
		params.Set("max_price", s)
	}
	if query.Featured != nil {
		params.Set("featured", strconv.FormatBool(*query.Featured))
	}
	if query.OnSale != nil {
		params.Set("on_sale", strconv.FormatBool(*query.OnSale))
	}
	if s := strings.TrimSpace(query.StockStatus); s != "" {
		params.Set("stock_status", s)
	}
	params.Set("orderby", mapOrderBy(query.SortBy))
	params.Set("order", mapOrder(query.Order))

	body, header, err := c.get(ctx, "/products", params)
	if err != nil {
		return nil, PageMeta{}, err
	}

	var dtos []productDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, PageMeta{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	products := make([]models.Product, 0, len(dtos))
	for _, dto := range dtos {
		product, err := dto.toModel()
		if err != nil {
			return nil, PageMeta{}, err
		}
		products = append(products, product)
	}
	return products, parsePageMeta(header, len(products)), nil
}

// GetProduct 查询单个商品
func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	body, _, err := c.get(ctx, fmt.Sprintf("/products/%d", id), url.Values{})
	if err != nil {
		return nil, err
	}
	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	product, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories 查询分类列表
func (c *Client) ListCategories(ctx context.Context, query CategoryQuery) ([]models.Category, PageMeta, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(query.Page)))
	perPage := query.PageSize
	if perPage <= 0 {
		perPage = 100
	}
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("hide_empty", strconv.FormatBool(query.HideEmpty))
	if query.Parent != nil {
		params.Set("parent", strconv.FormatUint(uint64(*query.Parent), 10))
	}
	orderBy := strings.TrimSpace(query.SortBy)
	if orderBy == "" {
		orderBy = "name"
	}
	params.Set("orderby", orderBy)
	params.Set("order", mapOrder(query.Order))

	body, header, err := c.get(ctx, "/products/categories", params)
	if err != nil {
		return nil, PageMeta{}, err
	}
	var dtos []categoryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, PageMeta{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	categories := make([]models.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, dto.toModel())
	}
	return categories, parsePageMeta(header, len(categories)), nil
}

// get 执行一次带凭证的 GET 请求，把传输层失败归类为不可达/超时
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	// key/secret 以查询参数方式附带（移动端客户端的认证约定）
	params.Set("consumer_key", c.config.ConsumerKey)
	params.Set("consumer_secret", c.config.ConsumerSecret)

	requestURL := c.config.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, classifyTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{Status: resp.StatusCode, Body: truncateBody(body)}
	}
	return body, resp.Header, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

func parsePageMeta(header http.Header, bodyCount int) PageMeta {
	meta := PageMeta{Total: int64(bodyCount), TotalPages: 1}
	if header == nil {
		return meta
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(header.Get(headerTotal)), 10, 64); err == nil && v >= 0 {
		meta.Total = v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(header.Get(headerTotalPages)), 10, 64); err == nil && v > 0 {
		meta.TotalPages = v
	}
	return meta
}

func mapOrderBy(sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		return "price"
	case "rating":
		return "rating"
	case "popularity":
		return "popularity"
	case "name":
		return "title"
	default:
		return "date"
	}
}

func mapOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "asc"
	}
	return "desc"
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return 20
	}
	if pageSize > 100 {
		return 100
	}
	return pageSize
}

func truncateBody(body []byte) string {
	const limit = 512
	s := string(body)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
