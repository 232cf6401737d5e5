package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rarebeats-player/internal/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	productsPerPage = 100
	defaultVolume   = 0.7
)

// State 会话加载状态
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// PlaybackState 播放状态
type PlaybackState int

const (
	PlaybackStopped PlaybackState = iota
	PlaybackPlaying
	PlaybackPaused
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	default:
		return "stopped"
	}
}

// SkipDirection 切歌方向
type SkipDirection int

const (
	SkipNext SkipDirection = iota
	SkipPrev
)

// ErrCartEmpty 本地购物车为空时结账
var ErrCartEmpty = errors.New("cart is empty")

// SessionOptions 会话依赖，未提供时使用空实现
type SessionOptions struct {
	Player    AudioPlayer
	Notifier  Notifier
	Navigator Navigator
}

// Session 前台会话：目录、筛选、播放与购物车状态
type Session struct {
	mu        sync.Mutex
	api       *APIClient
	player    AudioPlayer
	notifier  Notifier
	navigator Navigator

	state    State
	products []Product
	visible  []Product
	facets   Facets
	filters  FilterState
	cart     Cart

	current  *Product
	playback PlaybackState
	position float64
	duration float64
	volume   float64

	selected map[string]Variation
}

// NewSession 创建会话
func NewSession(api *APIClient, opts SessionOptions) *Session {
	s := &Session{
		api:       api,
		player:    opts.Player,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		facets:    DefaultFacets(),
		cart:      Cart{Items: []CartItem{}},
		volume:    defaultVolume,
		selected:  map[string]Variation{},
	}
	if s.player == nil {
		s.player = NopPlayer{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	s.player.SetVolume(s.volume)
	return s
}

// Boot 并发加载商品、筛选项与购物车
func (s *Session) Boot(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		list, err := s.api.ListProducts(ctx, productsPerPage)
		if err != nil {
			logger.Warnw("storefront_load_products_failed", "error", err)
			s.notifier.Error("Failed to load beats")
			return fmt.Errorf("load products: %w", err)
		}
		s.mu.Lock()
		s.products = list.Products
		s.visible = s.filters.Apply(s.products)
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		facets, err := s.api.GetFilters(ctx)
		if err != nil {
			logger.Warnw("storefront_load_filters_failed", "error", err)
			return nil
		}
		s.mu.Lock()
		s.facets = *facets
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		if err := s.refreshCart(ctx); err != nil {
			logger.Warnw("storefront_load_cart_failed", "error", err)
		}
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	s.state = StateReady
	s.mu.Unlock()
	return err
}

// State 当前加载状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Products 全部已加载商品
func (s *Session) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.products...)
}

// Product 按ID查找已加载商品
func (s *Session) Product(id uint) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Facets 当前筛选项
func (s *Session) Facets() Facets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facets
}

// Filters 当前筛选条件
func (s *Session) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters 更新筛选条件并重算可见列表
func (s *Session) SetFilters(filters FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
	s.visible = filters.Apply(s.products)
}

// Visible 当前筛选后的商品
func (s *Session) Visible() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.visible...)
}

// Cart 最近一次拉取的购物车快照
func (s *Session) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Cart{Items: append([]CartItem(nil), s.cart.Items...), Total: s.cart.Total}
}

// CartCount 购物车行数
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart.Items)
}

// CartTotal 购物车合计（由快照行价求和）
func (s *Session) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.cart.Items {
		total = total.Add(item.Price)
	}
	return total
}

func (s *Session) refreshCart(ctx context.Context) error {
	cart, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	s.mu.Lock()
	s.cart = *cart
	s.mu.Unlock()
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}

func (nopNotifier) Error(string) {}
