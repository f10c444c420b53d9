package checkout

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/middleware"
)

// BrowserGateway opens the gateway's hosted checkout page in the user's
// browser and collects the outcome on a loopback callback server. The page
// posts exactly one of success, failure or dismiss per session; anything
// arriving after the first outcome is ignored.
type BrowserGateway struct {
	checkoutURL string
	origin      string
	port        int
	logger      *zap.Logger
	openURL     func(string) error

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
	pending  map[string]chan outcome
}

type outcome struct {
	result *Result
	err    error
}

// BrowserGatewayConfig configures the gateway integration.
type BrowserGatewayConfig struct {
	// CheckoutURL is the gateway's hosted checkout page.
	CheckoutURL string
	// Origin is the gateway origin allowed to post outcomes to the
	// loopback server.
	Origin string
	// CallbackPort is the loopback port. Zero picks a free port.
	CallbackPort int
	Logger       *zap.Logger
	// OpenURL overrides browser opening, for tests.
	OpenURL func(string) error
}

// NewBrowserGateway creates the gateway. The callback server is not bound
// until the first session needs it.
func NewBrowserGateway(cfg BrowserGatewayConfig) (*BrowserGateway, error) {
	checkoutURL := cfg.CheckoutURL
	if checkoutURL == "" {
		return nil, fmt.Errorf("checkout: CheckoutURL is required")
	}
	parsed, err := url.Parse(checkoutURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("checkout: CheckoutURL must be a valid absolute URL")
	}

	origin := cfg.Origin
	if origin == "" {
		origin = parsed.Scheme + "://" + parsed.Host
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	open := cfg.OpenURL
	if open == nil {
		open = browser.OpenURL
	}

	return &BrowserGateway{
		checkoutURL: checkoutURL,
		origin:      origin,
		port:        cfg.CallbackPort,
		logger:      logger,
		openURL:     open,
		pending:     make(map[string]chan outcome),
	}, nil
}

// EnsureReady binds the loopback callback server. Cheap no-op when already
// listening; a bind failure (port taken, no loopback) comes back as a
// descriptive error and the session never opens.
func (g *BrowserGateway) EnsureReady(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(g.port)))
	if err != nil {
		return fmt.Errorf("checkout: failed to bind callback address: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(g.logger))
	router.Use(middleware.CORSMiddleware(g.origin))
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/callback/success", g.handleSuccess)
	router.POST("/callback/failure", g.handleFailure)
	router.POST("/callback/dismiss", g.handleDismiss)

	g.listener = listener
	g.server = &http.Server{Handler: router}
	go func() {
		if err := g.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			g.logger.Error("Checkout callback server stopped", zap.Error(err))
		}
	}()

	g.logger.Info("Checkout callback server listening", zap.String("address", listener.Addr().String()))
	return nil
}

// Open implements Gateway. It builds the hosted page URL for the session,
// opens the browser, and blocks until the page reports an outcome or ctx
// expires.
func (g *BrowserGateway) Open(ctx context.Context, opts Options) (*Result, error) {
	if opts.OrderID == "" {
		return nil, fmt.Errorf("checkout: session requires an order id")
	}
	if err := g.EnsureReady(ctx); err != nil {
		return nil, err
	}

	ch := make(chan outcome, 1)
	g.mu.Lock()
	g.pending[opts.OrderID] = ch
	addr := g.listener.Addr().String()
	g.mu.Unlock()
	defer g.forget(opts.OrderID)

	pageURL := g.sessionURL(opts, "http://"+addr)
	if err := g.openURL(pageURL); err != nil {
		return nil, fmt.Errorf("checkout: failed to open checkout page: %w", err)
	}

	select {
	case o := <-ch:
		return o.result, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("checkout: session abandoned: %w", ctx.Err())
	}
}

// Close shuts the callback server down.
func (g *BrowserGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.server == nil {
		return nil
	}
	err := g.server.Close()
	g.server = nil
	g.listener = nil
	return err
}

// sessionURL serializes the session options onto the hosted page URL.
func (g *BrowserGateway) sessionURL(opts Options, callbackBase string) string {
	values := url.Values{}
	values.Set("key_id", opts.KeyID)
	values.Set("order_id", opts.OrderID)
	values.Set("amount", strconv.FormatInt(opts.Amount, 10))
	values.Set("currency", opts.Currency)
	values.Set("name", opts.Name)
	values.Set("description", opts.Description)
	values.Set("theme_color", opts.ThemeColor)
	values.Set("callback_url", callbackBase+"/callback")
	if opts.Prefill.Name != "" {
		values.Set("prefill_name", opts.Prefill.Name)
	}
	if opts.Prefill.Email != "" {
		values.Set("prefill_email", opts.Prefill.Email)
	}
	if opts.Prefill.Contact != "" {
		values.Set("prefill_contact", opts.Prefill.Contact)
	}
	return g.checkoutURL + "?" + values.Encode()
}

type successCallback struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (g *BrowserGateway) handleSuccess(c *gin.Context) {
	var body successCallback
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid success payload"})
		return
	}
	if !g.deliver(body.OrderID, outcome{result: &Result{
		OrderID:   body.OrderID,
		PaymentID: body.PaymentID,
		Signature: body.Signature,
	}}) {
		c.JSON(http.StatusGone, gin.H{"error": "unknown or settled session"})
		return
	}
	c.Status(http.StatusOK)
}

type failureCallback struct {
	OrderID     string `json:"order_id" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

func (g *BrowserGateway) handleFailure(c *gin.Context) {
	var body failureCallback
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid failure payload"})
		return
	}
	if !g.deliver(body.OrderID, outcome{err: &GatewayError{
		Code:        body.Code,
		Description: body.Description,
		Reason:      body.Reason,
	}}) {
		c.JSON(http.StatusGone, gin.H{"error": "unknown or settled session"})
		return
	}
	c.Status(http.StatusOK)
}

type dismissCallback struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (g *BrowserGateway) handleDismiss(c *gin.Context) {
	var body dismissCallback
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dismiss payload"})
		return
	}
	if !g.deliver(body.OrderID, outcome{err: ErrCanceled}) {
		c.JSON(http.StatusGone, gin.H{"error": "unknown or settled session"})
		return
	}
	c.Status(http.StatusOK)
}

// deliver hands the outcome to the waiting session. Outcomes for unknown or
// already-settled sessions are dropped and reported as such to the caller.
func (g *BrowserGateway) deliver(orderID string, o outcome) bool {
	g.mu.Lock()
	ch, ok := g.pending[orderID]
	if ok {
		delete(g.pending, orderID)
	}
	g.mu.Unlock()
	if !ok {
		g.logger.Warn("Dropping late checkout callback", zap.String("order_id", orderID))
		return false
	}
	ch <- o
	return true
}

func (g *BrowserGateway) forget(orderID string) {
	g.mu.Lock()
	delete(g.pending, orderID)
	g.mu.Unlock()
}
