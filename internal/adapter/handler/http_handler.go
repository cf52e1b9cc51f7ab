package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/core/service"
	"github.com/rl1809/points-ledger/internal/port"
)

type ctxKey string

const ctxSession ctxKey = "session"

const (
	ModeSale   = "sale"
	ModeReturn = "return"
)

// HTTPHandler exposes the tracker over HTTP. Login sessions live in the
// cache repository; carts are held in process memory only, keyed by
// session token, so a cart is never durable.
type HTTPHandler struct {
	tracker    *service.Tracker
	cache      port.CacheRepository
	logger     *slog.Logger
	sessionTTL time.Duration

	mu    sync.Mutex
	carts map[string]*sessionCart
}

type sessionCart struct {
	cart *domain.Cart
	mode string
}

func NewHTTPHandler(tracker *service.Tracker, cache port.CacheRepository, logger *slog.Logger, sessionTTL time.Duration) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{
		tracker:    tracker,
		cache:      cache,
		logger:     logger,
		sessionTTL: sessionTTL,
		carts:      make(map[string]*sessionCart),
	}
}

// Router wires up the HTTP API.
func (h *HTTPHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
	}))
	r.Use(h.requestLogger)

	r.Get("/health", h.health)

	r.Post("/api/login/worker", h.loginWorker)
	r.Post("/api/login/admin", h.loginAdmin)

	r.Group(func(pr chi.Router) {
		pr.Use(h.sessionMiddleware)

		pr.Post("/api/logout", h.logout)
		pr.Get("/api/products", h.listProducts)

		pr.Group(func(worker chi.Router) {
			worker.Use(h.requireWorker)
			worker.Get("/api/cart", h.getCart)
			worker.Post("/api/cart/items", h.addCartItem)
			worker.Put("/api/cart/items/{productID}", h.setCartItemQuantity)
			worker.Delete("/api/cart/items/{productID}", h.removeCartItem)
			worker.Delete("/api/cart", h.clearCart)
			worker.Put("/api/cart/mode", h.setCartMode)
			worker.Post("/api/confirm", h.confirm)
			worker.Get("/api/me/summary", h.mySummary)
		})

		pr.Group(func(admin chi.Router) {
			admin.Use(h.requireAdmin)
			admin.Get("/api/workers", h.listWorkers)
			admin.Post("/api/workers", h.createWorker)
			admin.Put("/api/workers/{id}", h.updateWorker)
			admin.Delete("/api/workers/{id}", h.deleteWorker)
			admin.Post("/api/products", h.createProduct)
			admin.Put("/api/products/{id}", h.updateProduct)
			admin.Delete("/api/products/{id}", h.deleteProduct)
			admin.Get("/api/transactions", h.listTransactions)
			admin.Get("/api/rankings", h.rankings)
			admin.Get("/api/stats", h.stats)
			admin.Get("/api/workers/{id}/summary", h.workerSummary)
		})
	})

	return r
}

func (h *HTTPHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware

func (h *HTTPHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func (h *HTTPHandler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		session, err := h.cache.GetSession(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		if session == nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(r *http.Request) *port.Session {
	session, _ := r.Context().Value(ctxSession).(*port.Session)
	return session
}

func (h *HTTPHandler) requireWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		if session == nil || session.WorkerID == "" {
			writeError(w, http.StatusForbidden, "worker session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *HTTPHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		if session == nil || !session.Admin {
			writeError(w, http.StatusForbidden, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Auth handlers

type loginRequest struct {
	PIN string `json:"pin"`
}

type workerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PIN       string    `json:"pin"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toWorkerResponse(w domain.Worker) workerResponse {
	return workerResponse{ID: w.ID, Name: w.Name, PIN: w.PIN, Active: w.Active, CreatedAt: w.CreatedAt}
}

type loginResponse struct {
	Token  string          `json:"token"`
	Worker *workerResponse `json:"worker,omitempty"`
}

func (h *HTTPHandler) loginWorker(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PIN == "" {
		writeError(w, http.StatusBadRequest, "pin is required")
		return
	}

	worker, err := h.tracker.LoginWorker(r.Context(), req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			writeError(w, http.StatusUnauthorized, "invalid pin")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token := uuid.NewString()
	if err := h.cache.SaveSession(r.Context(), token, port.Session{WorkerID: worker.ID}, h.sessionTTL); err != nil {
		writeError(w, http.StatusInternalServerError, "session store failed")
		return
	}

	// A fresh cart for the new login.
	h.mu.Lock()
	h.carts[token] = &sessionCart{cart: domain.NewCart(), mode: ModeSale}
	h.mu.Unlock()

	resp := toWorkerResponse(*worker)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Worker: &resp})
}

func (h *HTTPHandler) loginAdmin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PIN == "" {
		writeError(w, http.StatusBadRequest, "pin is required")
		return
	}

	if err := h.tracker.LoginAdmin(r.Context(), req.PIN); err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			writeError(w, http.StatusUnauthorized, "invalid pin")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token := uuid.NewString()
	if err := h.cache.SaveSession(r.Context(), token, port.Session{Admin: true}, h.sessionTTL); err != nil {
		writeError(w, http.StatusInternalServerError, "session store failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *HTTPHandler) logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if err := h.cache.DeleteSession(r.Context(), token); err != nil {
		h.logger.Warn("session delete failed", "error", err)
	}
	// Cart is destroyed on logout.
	h.mu.Lock()
	delete(h.carts, token)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Catalog handlers

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	Quantity  int       `json:"quantity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Points: p.Points, Quantity: p.Quantity, Active: p.Active, CreatedAt: p.CreatedAt}
}

func (h *HTTPHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r)
	var products []domain.Product
	if session.Admin {
		products = h.tracker.Products()
	} else {
		products = h.tracker.ActiveProducts()
	}
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

type productRequest struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Quantity int    `json:"quantity"`
}

func (h *HTTPHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Points < 0 {
		writeError(w, http.StatusBadRequest, "name and a non-negative points value are required")
		return
	}
	product, err := h.tracker.AddProduct(r.Context(), req.Name, req.Points, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to create product")
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(*product))
}

type productUpdateRequest struct {
	Name     *string `json:"name"`
	Points   *int    `json:"points"`
	Quantity *int    `json:"quantity"`
	Active   *bool   `json:"active"`
}

func (h *HTTPHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	update := port.ProductUpdate{Name: req.Name, Points: req.Points, Quantity: req.Quantity, Active: req.Active}
	if err := h.tracker.UpdateProduct(r.Context(), id, update); err != nil {
		writeError(w, http.StatusInternalServerError, "unable to update product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *HTTPHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "unable to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Worker administration handlers

func (h *HTTPHandler) listWorkers(w http.ResponseWriter, r *http.Request) {
	workers := h.tracker.Workers()
	out := make([]workerResponse, len(workers))
	for i, worker := range workers {
		out[i] = toWorkerResponse(worker)
	}
	writeJSON(w, http.StatusOK, out)
}

type workerRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

func (h *HTTPHandler) createWorker(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.PIN == "" {
		writeError(w, http.StatusBadRequest, "name and pin are required")
		return
	}
	worker, err := h.tracker.AddWorker(r.Context(), req.Name, req.PIN)
	if err != nil {
		if errors.Is(err, port.ErrDuplicatePIN) {
			writeError(w, http.StatusConflict, "pin already in use")
			return
		}
		writeError(w, http.StatusInternalServerError, "unable to create worker")
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerResponse(*worker))
}

type workerUpdateRequest struct {
	Name   *string `json:"name"`
	PIN    *string `json:"pin"`
	Active *bool   `json:"active"`
}

func (h *HTTPHandler) updateWorker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req workerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	update := port.WorkerUpdate{Name: req.Name, PIN: req.PIN, Active: req.Active}
	if err := h.tracker.UpdateWorker(r.Context(), id, update); err != nil {
		if errors.Is(err, port.ErrDuplicatePIN) {
			writeError(w, http.StatusConflict, "pin already in use")
			return
		}
		writeError(w, http.StatusInternalServerError, "unable to update worker")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *HTTPHandler) deleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.DeleteWorker(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "unable to delete worker")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Cart handlers

func (h *HTTPHandler) sessionCart(r *http.Request) *sessionCart {
	token := tokenFromRequest(r)
	h.mu.Lock()
	defer h.mu.Unlock()
	sc, ok := h.carts[token]
	if !ok {
		// Session restored after a restart: carts are memory-only.
		sc = &sessionCart{cart: domain.NewCart(), mode: ModeSale}
		h.carts[token] = sc
	}
	return sc
}

type cartItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Points      int    `json:"points"`
	Quantity    int    `json:"quantity"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total int                `json:"total"`
	Mode  string             `json:"mode"`
}

func toCartResponse(sc *sessionCart) cartResponse {
	items := sc.cart.Items()
	out := make([]cartItemResponse, len(items))
	for i, item := range items {
		out[i] = cartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Points:      item.Points,
			Quantity:    item.Quantity,
		}
	}
	return cartResponse{Items: out, Total: sc.cart.Total(), Mode: sc.mode}
}

func (h *HTTPHandler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(h.sessionCart(r)))
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *HTTPHandler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	product := h.tracker.ProductByID(req.ProductID)
	if product == nil || !product.Active {
		writeError(w, http.StatusNotFound, "product not found or inactive")
		return
	}
	sc := h.sessionCart(r)
	sc.cart.Add(*product)
	writeJSON(w, http.StatusOK, toCartResponse(sc))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *HTTPHandler) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc := h.sessionCart(r)
	sc.cart.SetQuantity(chi.URLParam(r, "productID"), req.Quantity)
	writeJSON(w, http.StatusOK, toCartResponse(sc))
}

func (h *HTTPHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	sc := h.sessionCart(r)
	sc.cart.Remove(chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, toCartResponse(sc))
}

func (h *HTTPHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	sc := h.sessionCart(r)
	sc.cart.Clear()
	writeJSON(w, http.StatusOK, toCartResponse(sc))
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

func (h *HTTPHandler) setCartMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode != ModeSale && req.Mode != ModeReturn {
		writeError(w, http.StatusBadRequest, "mode must be sale or return")
		return
	}
	sc := h.sessionCart(r)
	if sc.mode != req.Mode {
		// Switching modes discards the pending basket.
		sc.cart.Clear()
		sc.mode = req.Mode
	}
	writeJSON(w, http.StatusOK, toCartResponse(sc))
}

// Confirmation

type lineItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Points      int    `json:"points"`
}

type transactionResponse struct {
	ID          string             `json:"id"`
	WorkerID    string             `json:"worker_id"`
	Items       []lineItemResponse `json:"items"`
	TotalPoints int                `json:"total_points"`
	IsReturn    bool               `json:"is_return"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	items := make([]lineItemResponse, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = lineItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Points:      item.Points,
		}
	}
	return transactionResponse{
		ID:          tx.ID,
		WorkerID:    tx.WorkerID,
		Items:       items,
		TotalPoints: tx.TotalPoints,
		IsReturn:    tx.IsReturn,
		CreatedAt:   tx.CreatedAt,
	}
}

func (h *HTTPHandler) confirm(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r)

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		ok, err := h.cache.SetIdempotency(r.Context(), session.WorkerID+":"+key)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}
		if !ok {
			writeError(w, http.StatusConflict, "duplicate confirmation")
			return
		}
	}

	worker := h.tracker.WorkerByID(session.WorkerID)
	if worker == nil {
		writeError(w, http.StatusUnauthorized, "worker no longer exists")
		return
	}

	sc := h.sessionCart(r)

	var (
		tx  *domain.Transaction
		err error
	)
	if sc.mode == ModeReturn {
		tx, err = h.tracker.ConfirmReturn(r.Context(), worker, sc.cart)
	} else {
		tx, err = h.tracker.ConfirmSale(r.Context(), worker, sc.cart)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrNoWorker):
			writeError(w, http.StatusBadRequest, "no active worker")
		default:
			h.logger.Error("confirmation failed", "worker_id", worker.ID, "mode", sc.mode, "error", err)
			writeError(w, http.StatusInternalServerError, "confirmation failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*tx))
}

// Reporting handlers

func (h *HTTPHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ledger := h.tracker.Ledger()
	out := make([]transactionResponse, len(ledger))
	for i, tx := range ledger {
		out[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, out)
}

func parsePeriod(r *http.Request) (time.Month, int, error) {
	var (
		month time.Month
		year  int
	)
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errors.New("month must be 1-12")
		}
		month = time.Month(m)
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1000 || y > 9999 {
			return 0, 0, errors.New("year must be a 4-digit year")
		}
		year = y
	}
	return month, year, nil
}

type rankingResponse struct {
	Rank   int            `json:"rank"`
	Worker workerResponse `json:"worker"`
	Points int            `json:"points"`
	Salary int            `json:"salary"`
}

func (h *HTTPHandler) rankings(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := h.tracker.Rankings(month, year)
	out := make([]rankingResponse, len(entries))
	for i, entry := range entries {
		out[i] = rankingResponse{
			Rank:   i + 1,
			Worker: toWorkerResponse(entry.Worker),
			Points: entry.Points,
			Salary: entry.Salary,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type statsResponse struct {
	Month struct {
		Sales         int `json:"sales"`
		ProductsMoved int `json:"products_moved"`
		Points        int `json:"points"`
	} `json:"month"`
	Today struct {
		Sales         int `json:"sales"`
		ProductsMoved int `json:"products_moved"`
		Points        int `json:"points"`
	} `json:"today"`
}

func (h *HTTPHandler) stats(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	monthStats := h.tracker.Stats(month, year)
	todayStats := h.tracker.TodayStats()

	var resp statsResponse
	resp.Month.Sales = monthStats.Sales
	resp.Month.ProductsMoved = monthStats.ProductsMoved
	resp.Month.Points = monthStats.Points
	resp.Today.Sales = todayStats.Sales
	resp.Today.ProductsMoved = todayStats.ProductsMoved
	resp.Today.Points = todayStats.Points
	writeJSON(w, http.StatusOK, resp)
}

type summaryResponse struct {
	Points        int                   `json:"points"`
	Salary        int                   `json:"salary"`
	Sales         int                   `json:"sales"`
	ProductsMoved int                   `json:"products_moved"`
	Transactions  []transactionResponse `json:"transactions"`
}

func (h *HTTPHandler) writeSummary(w http.ResponseWriter, r *http.Request, workerID string) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary := h.tracker.SummaryFor(workerID, month, year)
	out := summaryResponse{
		Points:        summary.Points,
		Salary:        summary.Salary,
		Sales:         summary.Sales,
		ProductsMoved: summary.ProductsMoved,
		Transactions:  make([]transactionResponse, len(summary.Transactions)),
	}
	for i, tx := range summary.Transactions {
		out.Transactions[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) workerSummary(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, r, chi.URLParam(r, "id"))
}

func (h *HTTPHandler) mySummary(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, r, sessionFromContext(r).WorkerID)
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
