// Package httpapi is thin glue over the core: decode, delegate, map
// the error taxonomy onto status codes. No business rules live here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/domain"
	"github.com/launchpad/bookstore/internal/observability"
	"github.com/launchpad/bookstore/internal/pricing"
)

//go:generate mockgen -source httpapi.go -destination=httpapi_mock_test.go -package=httpapi

type Catalog interface {
	GetAll(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id int64) (domain.Book, bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetPaginated(ctx context.Context, pageNumber, pageSize int) ([]domain.Book, int64, error)
	Add(ctx context.Context, b *domain.Book) error
	Update(ctx context.Context, b domain.Book) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Orders interface {
	Create(ctx context.Context, items []pricing.LineInput, discountPercent decimal.Decimal) (*domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, bool, error)
}

type Reports interface {
	ListOrders(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error)
	Summarize(ctx context.Context, from, to *time.Time) (domain.OrderSummary, error)
	TopItems(ctx context.Context, limit int) ([]domain.TopItem, error)
}

type Server struct {
	catalog Catalog
	orders  Orders
	reports Reports
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(catalog Catalog, orders Orders, reports Reports, logger *zap.Logger, metrics observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	s := &Server{
		catalog: catalog,
		orders:  orders,
		reports: reports,
		logger:  logger,
		metrics: metrics,
	}
	r := chi.NewRouter()
	r.Use(ServerTiming(metrics))
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.listBooks)
			r.Get("/all", s.allBooks)
			r.Post("/", s.createBook)
			r.Get("/{id}", s.getBook)
			r.Head("/{id}", s.headBook)
			r.Put("/{id}", s.updateBook)
			r.Delete("/{id}", s.deleteBook)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Get("/summary", s.orderSummary)
			r.Get("/top-items", s.topItems)
			r.Get("/{id}", s.getOrder)
		})
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

type paginatedBooks struct {
	Items      []domain.Book `json:"items"`
	TotalCount int64         `json:"total_count"`
	PageNumber int           `json:"page_number"`
	PageSize   int           `json:"page_size"`
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "pageNumber", 1)
	size := queryInt(r, "pageSize", 10)

	books, total, err := s.catalog.GetPaginated(r.Context(), page, size)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, paginatedBooks{
		Items:      books,
		TotalCount: total,
		PageNumber: page,
		PageSize:   size,
	})
}

func (s *Server) allBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalog.GetAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	book, found, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) headBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	exists, err := s.catalog.Exists(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if !decodeBody(w, r, &book) {
		return
	}
	if err := book.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.catalog.Add(r.Context(), &book); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var book domain.Book
	if !decodeBody(w, r, &book) {
		return
	}
	book.ID = id
	if err := book.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	found, err := s.catalog.Update(r.Context(), book)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := s.catalog.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createOrderRequest struct {
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Items           []pricing.LineInput `json:"items"`
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := s.orders.Create(r.Context(), req.Items, req.DiscountPercent)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, found, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "pageNumber", 1)
	size := queryInt(r, "pageSize", 10)

	orders, err := s.reports.ListOrders(r.Context(), page, size)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) orderSummary(w http.ResponseWriter, r *http.Request) {
	from, ok := queryTime(w, r, "fromDate")
	if !ok {
		return
	}
	to, ok := queryTime(w, r, "toDate")
	if !ok {
		return
	}
	summary, err := s.reports.Summarize(r.Context(), from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) topItems(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 5)
	items, err := s.reports.TopItems(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.TopItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryTime(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		http.Error(w, key+" must be RFC3339", http.StatusBadRequest)
		return nil, false
	}
	return &t, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
