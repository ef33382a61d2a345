package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ovenline/pizza-storefront/internal/catalog"
	"github.com/ovenline/pizza-storefront/internal/order"
	"github.com/ovenline/pizza-storefront/internal/report"
	"github.com/ovenline/pizza-storefront/internal/settings"
	"github.com/ovenline/pizza-storefront/internal/user"
)

// AdminHandler handles the back-office: CRUD over pizzas, orders,
// users, and settings, plus the analytics reports.
type AdminHandler struct {
	catalog  *catalog.Service
	orders   *order.Service
	users    user.Repository
	settings settings.Repository
	reports  report.Repository
}

func NewAdminHandler(
	c *catalog.Service,
	o *order.Service,
	u user.Repository,
	s settings.Repository,
	r report.Repository,
) *AdminHandler {
	return &AdminHandler{catalog: c, orders: o, users: u, settings: s, reports: r}
}

// --- pizzas ---

func (h *AdminHandler) CreatePizza(w http.ResponseWriter, r *http.Request) {
	var p catalog.Pizza
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if p.Name == "" || len(p.Sizes) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_pizza", "name and at least one size are required")
		return
	}

	created, err := h.catalog.Create(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdatePizza(w http.ResponseWriter, r *http.Request) {
	var p catalog.Pizza
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p.ID = chi.URLParam(r, "id")

	updated, err := h.catalog.Update(r.Context(), p)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "pizza_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeletePizza(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "pizza_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- orders ---

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f := order.ListFilter{Status: order.Status(r.URL.Query().Get("status"))}
	if f.Status != "" && !f.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		f.Limit = limit
	}

	orders, err := h.orders.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "order_error", err.Error())
		return
	}

	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrderToResponse(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, order.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "order_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(o))
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	status := order.Status(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	id := chi.URLParam(r, "id")
	err := h.orders.UpdateStatus(r.Context(), id, status, req.Note)
	if errors.Is(err, order.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "order_error", err.Error())
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "order_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(o))
}

// --- users ---

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "user_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "user_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if u.Name == "" || u.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_user", "name and email are required")
		return
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = user.RoleCustomer
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := h.users.Create(r.Context(), u); err != nil {
		writeError(w, http.StatusInternalServerError, "user_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	u.ID = chi.URLParam(r, "id")
	u.UpdatedAt = time.Now().UTC()

	err := h.users.Update(r.Context(), u)
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "user_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "user_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- settings ---

func (h *AdminHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.settings.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "settings_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *AdminHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	var s settings.Setting
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	s.Key = chi.URLParam(r, "key")

	if err := h.settings.Set(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "settings_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *AdminHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	err := h.settings.Delete(r.Context(), chi.URLParam(r, "key"))
	if errors.Is(err, settings.ErrNotFound) {
		writeError(w, http.StatusNotFound, "setting_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "settings_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- reports ---

func (h *AdminHandler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_days", "days must be a positive integer")
			return
		}
		days = parsed
	}

	rows, err := h.reports.RevenueByDay(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) StatusReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.OrdersByStatus(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) TopPizzasReport(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	rows, err := h.reports.TopPizzas(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
