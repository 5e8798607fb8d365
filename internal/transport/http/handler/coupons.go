package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-shop-api/internal/application/coupon"
	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/validate"
)

// CouponHandler handles admin coupon CRUD and the public apply check.
type CouponHandler struct {
	svc coupon.Service
}

func NewCouponHandler(svc coupon.Service) *CouponHandler { return &CouponHandler{svc: svc} }

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, cursor := parseCursorPage(r)
	coupons, next, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	if coupons == nil {
		coupons = []domain.Coupon{}
	}
	writeJSON(w, http.StatusOK, PageEnvelope{Data: coupons, NextCursor: next})
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "code"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "coupon deleted"})
}

// Apply checks a coupon against the caller's cart and returns the discount.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req coupon.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Apply(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
