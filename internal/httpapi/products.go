package httpapi

import (
	"errors"
	"net/http"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
	"github.com/felipemebarak500-lgtm/mebawear/internal/store"
)

// --------- DTOs ---------

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"` // minor currency units
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsAvailable bool   `json:"isAvailable"`
}

func toProductDTOs(in []models.Product) []productDTO {
	out := make([]productDTO, 0, len(in))
	for _, p := range in {
		out = append(out, productDTO{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			IsAvailable: p.IsAvailable,
		})
	}
	return out
}

type purchaseReq struct {
	ProductID string `json:"productId"`
}

// --------- Handlers ---------

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListAvailable(r.Context())
	if err != nil {
		s.log.Error("list products failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (s *Server) handleListAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListAll(r.Context())
	if err != nil {
		s.log.Error("list all products failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var in purchaseReq
	if err := decodeJSON(r, &in); err != nil || in.ProductID == "" {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := s.store.GetUser(r.Context(), sessionUserID(r))
	if errors.Is(err, store.ErrInvalidCredentials) {
		errorJSON(w, http.StatusUnauthorized, "Sesión no válida.")
		return
	} else if err != nil {
		s.log.Error("purchase user lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}

	rec, err := s.store.Purchase(r.Context(), in.ProductID, u.ID)
	switch {
	case err == nil:
		// fall through below
	case errors.Is(err, store.ErrProductNotFound):
		errorJSON(w, http.StatusNotFound, "Producto no encontrado.")
		return
	case errors.Is(err, store.ErrProductUnavailable):
		errorJSON(w, http.StatusBadRequest, "Este producto ya no está disponible.")
		return
	case errors.Is(err, store.ErrLostRace):
		errorJSON(w, http.StatusBadRequest, "Este producto ya fue comprado por otro usuario.")
		return
	default:
		s.log.Error("purchase failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Error interno.")
		return
	}

	// The purchase is committed; the notification must not affect it.
	if p, perr := s.store.GetProduct(r.Context(), rec.ProductID); perr == nil {
		s.notifier.PurchaseCompleted(r.Context(), u, p, rec.ID)
	} else {
		s.log.Error("notify skipped, product lookup failed", "error", perr)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"purchaseId": rec.ID,
		"message":    "Gracias por tu compra. Pronto el dueño de la tienda se pondrá en contacto contigo por WhatsApp.",
	})
}
