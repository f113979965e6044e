package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/pricing"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// TableHandler groups the table repository for admin CRUD and the
// booking service for the public availability listing.
type TableHandler struct {
	Tables *repository.TableRepo
	Svc    *booking.Service
}

// NewTableHandler constructs a TableHandler and panics on nil deps.
func NewTableHandler(tables *repository.TableRepo, svc *booking.Service) *TableHandler {
	if tables == nil || svc == nil {
		panic("nil dependency passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables, Svc: svc}
}

// tableReq is the admin create/update body.  Pointer fields distinguish
// "absent" from zero values so updates can be partial.
type tableReq struct {
	TableNumber   *uint32          `json:"table_number"`
	Seats         *uint32          `json:"seats"`
	IsAvailable   *bool            `json:"is_available"`
	Location      *model.Location  `json:"location"`
	Images        []string         `json:"images"`
	FoodTypes     []string         `json:"food_types"`
	FoodMenu      []model.MenuItem `json:"food_menu"`
	TableClass    *string          `json:"table_class"`
	ClassFeatures []string         `json:"class_features"`
	Price         *int64           `json:"price"`
	Offers        []model.Offer    `json:"offers"`
	Notes         *string          `json:"notes"`
}

// CreateTable handles POST /v1/admin/tables.  Admin only.
func (h *TableHandler) CreateTable(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableNumber == nil || *req.TableNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number is required"})
	}
	if req.Seats == nil || *req.Seats == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
	}

	t := model.Table{
		TableNumber:   *req.TableNumber,
		Seats:         *req.Seats,
		IsAvailable:   true,
		Location:      req.Location,
		Images:        req.Images,
		FoodTypes:     req.FoodTypes,
		FoodMenu:      req.FoodMenu,
		TableClass:    model.TableClassGeneral,
		ClassFeatures: req.ClassFeatures,
		Offers:        req.Offers,
	}
	if req.IsAvailable != nil {
		t.IsAvailable = *req.IsAvailable
	}
	if req.TableClass != nil {
		cls := strings.TrimSpace(*req.TableClass)
		if !model.ValidTableClass(cls) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table_class"})
		}
		t.TableClass = cls
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		t.Price = *req.Price
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if msg := validateOffers(t.Offers); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Tables.Create(c.Request().Context(), &t); err != nil {
		if errors.Is(err, repository.ErrTableNumberExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"table": t})
}

// UpdateTable handles PATCH /v1/admin/tables/:id.  It loads the current
// record, applies only the supplied fields and saves the result.
func (h *TableHandler) UpdateTable(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	t, err := h.Tables.FindTable(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if req.TableNumber != nil {
		if *req.TableNumber == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number must be positive"})
		}
		t.TableNumber = *req.TableNumber
	}
	if req.Seats != nil {
		if *req.Seats == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats must be positive"})
		}
		t.Seats = *req.Seats
	}
	if req.IsAvailable != nil {
		t.IsAvailable = *req.IsAvailable
	}
	if req.Location != nil {
		t.Location = req.Location
	}
	if req.Images != nil {
		t.Images = req.Images
	}
	if req.FoodTypes != nil {
		t.FoodTypes = req.FoodTypes
	}
	if req.FoodMenu != nil {
		t.FoodMenu = req.FoodMenu
	}
	if req.TableClass != nil {
		cls := strings.TrimSpace(*req.TableClass)
		if !model.ValidTableClass(cls) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table_class"})
		}
		t.TableClass = cls
	}
	if req.ClassFeatures != nil {
		t.ClassFeatures = req.ClassFeatures
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		t.Price = *req.Price
	}
	if req.Offers != nil {
		if msg := validateOffers(req.Offers); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		t.Offers = req.Offers
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if err := h.Tables.Update(ctx, &t); err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNumberExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already exists"})
		case errors.Is(err, booking.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"table": t})
}

// DeleteTable handles DELETE /v1/admin/tables/:id.
func (h *TableHandler) DeleteTable(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if err := h.Tables.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, booking.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		// FK RESTRICT: a table with bookings cannot be removed.
		return c.JSON(http.StatusConflict, echo.Map{"error": "table has bookings"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTables handles GET /v1/tables.  It returns every table annotated
// with a free/busy flag for the slot starting at ?at= (RFC3339,
// default now).  With ?menu=true the response also carries each
// table's menu filtered to what is servable at that instant; ?veg=
// further restricts it to vegetarian or non-vegetarian items.  The
// availability flags are derived fresh on every call.
func (h *TableHandler) ListTables(c echo.Context) error {
	at := time.Now().UTC()
	if s := c.QueryParam("at"); s != "" {
		p, err := parseTimeParam(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "at must be RFC3339"})
		}
		at = *p
	}

	items, err := h.Svc.Snapshot(c.Request().Context(), at)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}

	if c.QueryParam("menu") == "true" || c.QueryParam("veg") != "" {
		var veg *bool
		switch c.QueryParam("veg") {
		case "true":
			v := true
			veg = &v
		case "false":
			v := false
			veg = &v
		case "":
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "veg must be true or false"})
		}
		for i := range items {
			items[i].FilteredMenu = pricing.FilterMenu(items[i].FoodMenu, veg, at)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"at": at.Format(time.RFC3339), "items": items})
}

// GetTable handles GET /v1/tables/:id.  Static detail only, safe to
// serve from the response cache.
func (h *TableHandler) GetTable(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	t, err := h.Tables.FindTable(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"table": t})
}

// validateOffers returns a message when an offer is malformed, empty
// string otherwise.
func validateOffers(offers []model.Offer) string {
	for _, o := range offers {
		if strings.TrimSpace(o.Title) == "" {
			return "offer title is required"
		}
		if o.DiscountPercent < 0 || o.DiscountPercent > 100 {
			return "discount_percent must be between 0 and 100"
		}
		if o.ValidFrom != nil && o.ValidTo != nil && o.ValidTo.Before(*o.ValidFrom) {
			return "offer valid_to must not precede valid_from"
		}
	}
	return ""
}
