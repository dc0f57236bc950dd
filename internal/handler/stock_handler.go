package handler

import (
	"time"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/internal/service"
	"go-stock-management/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) GetStocks(c *fiber.Ctx) error {
	p := pagination.FromRequest(c)

	var f repository.StockFilter
	f.SearchKey = c.Query("searchKey")
	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid startDate"})
		}
		f.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid endDate"})
		}
		f.EndDate = &t
	}

	stocks, total, err := h.service.GetAll(c.Context(), p.Skip, p.Limit, f)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"stocks":     stocks,
		"pagination": pagination.NewMeta(p, total),
	})
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	stock, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

func (h *StockHandler) GetStockByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	stock, err := h.service.GetByProductID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// UpdateStock is the direct administrative quantity override.
func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	var input model.UpdateStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	stock, err := h.service.UpdateQuantity(c.Context(), id, &input, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": stock})
}

type markReturnedRequest struct {
	ReturnDate *time.Time `json:"return_date"`
}

// MarkTransactionReturned re-types a stock-out transaction to RETURNED,
// releasing its reserved units back into the ledger.
func (h *StockHandler) MarkTransactionReturned(c *fiber.Ctx) error {
	transactionID, err := parseUUID(c.Params("transactionId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req markReturnedRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	returnDate := time.Now()
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}

	tx, err := h.service.MarkTransactionReturned(c.Context(), transactionID, returnDate, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction marked as returned", "data": tx})
}
