package handlers

import (
	"fmt"
	"time"

	"catalog-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportPageSize = 500

var exportColumns = []struct {
	header string
	width  float64
}{
	{"ID", 10},
	{"Title", 40},
	{"Slug", 40},
	{"SKU", 20},
	{"MRP", 12},
	{"Price", 12},
	{"Discounted Price", 18},
	{"Total Stock", 12},
	{"Low Stock Threshold", 20},
	{"Active", 10},
	{"Created At", 22},
}

// buildProductsWorkbook renders one row per product under a styled header row
func buildProductsWorkbook(products []models.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, col.width)
	}

	for r, p := range products {
		row := []interface{}{
			p.ID,
			p.Title,
			p.Slug,
			p.SKU,
			p.MRP.StringFixed(2),
			p.Price.StringFixed(2),
			p.DiscountedPrice.StringFixed(2),
			p.TotalStock,
			p.LowStockThreshold,
			p.Active,
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

// ExportProducts godoc
// @Summary Export products as XLSX
// @Description Accepts the same filters as the product list and returns every matching product
// @Tags products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /products/export [get]
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	params.Limit = exportPageSize

	var all []models.Product
	for params.Page = 1; ; params.Page++ {
		page, total, err := h.products.ListProducts(c.Request.Context(), params)
		if err != nil {
			respondError(c, err)
			return
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			break
		}
	}

	f, err := buildProductsWorkbook(all)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	f.Write(c.Writer)
}
