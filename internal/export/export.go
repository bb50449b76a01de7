package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"garastore/internal/model"

	"github.com/tealeg/xlsx"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const timeLayout = "2006-01-02 15:04:05"

var productHeaders = []string{
	"ID", "Name", "Slug", "Category", "Material", "Price",
	"CountInStock", "Rating", "NumReviews", "Image", "CreatedAt", "UpdatedAt",
}

var orderHeaders = []string{
	"ID", "User", "Items", "ItemsPrice", "ShippingPrice", "TaxPrice", "TotalPrice",
	"PaymentMethod", "Paid", "PaidAt", "Delivered", "DeliveredAt", "City", "Country", "CreatedAt",
}

// WriteProducts writes the product catalogue as a single-sheet workbook.
func WriteProducts(w io.Writer, products []model.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create products sheet: %w", err)
	}

	addHeader(sheet, productHeaders)

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Material)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetInt(p.CountInStock)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.NumReviews)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.CreatedAt.UTC().Format(timeLayout))
		row.AddCell().SetString(p.UpdatedAt.UTC().Format(timeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write products workbook: %w", err)
	}
	return nil
}

// WriteOrders writes the admin order list as a single-sheet workbook.
func WriteOrders(w io.Writer, orders []model.OrderSummary) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create orders sheet: %w", err)
	}

	addHeader(sheet, orderHeaders)

	for _, o := range orders {
		items := make([]string, 0, len(o.OrderItems))
		for _, item := range o.OrderItems {
			items = append(items, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}

		row := sheet.AddRow()
		row.AddCell().SetString(o.ID.String())
		row.AddCell().SetString(o.UserName)
		row.AddCell().SetString(strings.Join(items, ", "))
		row.AddCell().SetFloat(o.ItemsPrice)
		row.AddCell().SetFloat(o.ShippingPrice)
		row.AddCell().SetFloat(o.TaxPrice)
		row.AddCell().SetFloat(o.TotalPrice)
		row.AddCell().SetString(o.PaymentMethod)
		row.AddCell().SetString(yesNo(o.IsPaid))
		row.AddCell().SetString(formatOptional(o.PaidAt))
		row.AddCell().SetString(yesNo(o.IsDelivered))
		row.AddCell().SetString(formatOptional(o.DeliveredAt))
		row.AddCell().SetString(o.ShippingAddress.City)
		row.AddCell().SetString(o.ShippingAddress.Country)
		row.AddCell().SetString(o.CreatedAt.UTC().Format(timeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write orders workbook: %w", err)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
