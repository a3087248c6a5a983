// Package export renders order history as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/MikeMC777/bebidas-delivery/internal/order"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"Pedido", "Data", "Hora", "Cliente", "Telefone", "Tipo", "Endereço",
	"Itens", "Total", "Status", "Observações", "Criado em",
}

func describeItems(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = it.ProductID
		}
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, name))
	}
	return strings.Join(parts, ", ")
}

// Orders writes one row per order to an .xlsx workbook.
func Orders(w io.Writer, orders []order.Detail) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Pedidos")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt64(o.OrderNumber)
		row.AddCell().SetValue(o.Date)
		row.AddCell().SetValue(o.Time)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(string(o.Type))
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(describeItems(o.Items))
		total, err := decimal.NewFromString(o.Total)
		if err != nil {
			total = decimal.Zero
		}
		row.AddCell().SetFloat(total.InexactFloat64())
		row.AddCell().SetValue(o.StatusView.Label)
		row.AddCell().SetValue(o.Notes)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
