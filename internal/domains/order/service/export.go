package service

import (
	"fmt"

	"storefront-backend/internal/domains/order/model"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet  = "Pedidos"
	summarySheet = "Resumo"
)

var orderHeaders = []string{
	"Pedido",
	"Data",
	"Cliente",
	"E-mail",
	"Cidade",
	"UF",
	"Itens",
	"Subtotal",
	"Desconto",
	"Frete",
	"Total",
	"Cupom",
	"Envio",
	"Pagamento",
	"Status",
}

// BuildOrdersWorkbook renders the orders sheet and a summary sheet
func BuildOrdersWorkbook(orders []model.OrderListItem, summary *model.SalesSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	// Row 1: Header
	for colIdx, header := range orderHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(ordersSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
		f.SetCellStyle(ordersSheet, "A1", lastHeader, headerStyle)
	}

	moneyFmt := "#,##0.00"
	moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})

	// Data rows from row 2
	for i, o := range orders {
		row := []interface{}{
			o.OrderID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.CustomerName,
			o.CustomerEmail,
			o.City,
			o.State,
			o.ItemCount,
			o.Subtotal.InexactFloat64(),
			o.Discount.InexactFloat64(),
			o.ShippingCost.InexactFloat64(),
			o.Total.InexactFloat64(),
			o.CouponCode,
			o.ShippingOption,
			o.PaymentMethod,
			o.PaymentStatus,
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ordersSheet, start, &row); err != nil {
			return nil, fmt.Errorf("failed to write order row: %w", err)
		}
	}
	if len(orders) > 0 && moneyStyle != 0 {
		last, _ := excelize.CoordinatesToCellName(11, len(orders)+1)
		f.SetCellStyle(ordersSheet, "H2", last, moneyStyle)
	}

	if summary != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, fmt.Errorf("failed to create summary sheet: %w", err)
		}
		rows := [][]interface{}{
			{"Período", summary.From.Format("2006-01-02") + " a " + summary.To.AddDate(0, 0, -1).Format("2006-01-02")},
			{"Pedidos", summary.Orders},
			{"Itens vendidos", summary.ItemsSold},
			{"Receita", summary.Revenue.InexactFloat64()},
			{"Descontos", summary.Discounts.InexactFloat64()},
			{"Ticket médio", summary.AverageTicket.InexactFloat64()},
			{"Pedidos com cupom", summary.CouponOrders},
		}
		for i, r := range rows {
			start, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(summarySheet, start, &r); err != nil {
				return nil, fmt.Errorf("failed to write summary row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
