package services

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptService renders PDF receipts for a user's orders
type ReceiptService struct {
	orders    *OrderService
	storeName string
}

func NewReceiptService(orders *OrderService, storeName string) *ReceiptService {
	return &ReceiptService{orders: orders, storeName: storeName}
}

// Receipt returns the PDF receipt of an order owned by userID
func (s *ReceiptService) Receipt(ctx context.Context, userID string, orderID uint) ([]byte, error) {
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.generatePDF(order)
}

func (s *ReceiptService) generatePDF(order *models.OrderView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	s.addHeader(m, order)
	s.addItems(m, order)
	s.addTotal(m, order)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (s *ReceiptService) addHeader(m core.Maroto, order *models.OrderView) {
	m.AddRow(20,
		col.New(6).Add(
			text.New(s.storeName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("RECEIPT", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}),
			text.New(fmt.Sprintf("Order # %d", order.ID), props.Text{Size: 10, Top: 8, Align: align.Right}),
		),
	)
	m.AddRow(5, line.NewCol(12))

	payment := "pay on delivery"
	if order.PaidWithWallet {
		payment = "wallet"
	}
	m.AddRow(14,
		col.New(6).Add(
			text.New(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{Size: 10, Align: align.Left}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Status: %s", order.Status), props.Text{Size: 10, Align: align.Right}),
			text.New(fmt.Sprintf("Payment: %s", payment), props.Text{Size: 10, Top: 5, Align: align.Right}),
		),
	)
}

func (s *ReceiptService) addItems(m core.Maroto, order *models.OrderView) {
	bold := func(label string, a align.Type) core.Component {
		return text.New(label, props.Text{Size: 10, Style: fontstyle.Bold, Align: a})
	}
	m.AddRow(8,
		col.New(6).Add(bold("Item", align.Left)),
		col.New(2).Add(bold("Qty", align.Center)),
		col.New(2).Add(bold("Price", align.Right)),
		col.New(2).Add(bold("Total", align.Right)),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range order.Items {
		m.AddRow(8,
			col.New(6).Add(text.New(item.ProductTitle, props.Text{Size: 9, Align: align.Left})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Center})),
			col.New(2).Add(text.New(item.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(item.LineTotal().StringFixed(2), props.Text{Size: 9, Align: align.Right})),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

func (s *ReceiptService) addTotal(m core.Maroto, order *models.OrderView) {
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(text.New("Total:", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(order.Total.StringFixed(2), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)
}
