package payments

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

func TestBuildSplitPaymentsCoversOrderTotals(t *testing.T) {
	t.Parallel()

	collectionID := uuid.New()
	orders := []models.SellerOrder{
		{
			ID:       uuid.New(),
			Currency: enums.CurrencyUSD,
			Items: []models.OrderLineItem{
				{ItemTotal: decimal.NewFromInt(1000)},
				{ItemTotal: decimal.NewFromInt(250)},
			},
			ShippingMethods: []models.OrderShippingMethod{
				{Amount: decimal.NewFromInt(100)},
			},
		},
		{
			ID:       uuid.New(),
			Currency: enums.CurrencyUSD,
			Items: []models.OrderLineItem{
				{ItemTotal: decimal.NewFromInt(500)},
			},
			ShippingMethods: []models.OrderShippingMethod{
				{Amount: decimal.NewFromInt(50)},
			},
		},
	}

	payments := BuildSplitPayments(orders, collectionID)
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}

	sum := decimal.Zero
	for i, payment := range payments {
		if payment.OrderID != orders[i].ID {
			t.Fatalf("payment %d bound to wrong order", i)
		}
		if payment.PaymentCollectionID != collectionID {
			t.Fatalf("payment %d has wrong collection", i)
		}
		if payment.Status != enums.SplitPaymentStatusPending {
			t.Fatalf("payment %d status = %s", i, payment.Status)
		}
		sum = sum.Add(payment.AuthorizedAmount)
	}

	if !payments[0].AuthorizedAmount.Equal(decimal.NewFromInt(1350)) {
		t.Fatalf("first authorized amount = %s", payments[0].AuthorizedAmount)
	}
	if !sum.Equal(decimal.NewFromInt(1900)) {
		t.Fatalf("authorized sum = %s, want 1900", sum)
	}
}

func TestBuildSplitPaymentsEmpty(t *testing.T) {
	t.Parallel()

	if payments := BuildSplitPayments(nil, uuid.New()); len(payments) != 0 {
		t.Fatalf("expected no payments, got %d", len(payments))
	}
}
