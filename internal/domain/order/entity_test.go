package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []Status{StatusOrderPlaced, StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered} {
		assert.True(t, IsValidStatus(s), string(s))
	}
	assert.False(t, IsValidStatus("Cancelled"))
	assert.False(t, IsValidStatus(""))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"forward step", StatusOrderPlaced, StatusPacking, true},
		{"skip ahead", StatusOrderPlaced, StatusDelivered, true},
		{"same status", StatusShipped, StatusShipped, true},
		{"backward", StatusShipped, StatusPacking, false},
		{"delivered back to placed", StatusDelivered, StatusOrderPlaced, false},
		{"unknown from", "Cancelled", StatusPacking, false},
		{"unknown to", StatusPacking, "Cancelled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestComputeAmount(t *testing.T) {
	items := []Item{
		{Price: 25, Quantity: 2},
		{Price: 10, Quantity: 3},
	}
	assert.Equal(t, int64(25*2+10*3+10), ComputeAmount(items, 10))
	assert.Equal(t, int64(10), ComputeAmount(nil, 10), "empty items still carry the delivery fee")
}

func TestAddressValidate(t *testing.T) {
	valid := Address{
		FirstName: "Ada", LastName: "Lovelace", Street: "1 Analytical Way",
		City: "London", State: "LDN", Country: "UK", Zipcode: "E1 6AN", Phone: "555-0100",
	}
	require.NoError(t, valid.Validate())

	t.Run("email is optional", func(t *testing.T) {
		a := valid
		a.Email = ""
		assert.NoError(t, a.Validate())
	})

	t.Run("each structural field is required", func(t *testing.T) {
		mutations := []func(*Address){
			func(a *Address) { a.FirstName = "" },
			func(a *Address) { a.LastName = "" },
			func(a *Address) { a.Street = "" },
			func(a *Address) { a.City = "" },
			func(a *Address) { a.State = "" },
			func(a *Address) { a.Country = "" },
			func(a *Address) { a.Zipcode = "" },
			func(a *Address) { a.Phone = "" },
		}
		for _, mutate := range mutations {
			a := valid
			mutate(&a)
			assert.Error(t, a.Validate())
		}
	})
}

func TestPlaceOrderRequestValidate(t *testing.T) {
	validAddress := Address{
		FirstName: "Ada", LastName: "Lovelace", Street: "1 Analytical Way",
		City: "London", State: "LDN", Country: "UK", Zipcode: "E1 6AN", Phone: "555-0100",
	}

	t.Run("rejects empty items", func(t *testing.T) {
		req := PlaceOrderRequest{Address: validAddress}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects missing color", func(t *testing.T) {
		req := PlaceOrderRequest{
			Items:   []ItemRequest{{ProductID: 1, Name: "Tee", Quantity: 1}},
			Address: validAddress,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		req := PlaceOrderRequest{
			Items:   []ItemRequest{{ProductID: 1, Name: "Tee", Color: "Black", Quantity: 0}},
			Address: validAddress,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("accepts a complete request", func(t *testing.T) {
		req := PlaceOrderRequest{
			Items:   []ItemRequest{{ProductID: 1, Name: "Tee", Color: "Black", Quantity: 2, Price: 25}},
			Address: validAddress,
		}
		assert.NoError(t, req.Validate())
	})
}

func TestFlattenForUser(t *testing.T) {
	placed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	orders := []Order{
		{
			ID:            2,
			Status:        StatusShipped,
			Payment:       true,
			PaymentMethod: PaymentMethodStripe,
			CreatedAt:     placed.Add(24 * time.Hour),
			Items: []Item{
				{ProductID: 10, Name: "Tee", Price: 25, Color: "Black", Quantity: 2},
				{ProductID: 11, Name: "Tote", Price: 18, Color: "Olive", Quantity: 1},
			},
		},
		{
			ID:               1,
			Status:           StatusDelivered,
			PaymentMethod:    PaymentMethodCOD,
			DeliveryEvidence: "/uploads/evidence/a.jpg",
			CreatedAt:        placed,
			Items: []Item{
				{ProductID: 12, Name: "Shoes", Price: 89, Color: "Grey", Quantity: 1},
			},
		},
	}

	rows := FlattenForUser(orders)
	require.Len(t, rows, 3)

	assert.Equal(t, uint(2), rows[0].OrderID)
	assert.Equal(t, "Tee", rows[0].Name)
	assert.Equal(t, StatusShipped, rows[0].Status)
	assert.True(t, rows[0].Payment)

	assert.Equal(t, "Tote", rows[1].Name)

	assert.Equal(t, uint(1), rows[2].OrderID)
	assert.Equal(t, "/uploads/evidence/a.jpg", rows[2].DeliveryEvidence)
	assert.Equal(t, PaymentMethodCOD, rows[2].PaymentMethod)
	assert.Equal(t, placed, rows[2].Date)
}

func TestItemLineTotal(t *testing.T) {
	item := Item{Price: 25, Quantity: 3}
	assert.Equal(t, int64(75), item.LineTotal())
}
