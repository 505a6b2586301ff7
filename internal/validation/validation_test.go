package validation

import (
	"testing"

	"victus-storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_CheckoutForm(t *testing.T) {
	form := model.CheckoutForm{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "555-0100",
		Address: "1 Dojo Way", City: "Austin", ZipCode: "78701", Country: "USA",
		CardNumber: "4111111111111111", CardName: "Jane Doe", ExpiryDate: "12/29", CVV: "123",
	}
	require.NoError(t, Struct(form))

	form.City = ""
	form.CVV = ""
	err := Struct(form)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	fields := verr.Fields()
	assert.Len(t, fields, 2)
	assert.Equal(t, "is required", fields["city"])
	assert.Equal(t, "is required", fields["cvv"])
	assert.Contains(t, verr.Error(), "field 'city' is required")
}

func TestStruct_CartItem(t *testing.T) {
	err := Struct(model.CartItem{VariantID: 0, ProductID: 3, Name: "Belt"})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), "variantId")
}

func TestStruct_CouponDiscountType(t *testing.T) {
	err := Struct(model.Coupon{Code: "X", DiscountType: "BOGO"})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be one of: PERCENTAGE FIXED", verr.Fields()["discountType"])
}
