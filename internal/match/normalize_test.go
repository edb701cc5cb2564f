package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"FullName", "fullname"},
		{"full_name", "fullname"},
		{"full-name", "fullname"},
		{"fullName", "fullname"},
		{"FULL_NAME", "fullname"},
		{"XMLParser", "xmlparser"},
		{"getHTTPResponse", "gethttpresponse"},
		{"price_cents", "pricecents"},
		{"order_item-ID", "orderitemid"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestEqualIdent(t *testing.T) {
	assert.True(t, EqualIdent("CreatedAt", "created_at"))
	assert.True(t, EqualIdent("shipping-address", "ShippingAddress"))
	assert.False(t, EqualIdent("CreatedAt", "UpdatedAt"))
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"Order", "ID"}},
		{"customerName", []string{"customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"order_id", []string{"order", "id"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"shipping", "address", "id"}, TokenizeIdent("ShippingAddressID"))
	assert.Equal(t, []string{"line", "items"}, TokenizeIdent("line_items"))
}
