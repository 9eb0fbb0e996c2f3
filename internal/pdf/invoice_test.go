package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	data := InvoiceData{
		InvoiceNumber: "INV-7-000042",
		Date:          time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		MemberName:    "Ravi Kumar",
		MemberPhone:   "9876543210",
		Amount:        3500,
		PlanType:      "Quarterly",
		PlanAmount:    3000,
		Services: []LineItem{
			{Name: "Personal Training", Amount: 500},
		},
		GymName:      "Iron Temple",
		GymEmail:     "owner@irontemple.test",
		GymPhone:     "9000000000",
		GymAddress:   "12 MG Road, Pune",
		GymGSTNumber: "27AAAAA0000A1Z5",
		PrimaryColor: "#ff0000",
	}

	out, err := RenderInvoice(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderInvoiceWithoutOptionalFields(t *testing.T) {
	out, err := RenderInvoice(InvoiceData{
		InvoiceNumber: "INV-7-000001",
		Date:          time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		MemberName:    "Ravi Kumar",
		Amount:        1000,
		PlanType:      "Monthly",
		PlanAmount:    1000,
		GymName:       "Iron Temple",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		r, g, b int
	}{
		{"Six digit", "#ff8000", 255, 128, 0},
		{"Three digit", "#f80", 255, 136, 0},
		{"No hash", "00ff00", 0, 255, 0},
		{"Garbage falls back to brand blue", "not-a-color", 59, 130, 246},
		{"Empty falls back to brand blue", "", 59, 130, 246},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := parseHexColor(tt.in)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rs. 3500.00", formatAmount(3500))
	assert.Equal(t, "Rs. 999.50", formatAmount(999.5))
}
