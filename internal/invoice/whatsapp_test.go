package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhatsAppLink(t *testing.T) {
	t.Run("Strips everything but digits from the phone", func(t *testing.T) {
		link, err := BuildWhatsAppLink("+91 (98765) 43-210", "hello")
		require.NoError(t, err)
		assert.Equal(t, "https://wa.me/919876543210?text=hello", link)
	})

	t.Run("Message is URL encoded", func(t *testing.T) {
		link, err := BuildWhatsAppLink("123", "Hi Ravi! Rs. 500 & thanks")
		require.NoError(t, err)
		assert.Equal(t, "https://wa.me/123?text=Hi+Ravi%21+Rs.+500+%26+thanks", link)
	})

	t.Run("No digits at all", func(t *testing.T) {
		_, err := BuildWhatsAppLink("n/a", "hello")
		assert.ErrorIs(t, err, ErrNoPhoneNumber)
	})
}
