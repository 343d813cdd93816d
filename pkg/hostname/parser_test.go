package hostname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookado/platform/pkg/hostname"
)

func TestParse(t *testing.T) {
	t.Parallel()

	const base = "example.com"

	t.Run("extracts subdomain label", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("acme.example.com", base)
		assert.True(t, ok)
		assert.Equal(t, "acme", label)
	})

	t.Run("strips port before parsing", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("acme.example.com:8080", base)
		assert.True(t, ok)
		assert.Equal(t, "acme", label)
	})

	t.Run("www is not a tenant label", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("www.example.com", base)
		assert.False(t, ok)
		assert.Empty(t, label)
	})

	t.Run("base domain has no label", func(t *testing.T) {
		t.Parallel()

		_, ok := hostname.Parse("example.com", base)
		assert.False(t, ok)
	})

	t.Run("localhost has no label", func(t *testing.T) {
		t.Parallel()

		_, ok := hostname.Parse("localhost", base)
		assert.False(t, ok)

		_, ok = hostname.Parse("localhost:3000", base)
		assert.False(t, ok)
	})

	t.Run("loopback literals have no label", func(t *testing.T) {
		t.Parallel()

		for _, host := range []string{"127.0.0.1", "127.0.0.1:8080", "::1", "[::1]:8080"} {
			_, ok := hostname.Parse(host, base)
			assert.False(t, ok, "host %s", host)
		}
	})

	t.Run("label on localhost works for development", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("acme.localhost:3000", base)
		assert.True(t, ok)
		assert.Equal(t, "acme", label)
	})

	t.Run("staging shares the tenant namespace", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("acme.staging.example.com", base)
		assert.True(t, ok)
		assert.Equal(t, "acme", label)
	})

	t.Run("foreign domain has no label", func(t *testing.T) {
		t.Parallel()

		_, ok := hostname.Parse("acme.other.com", base)
		assert.False(t, ok)
	})

	t.Run("nested labels do not map to a tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := hostname.Parse("a.b.example.com", base)
		assert.False(t, ok)
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		label, ok := hostname.Parse("ACME.Example.COM", base)
		assert.True(t, ok)
		assert.Equal(t, "acme", label)
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		_, ok := hostname.Parse("", base)
		assert.False(t, ok)

		_, ok = hostname.Parse("acme.example.com", "")
		assert.False(t, ok)
	})

	t.Run("deterministic for repeated calls", func(t *testing.T) {
		t.Parallel()

		first, ok1 := hostname.Parse("acme.example.com", base)
		second, ok2 := hostname.Parse("acme.example.com", base)
		assert.Equal(t, first, second)
		assert.Equal(t, ok1, ok2)
	})
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	t.Run("infrastructure labels are reserved", func(t *testing.T) {
		t.Parallel()

		for _, label := range []string{"www", "api", "admin", "cdn", "static", "mail", "metrics", "logs"} {
			assert.True(t, hostname.IsReserved(label), "label %s", label)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		assert.True(t, hostname.IsReserved("API"))
		assert.True(t, hostname.IsReserved("Admin"))
	})

	t.Run("ordinary slugs are not reserved", func(t *testing.T) {
		t.Parallel()

		for _, label := range []string{"acme", "my-shop", "adminco", "apify"} {
			assert.False(t, hostname.IsReserved(label), "label %s", label)
		}
	})
}

func TestIsAdminLabel(t *testing.T) {
	t.Parallel()

	assert.True(t, hostname.IsAdminLabel("admin"))
	assert.True(t, hostname.IsAdminLabel("ADMIN"))
	assert.False(t, hostname.IsAdminLabel("administrator"))
	assert.False(t, hostname.IsAdminLabel(""))
}
