package resolution_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookado/platform/pkg/resolution"
)

// captureHandler records the resolution attached to the request context.
func captureHandler(got *resolution.Result, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if res, ok := resolution.FromContext(r.Context()); ok {
			*got = res
		}
		w.WriteHeader(http.StatusOK)
	})
}

func serve(t *testing.T, rs *resolution.Resolver, req *http.Request) (*httptest.ResponseRecorder, resolution.Result, bool) {
	t.Helper()

	var (
		got    resolution.Result
		called bool
	)
	rec := httptest.NewRecorder()
	rs.Middleware()(captureHandler(&got, &called)).ServeHTTP(rec, req)
	return rec, got, called
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("attaches tenant resolution to the context", func(t *testing.T) {
		t.Parallel()

		provider := &stubProvider{bySlug: map[string]*resolution.Tenant{"acme": approvedTenant("acme")}}
		rs, err := resolution.New(provider, "example.com")
		require.NoError(t, err)

		rec, got, called := serve(t, rs, newRequest("acme.example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.True(t, got.IsTenantSite())
		assert.Equal(t, "acme", got.Slug())
	})

	t.Run("unresolved hostname falls back to main site by default", func(t *testing.T) {
		t.Parallel()

		rs, err := resolution.New(&stubProvider{}, "example.com")
		require.NoError(t, err)

		rec, got, _ := serve(t, rs, newRequest("ghost.example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, got.IsMainSite())
	})

	t.Run("not_found policy rejects unresolved hostnames", func(t *testing.T) {
		t.Parallel()

		rs, err := resolution.New(&stubProvider{}, "example.com",
			resolution.WithUnresolvedPolicy(resolution.PolicyNotFound),
		)
		require.NoError(t, err)

		rec, _, called := serve(t, rs, newRequest("ghost.example.com"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, called)
	})

	t.Run("redirect policy sends unresolved hostnames to the main site", func(t *testing.T) {
		t.Parallel()

		rs, err := resolution.New(&stubProvider{}, "example.com",
			resolution.WithUnresolvedPolicy(resolution.PolicyRedirectMainSite),
			resolution.WithMainSiteURL("https://example.com"),
		)
		require.NoError(t, err)

		rec, _, called := serve(t, rs, newRequest("ghost.example.com"))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://example.com", rec.Header().Get("Location"))
		assert.False(t, called)
	})

	t.Run("redirect policy without a target degrades to fallback", func(t *testing.T) {
		t.Parallel()

		rs, err := resolution.New(&stubProvider{}, "example.com",
			resolution.WithUnresolvedPolicy(resolution.PolicyRedirectMainSite),
		)
		require.NoError(t, err)

		rec, got, _ := serve(t, rs, newRequest("ghost.example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, got.IsMainSite())
	})

	t.Run("rejected override returns 404 without fallback", func(t *testing.T) {
		t.Parallel()

		provider := &stubProvider{bySlug: map[string]*resolution.Tenant{"acme": approvedTenant("acme")}}
		rs, err := resolution.New(provider, "example.com", resolution.WithExplicitOverrides(true))
		require.NoError(t, err)

		req := newRequest("acme.example.com")
		req.Header.Set(resolution.OverrideHeader, "ghost")

		rec, _, called := serve(t, rs, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, called)
	})

	t.Run("skip paths bypass resolution entirely", func(t *testing.T) {
		t.Parallel()

		provider := &stubProvider{}
		rs, err := resolution.New(provider, "example.com",
			resolution.WithSkipPaths([]string{"/health"}),
		)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "http://acme.example.com/health", nil)
		req.Host = "acme.example.com"

		rec := httptest.NewRecorder()
		var resolved bool
		rs.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, resolved = resolution.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, resolved)
		assert.Zero(t, provider.slugCalls.Load())
	})

	t.Run("dispatcher runs for tenant sites", func(t *testing.T) {
		t.Parallel()

		type schemaKey struct{}
		dispatcher := resolution.DispatcherFunc(func(ctx context.Context, res resolution.Result) (context.Context, error) {
			return context.WithValue(ctx, schemaKey{}, res.SchemaName()), nil
		})

		provider := &stubProvider{bySlug: map[string]*resolution.Tenant{"acme": approvedTenant("acme")}}
		rs, err := resolution.New(provider, "example.com", resolution.WithDispatcher(dispatcher))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		var schema string
		rs.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			schema, _ = r.Context().Value(schemaKey{}).(string)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, newRequest("acme.example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tenant_acme", schema)
	})

	t.Run("dispatcher is skipped for the main site", func(t *testing.T) {
		t.Parallel()

		var dispatched bool
		dispatcher := resolution.DispatcherFunc(func(ctx context.Context, res resolution.Result) (context.Context, error) {
			dispatched = true
			return ctx, nil
		})

		rs, err := resolution.New(&stubProvider{}, "example.com", resolution.WithDispatcher(dispatcher))
		require.NoError(t, err)

		rec, _, _ := serve(t, rs, newRequest("www.example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, dispatched)
	})

	t.Run("dispatch failure logs and proceeds without the binding", func(t *testing.T) {
		t.Parallel()

		dispatcher := resolution.DispatcherFunc(func(ctx context.Context, res resolution.Result) (context.Context, error) {
			return nil, assert.AnError
		})

		provider := &stubProvider{bySlug: map[string]*resolution.Tenant{"acme": approvedTenant("acme")}}
		rs, err := resolution.New(provider, "example.com", resolution.WithDispatcher(dispatcher))
		require.NoError(t, err)

		rec, got, called := serve(t, rs, newRequest("acme.example.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.True(t, got.IsTenantSite())
	})

	t.Run("custom error handler replaces the default", func(t *testing.T) {
		t.Parallel()

		rs, err := resolution.New(&stubProvider{}, "example.com",
			resolution.WithExplicitOverrides(true),
			resolution.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				w.WriteHeader(http.StatusTeapot)
			}),
		)
		require.NoError(t, err)

		req := newRequest("www.example.com")
		req.Header.Set(resolution.OverrideHeader, "ghost")

		rec, _, _ := serve(t, rs, req)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes tenant sites through", func(t *testing.T) {
		t.Parallel()

		res := resolution.TenantSite("acme.example.com", approvedTenant("acme"), resolution.MethodSubdomain)
		req := newRequest("acme.example.com").WithContext(
			resolution.WithResolution(context.Background(), res),
		)

		rec := httptest.NewRecorder()
		resolution.RequireTenant(nil)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects main site requests", func(t *testing.T) {
		t.Parallel()

		req := newRequest("www.example.com").WithContext(
			resolution.WithResolution(context.Background(), resolution.MainSite("www.example.com")),
		)

		rec := httptest.NewRecorder()
		resolution.RequireTenant(nil)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects requests with no resolution at all", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resolution.RequireTenant(nil)(next).ServeHTTP(rec, newRequest("acme.example.com"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes admin site through", func(t *testing.T) {
		t.Parallel()

		req := newRequest("admin.example.com").WithContext(
			resolution.WithResolution(context.Background(), resolution.AdminSite("admin.example.com")),
		)

		rec := httptest.NewRecorder()
		resolution.RequireAdmin(nil)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects tenant sites", func(t *testing.T) {
		t.Parallel()

		res := resolution.TenantSite("acme.example.com", approvedTenant("acme"), resolution.MethodSubdomain)
		req := newRequest("acme.example.com").WithContext(
			resolution.WithResolution(context.Background(), res),
		)

		rec := httptest.NewRecorder()
		resolution.RequireAdmin(nil)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
