// Package middleware provides HTTP middleware for DealerDesk.
package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const headerTenantID = "X-Tenant-ID"

type tenantCtxKey struct{}

// TenantID is middleware that extracts the dealership ID from the
// X-Tenant-ID header and stores it in the request context. Requests
// without a tenant are rejected before any handler runs; every query and
// cache key downstream is scoped by this value.
func TenantID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := r.Header.Get(headerTenantID)
		if tid == "" {
			http.Error(w, `{"error":"X-Tenant-ID header is required"}`, http.StatusBadRequest)
			return
		}
		ctx := context.WithValue(r.Context(), tenantCtxKey{}, tid)
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("tenant.id", tid))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantIDFromContext returns the dealership ID stored in ctx, or an empty
// string if absent.
func TenantIDFromContext(ctx context.Context) string {
	tid, _ := ctx.Value(tenantCtxKey{}).(string)
	return tid
}
