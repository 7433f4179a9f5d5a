package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// NewRequest creates an HTTP request carrying chi URL parameters and query
// string values, for handlers exercised outside a router.
//
// Example:
//
//	req := testutil.NewRequest(http.MethodGet, "/api/panel/vendas",
//	    map[string]string{"section": "vendas"},
//	    map[string]string{"cnpj": "03.951.672/0001-70"},
//	)
func NewRequest(method, path string, urlParams, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Set(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	if len(urlParams) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range urlParams {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}
