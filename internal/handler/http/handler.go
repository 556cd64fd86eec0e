package http

import "net/http"

// companyID extracts the tenant scope for the request. With no auth layer in
// front, the company is carried on a header set by the deployment's gateway.
func companyID(r *http.Request) string {
	if id := r.Header.Get("X-Company-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("company_id")
}
