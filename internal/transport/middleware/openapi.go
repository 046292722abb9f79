package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
)

// OpenAPIValidator rejects requests that do not match the contract with a 400.
// Requests for paths the contract does not describe pass through untouched.
// Authentication is left to the auth middleware.
func OpenAPIValidator(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.From(r.Context()).DebugContext(r.Context(), "request rejected by contract",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err.Error())

				appErr := internal.NewValidationError(contractMessage(err), internal.ErrCodeValidationFailed)
				status, body := appErr.ToHTTPResponse()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(body)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func contractMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return fmt.Sprintf("parameter %q is invalid", e.Parameter.Name)
		}
		if e.RequestBody != nil {
			return "request body does not match the expected shape"
		}
		return e.Error()
	default:
		return err.Error()
	}
}
