// Package http implements the HTTP handlers of the STP dashboard API. Handlers
// parse the request, call a service and render JSON; failures are rendered as
// RFC 7807 problem details through errors.ErrorHandler.
//
// # Endpoints
//
//	GET /api/stp/months                    month selector options
//	GET /api/stp/months/{monthKey}         month bundle (Found=false when absent)
//	GET /api/stp/months/{monthKey}/flow    flow graph of one month
//	GET /api/stp/series/monthly            whole-dataset trend series
//	GET /api/stp/report                    parse report of the loaded dataset
//	GET /api/health, /api/health/ready, /api/health/live, /api/version
//
// Month keys are validated by MonthCtx before any service call. A malformed
// key answers 400 with type /errors/month/invalid-key.
package http
