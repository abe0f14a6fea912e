// Package app wires the STP dashboard API: configuration, logging,
// OpenTelemetry, the readings source, the processing pipeline, services,
// the chi router and the HTTP server.
//
// # Initialization Flow
//
//	1. Load configuration (.env, config.yaml, STP_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. Build the dataset source selected by plant.source_kind
//	4. Create the pipeline, DashboardService and HealthService
//	5. Set up middleware and routes
//	6. Start the HTTP server and warm the dataset in the background
//
// # Middleware Order
//
//	RequestID → RealIP → OTel → ErrorMiddleware → SecureHeaders → CORS → RateLimit → Timeout
//
// /metrics is served outside the instrumented group.
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
