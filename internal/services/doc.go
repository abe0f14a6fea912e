// Package services implements the query layer of the STP dashboard. It sits
// between the HTTP handlers and the processing pipeline so that handlers
// never touch a readings source directly.
//
// # Available Services
//
//	- DashboardService: loads the dataset once from a dataset.Source and
//	  answers month bundle, month option, trend series and flow graph queries
//	- HealthService: liveness, readiness (dataset loadable) and version
//
// # Dataset lifecycle
//
// The dataset is loaded lazily on the first query. Concurrent first queries
// share one load through singleflight. A failed load is returned to every
// waiter as ErrDatasetUnavailable and retried on the next query; a failed
// Reload keeps the previously loaded dataset.
//
// # Error Handling
//
//	- ErrInvalidMonthKey for keys that are not YYYY-MM
//	- ErrDatasetUnavailable wrapping the source error
//
// A well formed month key that is not in the dataset is not an error: the
// bundle comes back with Found=false and zero values throughout.
package services
