// Package config loads the dashboard's configuration.
//
// # Configuration Sources
//
// Values are resolved in increasing order of precedence:
//
//	1. Default()
//	2. A YAML file (STP_CONFIG_FILE, or config.yaml / configs/config.yaml)
//	3. Environment variables, optionally seeded from a .env file
//
// # Environment Variables
//
// Variables use the STP_ prefix followed by section and key:
//
//	STP_SERVER_PORT=8080
//	STP_LOGGING_LEVEL=debug
//	STP_PLANT_CAPACITY_PER_DAY=750
//	STP_PLANT_SOURCE_KIND=excel
//	STP_PLANT_SOURCE_PATH=/data/stp_daily.xlsx
//
// # Validation
//
// Load rejects out-of-range server settings and checks the plant section
// with validator tags: capacity must be positive, the source kind must be
// one of embedded, file, excel or sheets, and file based kinds need a path.
package config
