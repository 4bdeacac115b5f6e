// Package config provides configuration management for the Manatan gateway.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, all under the MANATAN_ prefix.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Server: public router address, optional API key, metrics toggle
//   - Backend: loopback backend address and launch mode
//   - Runtime / Aidoku / Tracker: options transported to the backend process
//   - Log: logging level and format
//
// Server and Runtime are squashed into the top level so the flat variable
// names the backend has always used (MANATAN_HOST, MANATAN_DB_PATH, ...)
// resolve unchanged.
//
// # Derived Defaults
//
// Values that depend on other values are resolved after unmarshalling:
// the backend port defaults to the public port + 1, and the downloads,
// local library and Aidoku cache directories default to siblings of the
// database file.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
package config
