// Package backend manages the embedded Manatan backend.
//
// The backend is closed source and ships as a prebuilt, platform-specific
// binary placed under lib/<goos_goarch>/ next to the gateway executable
// (a release asset delivered at packaging time). This package only knows
// how to find that artifact, launch it against the loopback backend
// address, and tear it down again; everything the backend does is opaque.
//
// # Lifecycle
//
//   - Locate: resolve lib/<platform>/manatan-server for the running build,
//     failing with MissingArtifactError when the asset was never delivered.
//   - Start: launch the artifact with its MANATAN_* environment contract,
//     stream its output into the gateway logger and poll /health until the
//     backend answers.
//   - Stop: SIGTERM with a kill escalation, mirroring the backend handle
//     being released when the gateway state is closed.
//
// When Config.Managed is false nothing is launched and the gateway proxies
// to whatever already listens on the configured backend address.
package backend
