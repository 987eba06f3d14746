// Package cli implements the ncli command-line interface.
//
// Each report command follows the same path: load and validate config,
// apply the global flag overrides, read the snapshot, build the model,
// then render. loadSession does everything up to rendering.
//
// # Command Structure
//
//	ncli services       - One summary line per service, with filters
//	ncli hosts          - Services grouped under their hosts
//	ncli show [h [s]]   - Every field of a host or service
//	ncli export         - Snapshot records as YAML
//	ncli doctor         - Check config and snapshot health
//	ncli init           - Create .ncli.yaml
//
// # Flag Handling
//
// Global flags (--config, --status-file, --format, --no-color, --strict,
// --verbose) are defined on the root command and override the matching
// config keys. --json on a report command switches output to the
// JSONEnvelope, and errors are then written as JSON on stdout too.
//
// # Malformed Records
//
// A record missing a required field or carrying an unknown state code is
// skipped with a warning on stderr. --strict (or strict: true) turns the
// first one into a MODEL error instead.
package cli
