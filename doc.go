// Package i2cbus provides serialized transaction access to Linux I2C
// (/dev/i2c-*) character devices.
//
// It includes:
//   - A core Tx type describing one addressed write-then-read exchange
//   - A Linux devfs driver (linux-only) that serializes whole transactions
//     behind a single exclusive lock
//   - An in-memory loopback bus for tests and simulations
//   - Logging and recording decorators with composable transaction filters
//   - Bus discovery and address-scan helpers (linux-only)
package i2cbus
