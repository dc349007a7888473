// Package smbus provides SMBus-style register access helpers on top of the
// core i2cbus transaction primitive.
//
// This package focuses on small, well-factored building blocks that cover
// the most commonly used SMBus protocols:
//   - Send Byte, Read/Write Byte Data, Read/Write Word Data (both endians)
//   - Read/Write Block Data with the 32-byte SMBus block limit
//   - A Register wrapper binding a connection to one register
//   - Packet Error Code (CRC-8) computation and checking
//
// The APIs here do not attempt to implement a device driver or the SMBus
// host-notify/alert protocols. Instead, they provide composable helpers that
// are easy to test against the i2cbus loopback and integrate into
// applications.
package smbus
