//go:build linux

package i2cbus

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Linux bus discovery helpers (diagnostics, not configuration).
//
// Notes:
// - Opening /dev/i2c-* nodes requires membership in the i2c group (or root).
//   When run without sufficient privileges these functions return EACCES.
// - Scan actively probes the bus; probing a write-sensitive device at an
//   unexpected address can upset it, same caveat as i2cdetect(8).

// Scannable address range per the I2C specification; addresses outside it
// are reserved.
const (
	ScanFirstAddr uint8 = 0x08
	ScanLastAddr  uint8 = 0x77
)

// BusInfo describes one /dev/i2c-* node.
type BusInfo struct {
	Path   string
	Number int
}

// ListBuses returns the I2C adapter nodes present under /dev, ordered by bus
// number. An empty result usually means the i2c-dev module is not loaded;
// see EnsureDevInterface.
func ListBuses() ([]BusInfo, error) {
	paths, err := filepath.Glob("/dev/i2c-*")
	if err != nil {
		return nil, err
	}
	var buses []BusInfo
	for _, p := range paths {
		num, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(p), "i2c-"))
		if err != nil {
			continue
		}
		buses = append(buses, BusInfo{Path: p, Number: num})
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i].Number < buses[j].Number })
	return buses, nil
}

// Func is the adapter functionality bitmask reported by the kernel.
type Func uint64

// Functionality bits from <linux/i2c.h>; x/sys/unix does not carry them.
const (
	FuncI2C                 Func = 0x00000001 // I2C_FUNC_I2C
	Func10BitAddr           Func = 0x00000002 // I2C_FUNC_10BIT_ADDR
	FuncProtocolMangling    Func = 0x00000004 // I2C_FUNC_PROTOCOL_MANGLING
	FuncSMBusPEC            Func = 0x00000008 // I2C_FUNC_SMBUS_PEC
	FuncSMBusQuick          Func = 0x00010000 // I2C_FUNC_SMBUS_QUICK
	FuncSMBusReadByte       Func = 0x00020000 // I2C_FUNC_SMBUS_READ_BYTE
	FuncSMBusWriteByte      Func = 0x00040000 // I2C_FUNC_SMBUS_WRITE_BYTE
	FuncSMBusReadByteData   Func = 0x00080000 // I2C_FUNC_SMBUS_READ_BYTE_DATA
	FuncSMBusWriteByteData  Func = 0x00100000 // I2C_FUNC_SMBUS_WRITE_BYTE_DATA
	FuncSMBusReadWordData   Func = 0x00200000 // I2C_FUNC_SMBUS_READ_WORD_DATA
	FuncSMBusWriteWordData  Func = 0x00400000 // I2C_FUNC_SMBUS_WRITE_WORD_DATA
	FuncSMBusReadBlockData  Func = 0x01000000 // I2C_FUNC_SMBUS_READ_BLOCK_DATA
	FuncSMBusWriteBlockData Func = 0x02000000 // I2C_FUNC_SMBUS_WRITE_BLOCK_DATA
)

// Has returns true if all bits in f2 are set in f.
func (f Func) Has(f2 Func) bool {
	return f&f2 == f2
}

func (f Func) String() string {
	var names []string
	for _, fn := range []struct {
		bit  Func
		name string
	}{
		{FuncI2C, "I2C"},
		{Func10BitAddr, "10BIT_ADDR"},
		{FuncProtocolMangling, "PROTOCOL_MANGLING"},
		{FuncSMBusPEC, "SMBUS_PEC"},
		{FuncSMBusQuick, "SMBUS_QUICK"},
		{FuncSMBusReadByte, "SMBUS_READ_BYTE"},
		{FuncSMBusWriteByte, "SMBUS_WRITE_BYTE"},
		{FuncSMBusReadByteData, "SMBUS_READ_BYTE_DATA"},
		{FuncSMBusWriteByteData, "SMBUS_WRITE_BYTE_DATA"},
		{FuncSMBusReadWordData, "SMBUS_READ_WORD_DATA"},
		{FuncSMBusWriteWordData, "SMBUS_WRITE_WORD_DATA"},
		{FuncSMBusReadBlockData, "SMBUS_READ_BLOCK_DATA"},
		{FuncSMBusWriteBlockData, "SMBUS_WRITE_BLOCK_DATA"},
	} {
		if f.Has(fn.bit) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Funcs reports the functionality of the adapter behind the given device
// node.
func Funcs(path string) (Func, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return 0, RequirePermission(fmt.Errorf("i2cbus: open %s: %w", path, err))
	}
	defer unix.Close(fd)
	funcs, err := unix.IoctlGetInt(fd, i2cFuncs)
	if err != nil {
		return 0, fmt.Errorf("i2cbus: query funcs on %s: %w", path, err)
	}
	return Func(funcs), nil
}

// Scan probes the given bus for responsive peripherals, i2cdetect-style, and
// returns the addresses that acknowledged. Addresses claimed by a kernel
// driver (EBUSY on address-set) are reported as present.
func Scan(path string) ([]uint8, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, RequirePermission(fmt.Errorf("i2cbus: open %s: %w", path, err))
	}
	defer unix.Close(fd)

	var found []uint8
	buf := make([]byte, 1)
	for addr := ScanFirstAddr; addr <= ScanLastAddr; addr++ {
		if err := unix.IoctlSetInt(fd, i2cSlave, int(addr)); err != nil {
			if errors.Is(err, unix.EBUSY) {
				found = append(found, addr)
			}
			continue
		}
		if _, err := unix.Read(fd, buf); err == nil {
			found = append(found, addr)
		}
	}
	return found, nil
}

// EnsureDevInterface makes sure /dev/i2c-* nodes exist, loading the i2c-dev
// kernel module via modprobe when none are present. Requires root when the
// module is not already loaded.
func EnsureDevInterface() error {
	buses, err := ListBuses()
	if err != nil {
		return err
	}
	if len(buses) > 0 {
		return nil
	}
	cmd := exec.Command("modprobe", "i2c-dev")
	if out, err := cmd.CombinedOutput(); err != nil {
		return RequirePermission(fmt.Errorf("i2cbus: modprobe i2c-dev failed: %w; output: %s", err, string(out)))
	}
	return nil
}

// RequirePermission can be used to map EACCES/EPERM to a clearer error
// message. It returns a wrapped error advising how to grant access to the
// bus device nodes.
func RequirePermission(err error) error {
	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
		return fmt.Errorf("operation requires membership in the i2c group (or root): %w", err)
	}
	return err
}
