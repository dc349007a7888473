//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "i2cbus requires Linux (/dev/i2c-* character devices)")
	os.Exit(1)
}
