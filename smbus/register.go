package smbus

// A Register is a lightweight wrapper around a connection for a particular
// register.
type Register struct {
	Conn Conn
	Reg  byte
}

// ReadByte reads a byte from the register.
func (r Register) ReadByte() (byte, error) {
	return r.Conn.ReadByteData(r.Reg)
}

// WriteByte writes a byte to the register.
func (r Register) WriteByte(v byte) error {
	return r.Conn.WriteByteData(r.Reg, v)
}

// ReadWord reads a little-endian word from the register.
func (r Register) ReadWord() (uint16, error) {
	return r.Conn.ReadWordData(r.Reg)
}

// WriteWord writes a little-endian word to the register.
func (r Register) WriteWord(v uint16) error {
	return r.Conn.WriteWordData(r.Reg, v)
}
