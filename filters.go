package i2cbus

// Typed and composable helpers for TxFilter.

// TxFilter decides whether a transaction should be observed (logged,
// recorded, delivered to a subscriber).
type TxFilter func(Tx) bool

// ByAddr returns a filter that matches transactions for the exact address.
func ByAddr(addr uint8) TxFilter {
	return func(t Tx) bool { return t.Addr == addr }
}

// ByAddrs returns a filter that matches any of the provided addresses.
func ByAddrs(addrs ...uint8) TxFilter {
	// Build a small set for O(1) lookup.
	m := make(map[uint8]struct{}, len(addrs))
	for _, a := range addrs {
		m[a] = struct{}{}
	}
	return func(t Tx) bool {
		_, ok := m[t.Addr]
		return ok
	}
}

// ByAddrRange matches transactions whose address is within [min, max],
// inclusive.
func ByAddrRange(min, max uint8) TxFilter {
	if max < min {
		// swap defensively
		min, max = max, min
	}
	return func(t Tx) bool { return t.Addr >= min && t.Addr <= max }
}

// ByCmd returns a filter that matches transactions with the exact command
// byte.
func ByCmd(cmd byte) TxFilter {
	return func(t Tx) bool { return t.Cmd == cmd }
}

// ByCmds returns a filter that matches any of the provided command bytes.
func ByCmds(cmds ...byte) TxFilter {
	m := make(map[byte]struct{}, len(cmds))
	for _, c := range cmds {
		m[c] = struct{}{}
	}
	return func(t Tx) bool {
		_, ok := m[t.Cmd]
		return ok
	}
}

// WriteOnly matches transactions with no read phase.
func WriteOnly() TxFilter {
	return func(t Tx) bool { return len(t.R) == 0 }
}

// WithRead matches transactions that request a read phase.
func WithRead() TxFilter {
	return func(t Tx) bool { return len(t.R) > 0 }
}

// WriteLenAtMost matches transactions with payload length <= n (the command
// byte is not counted).
func WriteLenAtMost(n int) TxFilter {
	return func(t Tx) bool { return len(t.W) <= n }
}

// ReadLenExactly matches transactions reading exactly n bytes.
func ReadLenExactly(n int) TxFilter {
	return func(t Tx) bool { return len(t.R) == n }
}

// And composes two filters; the result matches when both match.
func And(a, b TxFilter) TxFilter {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return func(t Tx) bool { return a(t) && b(t) }
	}
}

// Or composes two filters; the result matches when either matches.
func Or(a, b TxFilter) TxFilter {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return func(t Tx) bool { return a(t) || b(t) }
	}
}

// Not inverts a filter.
func Not(a TxFilter) TxFilter {
	if a == nil {
		return func(Tx) bool { return true }
	}
	return func(t Tx) bool { return !a(t) }
}
