// package fragments provides low-level bit readers and writers for
// BITS transmissions.
//
// The provided encoder and decoder are very low level, and do not
// encode any packet semantics. They read and write fixed-width
// unsigned integers, most significant bit first, with no alignment
// or padding between fields. It is the caller's responsibility to
// produce valid packets using these tools.
//
// You should not need to use this package at all, unless you are
// building or inspecting transmissions bit by bit.
package fragments
