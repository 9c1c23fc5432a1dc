// Package bits decodes and evaluates BITS transmissions.
//
// A transmission is a hex-encoded bit stream holding a single packet,
// padded with zero bits to a whole number of bytes. Every packet
// starts with a 6-bit header: a 3-bit version and a 3-bit type ID.
// Fields are unsigned integers, most significant bit first, with no
// alignment between them.
//
// Packets with type ID 4 are literals. Their payload is a sequence of
// 5-bit groups. Each group's low 4 bits are the next 4 bits of the
// value, most significant first. The group's high bit is 1 if more
// groups follow, and 0 on the final group.
//
// All other packets are operators, and contain one or more child
// packets. After the header, a single length type bit selects how the
// children are framed:
//
//   - 0: a 15-bit field gives the total length in bits of the
//     children, which must end exactly at that length.
//   - 1: an 11-bit field gives the number of children that follow.
//
// [Decode] and [DecodeHex] produce a tree of [Packet] values, which
// can be summarized with [VersionSum] and evaluated with [Value].
// [Marshal] encodes a tree back into wire format.
//
// For example, the transmission 38006F45291200 is an operator with
// two literal children, 10 and 20, framed by total length:
//
//	001 110 0 000000000011011 11010001010 0101001000100100 0000000
//	VVV TTT I LLLLLLLLLLLLLLL AAAAAAAAAAA BBBBBBBBBBBBBBBB padding
package bits
