// Package cpu implements the programmable core and assembler of the fabric.
//
// A Core has two registers (acc and bak), a program counter, and four ports
// (UP, DOWN, LEFT, RIGHT). Each port is either disconnected, blocking any
// access forever, or connected to exactly one neighbour's opposite port by a
// pair of capacity-1 channels. Cores run concurrently, one goroutine each,
// and only synchronize through port reads and writes.
//
// The assembler reads one instruction per line, with an optional `LABEL:`
// prefix:
//
//	START:MOV UP ACC
//	JEZ START
//	ADD ACC
//	MOV ACC DOWN
//
// Jump labels resolve to absolute instruction indexes. JRO jumps relative to
// the current instruction, wrapping around the ends of the program.
package cpu
