package emulator

// SandboxValues is the input stream of the built-in sandbox.
var SandboxValues = []int{
	0, 32, 30, 27, 24, 28, 37, 33, 24, 13, 9, 13, 9, 13, 12, 14, 23, 21, 23, 19, 9, 18, 8, -3,
	6, 3, 14, 25, 15, 14, 3, 1, 2, -1, 1, -10, -7, -7, -11,
}

// Sandbox returns the built-in 3x4 layout. For every input value it emits
// 1 if the value differs from the previous one (initially 0) by 10 or
// more, and 0 otherwise.
func Sandbox() *Layout {
	return &Layout{
		Rows: 3,
		Cols: 4,
		Node: []NodeConfig{
			{Row: 0, Col: 1, Program: `MOV UP ACC
MOV ACC DOWN
MOV ACC DOWN`},
			{Row: 1, Col: 1, Program: `START:SUB UP
JGZ POS
NEG:ADD 10
MOV ACC RIGHT
MOV -1 DOWN
MOV UP ACC
JMP START
POS:SUB 10
MOV ACC DOWN
MOV 1 RIGHT
MOV UP ACC
JMP START`},
			{Row: 1, Col: 2, Program: `START:MOV LEFT ACC
JGZ SEND0
SEND1:MOV 1 DOWN
JMP START
SEND0:MOV 0 DOWN`},
			{Row: 2, Col: 1, Program: `START:MOV UP ACC
JLZ SEND0
SEND1:MOV 1 RIGHT
JMP START
SEND0:MOV 0 RIGHT
JMP START`},
			{Row: 2, Col: 2, Program: `MOV UP ACC
ADD LEFT
MOV ACC DOWN`},
		},
		Source: []SourceConfig{
			{Name: "In", Side: "UP", Index: 1, Values: SandboxValues, Echo: true},
		},
		Sink: []SinkConfig{
			{Name: "Out", Side: "DOWN", Index: 2, Program: "MOV UP ACC", Count: len(SandboxValues)},
		},
	}
}
