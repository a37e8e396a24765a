// Package bytecode defines the wire format shared by the compiler and the
// virtual machine: the Opcode set, the Chunk (ops + constant pool + source
// spans), and a disassembler for pretty-printing chunks.
package bytecode

import "fmt"

// Opcode is a single bytecode instruction.
type Opcode uint8

//nolint:revive
const (
	CONSTANT Opcode = iota
	NIL
	TRUE
	FALSE
	POP
	GET_LOCAL
	SET_LOCAL
	GET_GLOBAL
	SET_GLOBAL
	DEFINE_GLOBAL
	GET_UPVALUE
	SET_UPVALUE
	GET_PROPERTY
	SET_PROPERTY
	GET_SUPER
	EQUAL
	NOT_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	NOT
	NEGATE
	PRINT
	JUMP
	JUMP_IF_FALSE
	LOOP
	CALL
	CLOSURE
	CLOSE_UPVALUE
	RETURN
	CLASS
	INHERIT
	METHOD

	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	CONSTANT:      "CONSTANT",
	NIL:           "NIL",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	POP:           "POP",
	GET_LOCAL:     "GET_LOCAL",
	SET_LOCAL:     "SET_LOCAL",
	GET_GLOBAL:    "GET_GLOBAL",
	SET_GLOBAL:    "SET_GLOBAL",
	DEFINE_GLOBAL: "DEFINE_GLOBAL",
	GET_UPVALUE:   "GET_UPVALUE",
	SET_UPVALUE:   "SET_UPVALUE",
	GET_PROPERTY:  "GET_PROPERTY",
	SET_PROPERTY:  "SET_PROPERTY",
	GET_SUPER:     "GET_SUPER",
	EQUAL:         "EQUAL",
	NOT_EQUAL:     "NOT_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	ADD:           "ADD",
	SUBTRACT:      "SUBTRACT",
	MULTIPLY:      "MULTIPLY",
	DIVIDE:        "DIVIDE",
	NOT:           "NOT",
	NEGATE:        "NEGATE",
	PRINT:         "PRINT",
	JUMP:          "JUMP",
	JUMP_IF_FALSE: "JUMP_IF_FALSE",
	LOOP:          "LOOP",
	CALL:          "CALL",
	CLOSURE:       "CLOSURE",
	CLOSE_UPVALUE: "CLOSE_UPVALUE",
	RETURN:        "RETURN",
	CLASS:         "CLASS",
	INHERIT:       "INHERIT",
	METHOD:        "METHOD",
}

func (op Opcode) String() string {
	if op < numOpcodes {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", op)
}

// operandWidths gives the number of inline operand bytes following the
// opcode byte itself (not counting CLOSURE's variable-length upvalue
// descriptor tail, handled specially by the disassembler and the VM).
var operandWidths = [numOpcodes]int{
	CONSTANT:      1,
	GET_LOCAL:     1,
	SET_LOCAL:     1,
	GET_GLOBAL:    1,
	SET_GLOBAL:    1,
	DEFINE_GLOBAL: 1,
	GET_UPVALUE:   1,
	SET_UPVALUE:   1,
	GET_PROPERTY:  1,
	SET_PROPERTY:  1,
	GET_SUPER:     1,
	JUMP:          2,
	JUMP_IF_FALSE: 2,
	LOOP:          2,
	CALL:          1,
	CLOSURE:       1, // plus upvalue_count * 2, resolved dynamically
	CLASS:         1,
	METHOD:        1,
}

// OperandWidth returns the number of fixed inline operand bytes for op (0
// for opcodes with no operand). CLOSURE additionally carries a variable-
// length tail that must be computed from the referenced function's
// upvalue count.
func OperandWidth(op Opcode) int {
	if op < numOpcodes {
		return operandWidths[op]
	}
	return 0
}
