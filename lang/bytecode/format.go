package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of the chunk to w, labeling
// it with name, for pretty-printing compiled chunks while debugging.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Ops); {
		offset = c.disassembleInstruction(w, offset)
	}
}

func (c *Chunk) disassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	sp := c.SpanAt(offset)
	line, _ := sp.Start.LineCol()
	fmt.Fprintf(w, "%4d ", line)

	op := Opcode(c.Ops[offset])
	switch op {
	case CLOSURE:
		constIdx := c.Ops[offset+1]
		fmt.Fprintf(w, "%-16s %4d %v\n", op, constIdx, c.constantAt(int(constIdx)))
		next := offset + 2
		if fn, ok := c.Constants[constIdx].(interface{ UpvalueCount() int }); ok {
			for i := 0; i < fn.UpvalueCount(); i++ {
				isLocal := c.Ops[next]
				idx := c.Ops[next+1]
				kind := "upvalue"
				if isLocal != 0 {
					kind = "local"
				}
				fmt.Fprintf(w, "%04d      |                     %s %d\n", next, kind, idx)
				next += 2
			}
		}
		return next
	case JUMP, JUMP_IF_FALSE, LOOP:
		jump := c.ReadU16(offset + 1)
		fmt.Fprintf(w, "%-16s %4d -> target offset %d\n", op, jump, offset+3+signedJump(op, int(jump)))
		return offset + 3
	default:
		w2 := OperandWidth(op)
		switch w2 {
		case 0:
			fmt.Fprintf(w, "%s\n", op)
			return offset + 1
		case 1:
			arg := c.Ops[offset+1]
			if isConstantOp(op) {
				fmt.Fprintf(w, "%-16s %4d %v\n", op, arg, c.constantAt(int(arg)))
			} else {
				fmt.Fprintf(w, "%-16s %4d\n", op, arg)
			}
			return offset + 2
		default:
			fmt.Fprintf(w, "%s (unknown width)\n", op)
			return offset + 1 + w2
		}
	}
}

func (c *Chunk) constantAt(i int) any {
	if i < 0 || i >= len(c.Constants) {
		return nil
	}
	return c.Constants[i]
}

func isConstantOp(op Opcode) bool {
	switch op {
	case CONSTANT, GET_GLOBAL, SET_GLOBAL, DEFINE_GLOBAL, GET_PROPERTY, SET_PROPERTY, GET_SUPER, CLASS, METHOD:
		return true
	default:
		return false
	}
}

func signedJump(op Opcode, jump int) int {
	if op == LOOP {
		return -jump
	}
	return jump
}
