package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/yarrow/lang/compiler"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/parser"
)

func mustCompile(t *testing.T, src string) error {
	t.Helper()
	prog, perrs := parser.Parse(src)
	require.Zero(t, perrs.Len(), "parse errors: %v", perrs.Errs())
	h := gc.New()
	fn, err := compiler.Compile(h, prog)
	require.NotNil(t, fn)
	return err
}

func TestCompileArithmeticNoError(t *testing.T) {
	err := mustCompile(t, `print 1 + 2 * 3;`)
	assert.NoError(t, err)
}

func TestCompileReturnOutsideFunctionIsSyntaxError(t *testing.T) {
	err := mustCompile(t, `return 1;`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindSyntaxError, errs[0].Kind)
	assert.Equal(t, errors.TagReturnOutsideFunction, errs[0].Tag)
}

func TestCompileClassInheritFromSelfIsNameError(t *testing.T) {
	err := mustCompile(t, `class A < A {}`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindNameError, errs[0].Kind)
	assert.Equal(t, errors.TagClassInheritFromSelf, errs[0].Tag)
}

func TestCompileAccessInsideOwnInitializerIsNameError(t *testing.T) {
	err := mustCompile(t, `{ var a = a; }`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindNameError, errs[0].Kind)
	assert.Equal(t, errors.TagAccessInsideInitializer, errs[0].Tag)
}

func TestCompileReturnValueFromInitializerIsSyntaxError(t *testing.T) {
	err := mustCompile(t, `class A { init() { return 1; } }`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindSyntaxError, errs[0].Kind)
	assert.Equal(t, errors.TagReturnInInitializer, errs[0].Tag)
}

func TestCompileSuperOutsideClassIsSyntaxError(t *testing.T) {
	err := mustCompile(t, `fun f() { return super.m(); }`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindSyntaxError, errs[0].Kind)
	assert.Equal(t, errors.TagSuperOutsideClass, errs[0].Tag)
}

func TestCompileManyConstantsOverflows(t *testing.T) {
	src := "print 0;\n"
	for i := 1; i < 300; i++ {
		src += "print " + itoa(i) + ";\n"
	}
	err := mustCompile(t, src)
	require.Error(t, err)
	found := false
	for _, e := range errors.Errors(err) {
		if e.Tag == errors.TagTooManyConstants {
			found = true
		}
	}
	assert.True(t, found)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}
