package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/vm"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	heap := gc.New()
	machine := vm.New(heap, &buf)
	err := machine.Run(src)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestFibonacciRecursion(t *testing.T) {
	src := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestClosureCounter(t *testing.T) {
	src := `
fun makeCounter() {
  var i = 0;
  fun counter() {
    i = i + 1;
    return i;
  }
  return counter;
}
var c = makeCounter();
print c();
print c();
print c();
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClassInheritanceBoundMethod(t *testing.T) {
	src := `
class Greeter {
  greet() {
    return "hi";
  }
}
class LoudGreeter < Greeter {
  greet() {
    return super.greet() + "!";
  }
}
var g = LoudGreeter();
print g.greet();
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "hi!\n", out)
}

func TestInitializerReturnsInstance(t *testing.T) {
	src := `
class Box {
  init(v) {
    this.v = v;
  }
}
var b = Box(42);
print b.v;
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestUninitializedVarIsNil(t *testing.T) {
	out, err := run(t, `var x; print x;`)
	require.NoError(t, err)
	assert.Equal(t, "nil\n", out)
}

func TestStringPlusNumberIsTypeError(t *testing.T) {
	_, err := run(t, `print "a" + 1;`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindTypeError, errs[0].Kind)
}

func TestUndefinedCallIsNameError(t *testing.T) {
	_, err := run(t, `foo();`)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindNameError, errs[0].Kind)
	assert.Equal(t, errors.TagNotDefined, errs[0].Tag)
}

func TestStackOverflowOnInfiniteRecursion(t *testing.T) {
	src := `
fun recurse() {
  return recurse();
}
recurse();
`
	_, err := run(t, src)
	require.Error(t, err)
	errs := errors.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindOverflowError, errs[0].Kind)
	assert.Equal(t, errors.TagStackOverflow, errs[0].Tag)
}

func TestClockIsCallable(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
