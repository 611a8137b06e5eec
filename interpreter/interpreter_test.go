package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loxproj/golox/interpreter"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/parser"
	"github.com/loxproj/golox/resolver"
	"github.com/loxproj/golox/scanner"
)

// run scans, parses, resolves, and interprets src, returning everything printed to
// stdout.
func run(t *testing.T, src string) string {
	t.Helper()

	sc := scanner.New(src, func(line int, message string) {
		t.Fatalf("unexpected scan error at line %d: %s", line, message)
	})
	tokens := sc.Scan()

	prog, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %s", src, err)
	}

	if err := resolver.New().Resolve(prog); err != nil {
		t.Fatalf("Resolve(%q) returned unexpected error: %s", src, err)
	}

	var stdout bytes.Buffer
	interp := interpreter.New(&stdout)
	if err := interp.Interpret(prog); err != nil {
		t.Fatalf("Interpret(%q) returned unexpected error: %s", src, err)
	}
	return stdout.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	got := run(t, `print 1 + 2 * 3 - 4 / 2;`)
	want := "5\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestStringConcatenation(t *testing.T) {
	got := run(t, `print "foo" + "bar";`)
	want := "foobar\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDivideByZeroIsRuntimeError(t *testing.T) {
	sc := scanner.New("print 1 / 0;", func(int, string) {})
	prog, err := parser.New(sc.Scan()).Parse()
	if err != nil {
		t.Fatalf("Parse() returned unexpected error: %s", err)
	}
	if err := resolver.New().Resolve(prog); err != nil {
		t.Fatalf("Resolve() returned unexpected error: %s", err)
	}
	var stdout bytes.Buffer
	interp := interpreter.New(&stdout)
	if err := interp.Interpret(prog); err == nil {
		t.Fatal("Interpret() returned no error for a division by zero, want an error")
	}
}

// TestRuntimeErrorInsideNestedCallCapturesStackTrace checks that a runtime error
// raised several calls deep still has a non-empty Trace by the time Interpret
// returns. evalCall's deferred pop unwinds the call stack before Interpret's own
// recover runs, so the trace has to be captured at the point of the panic, not
// read back from the call stack afterwards.
func TestRuntimeErrorInsideNestedCallCapturesStackTrace(t *testing.T) {
	src := `
fun c() {
  return 1 / 0;
}
fun b() {
  return c();
}
fun a() {
  return b();
}
a();
`
	sc := scanner.New(src, func(int, string) {})
	prog, err := parser.New(sc.Scan()).Parse()
	if err != nil {
		t.Fatalf("Parse() returned unexpected error: %s", err)
	}
	if err := resolver.New().Resolve(prog); err != nil {
		t.Fatalf("Resolve() returned unexpected error: %s", err)
	}

	var stdout bytes.Buffer
	interp := interpreter.New(&stdout)
	err = interp.Interpret(prog)
	if err == nil {
		t.Fatal("Interpret() returned no error for a division by zero, want an error")
	}

	runtimeErr, ok := err.(*loxerr.RuntimeError)
	if !ok {
		t.Fatalf("Interpret() returned error of type %T, want *loxerr.RuntimeError", err)
	}
	if runtimeErr.Trace == "" {
		t.Error("RuntimeError.Trace is empty, want a rendering of the call stack at a(), b(), c()")
	}
	// Each frame names the function the call was made from, not the function it
	// called into, so "a" and "b" (callers of b() and c()) show up; "c" itself
	// never appears since nothing calls further out of it.
	for _, fn := range []string{"a", "b"} {
		if !strings.Contains(runtimeErr.Trace, fn) {
			t.Errorf("RuntimeError.Trace = %q, want it to mention %q", runtimeErr.Trace, fn)
		}
	}
}

// TestClosureCapturesEnvironmentAtDefinition verifies that a closure sees later
// mutations of variables in its enclosing scope, since it shares the environment
// rather than snapshotting variable values when it's created.
func TestClosureCapturesEnvironmentAtDefinition(t *testing.T) {
	got := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}

var counter = makeCounter();
counter();
counter();
counter();
`)
	want := "1\n2\n3\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	got := run(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}

for (var i = 0; i < 8; i = i + 1) {
  print fib(i);
}
`)
	want := strings.Join(strings.Split("0 1 1 2 3 5 8 13", " "), "\n") + "\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSuperclassMethodDispatch(t *testing.T) {
	got := run(t, `
class Pastry {
  describe() {
    print "a pastry";
  }
}

class Croissant < Pastry {
  describe() {
    super.describe();
    print "specifically, a croissant";
  }
}

Croissant().describe();
`)
	want := "a pastry\nspecifically, a croissant\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestInitAlwaysReturnsTheInstance checks that calling a class always yields the
// newly-constructed instance, even though a bare return inside the initializer (with
// no value) is legal and resolves without error.
func TestInitAlwaysReturnsTheInstance(t *testing.T) {
	got := run(t, `
class Box {
  init(value) {
    this.value = value;
    if (value == nil) return;
  }
}

var b = Box(42);
print b.value;
`)
	want := "42\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	got := run(t, `
for (var i = 0; i < 5; i = i + 1) {
  print i;
}
`)
	want := "0\n1\n2\n3\n4\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWhileLoop(t *testing.T) {
	got := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
	want := "0\n1\n2\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogicalOperatorsShortCircuitAndReturnOperand(t *testing.T) {
	got := run(t, `
print false and 1;
print true or 2;
print nil or "fallback";
`)
	want := "false\ntrue\nfallback\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
