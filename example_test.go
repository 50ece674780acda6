package pawcore_test

// This is an example of embedding the pawcore runtime in a Go application

import (
	"fmt"

	"github.com/phroun/pawcore"
)

func Example() {
	// Create a runtime with custom config
	rt := pawcore.New(&pawcore.Config{
		StrictCounts: true, // refcount violations panic instead of being logged
		DrainLimit:   1000,
	})

	// Register a custom callable and invoke it
	double := rt.NewBuiltin("double", func(c *pawcore.Call) (pawcore.Handle, error) {
		if len(c.Args) < 1 {
			return pawcore.Handle{}, c.Runtime.Raise(pawcore.ErrTypeMismatch, "double needs one argument")
		}
		v, err := c.Runtime.IntValue(c.Args[0])
		if err != nil {
			return pawcore.Handle{}, err
		}
		return c.Runtime.NewInt(v * 2), nil
	})
	defer double.Release()

	arg := rt.NewInt(21)
	defer arg.Release()

	result, err := rt.Invoke(double.Borrow(), []pawcore.Ref{arg.Borrow()}, nil)
	if err != nil {
		fmt.Println("invoke failed:", err)
		return
	}
	v, _ := rt.IntValue(result.Borrow())
	fmt.Println("double(21) =", v)
	result.Release()

	// Wrap a foreign resource in a capsule; the destructor runs with the
	// last release
	type conn struct{ addr string }
	cap, _ := rt.Wrap(&conn{addr: "10.0.0.1:53"}, "example.conn", func(p interface{}) {
		fmt.Println("closing", p.(*conn).addr)
	})
	cap.Release()

	// Drain a range iterator into a list
	rng, _ := rt.NewRange(0, 3, 1)
	defer rng.Release()
	list, _ := rt.Drain(rng.Borrow())
	n, _ := rt.Len(list.Borrow())
	fmt.Println("drained", n, "items")
	list.Release()

	fmt.Println("live objects:", rt.LiveObjects())
	// Output:
	// double(21) = 42
	// closing 10.0.0.1:53
	// drained 3 items
	// live objects: 3
}
