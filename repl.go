package pawcore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// REPL is a line-oriented inspector shell over one Runtime. It exists for
// poking at object lifetimes by hand: every named variable the shell holds
// is one owned reference, so `release` and `refcount` show the counting
// contract at work.
type REPL struct {
	rt     *Runtime
	vars   map[string]Handle
	out    io.Writer
	prompt bool
}

// NewREPL creates an inspector shell bound to a runtime
func NewREPL(rt *Runtime) *REPL {
	return &REPL{
		rt:   rt,
		vars: make(map[string]Handle),
		out:  os.Stdout,
	}
}

// Run reads commands from in until EOF or quit. The prompt is shown only
// when stdin is an interactive terminal.
func (r *REPL) Run(in io.Reader) {
	if f, ok := in.(*os.File); ok {
		r.prompt = term.IsTerminal(int(f.Fd()))
	}
	if r.prompt {
		fmt.Fprintln(r.out, "pawcore inspector - type 'help' for commands")
	}

	scanner := bufio.NewScanner(in)
	for {
		if r.prompt {
			fmt.Fprint(r.out, "paw> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := r.eval(line); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
	r.Close()
}

// Close releases every variable the shell still owns
func (r *REPL) Close() {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.vars[name].Release()
		delete(r.vars, name)
	}
}

func (r *REPL) lookupVar(name string) (Ref, error) {
	h, exists := r.vars[name]
	if !exists {
		return Ref{}, fmt.Errorf("no variable %q", name)
	}
	return h.Borrow(), nil
}

// bind stores an owned handle under name, releasing anything it displaces
func (r *REPL) bind(name string, h Handle) {
	if old, exists := r.vars[name]; exists {
		old.Release()
	}
	r.vars[name] = h
}

func (r *REPL) eval(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s needs %d argument(s)", cmd, n)
		}
		return nil
	}

	switch cmd {
	case "help":
		fmt.Fprint(r.out, replHelp)
		return nil

	case "int":
		if err := need(2); err != nil {
			return err
		}
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		r.bind(args[0], r.rt.NewInt(v))

	case "str":
		if err := need(2); err != nil {
			return err
		}
		r.bind(args[0], r.rt.NewString(strings.Join(args[1:], " ")))

	case "list":
		if err := need(1); err != nil {
			return err
		}
		r.bind(args[0], r.rt.NewList())

	case "dict":
		if err := need(1); err != nil {
			return err
		}
		r.bind(args[0], r.rt.NewDict())

	case "range":
		if err := need(4); err != nil {
			return err
		}
		var nums [3]int64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(args[i+1], 10, 64)
			if err != nil {
				return err
			}
			nums[i] = v
		}
		h, err := r.rt.NewRange(nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		r.bind(args[0], h)

	case "wrap":
		if err := need(3); err != nil {
			return err
		}
		payload := strings.Join(args[2:], " ")
		h, err := r.rt.Wrap(payload, args[1], func(p interface{}) {
			fmt.Fprintf(r.out, "capsule destructor ran on %v\n", p)
		})
		if err != nil {
			return err
		}
		r.bind(args[0], h)

	case "unwrap":
		if err := need(2); err != nil {
			return err
		}
		ref, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		payload, err := r.rt.Unwrap(ref, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%v\n", payload)

	case "append":
		if err := need(2); err != nil {
			return err
		}
		list, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		item, err := r.lookupVar(args[1])
		if err != nil {
			return err
		}
		return r.rt.Append(list, item)

	case "item":
		if err := need(2); err != nil {
			return err
		}
		list, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		item, err := r.rt.Item(list, i)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.render(item))

	case "len":
		if err := need(1); err != nil {
			return err
		}
		list, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		n, err := r.rt.Len(list)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, n)

	case "reverse":
		if err := need(1); err != nil {
			return err
		}
		list, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		return r.rt.Reverse(list)

	case "set":
		if err := need(3); err != nil {
			return err
		}
		dict, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		value, err := r.lookupVar(args[2])
		if err != nil {
			return err
		}
		return r.rt.SetKey(dict, args[1], value)

	case "get":
		if err := need(2); err != nil {
			return err
		}
		dict, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		value, err := r.rt.Key(dict, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.render(value))

	case "del":
		if err := need(2); err != nil {
			return err
		}
		dict, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		return r.rt.DeleteKey(dict, args[1])

	case "keys":
		if err := need(1); err != nil {
			return err
		}
		dict, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		keys, err := r.rt.Keys(dict)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, strings.Join(keys, " "))

	case "setattr":
		if err := need(3); err != nil {
			return err
		}
		obj, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		value, err := r.lookupVar(args[2])
		if err != nil {
			return err
		}
		return r.rt.SetAttr(obj, args[1], value)

	case "getattr":
		if err := need(2); err != nil {
			return err
		}
		obj, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		value, err := r.rt.Attr(obj, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.render(value))

	case "iter":
		if err := need(2); err != nil {
			return err
		}
		src, err := r.lookupVar(args[1])
		if err != nil {
			return err
		}
		h, err := r.rt.Iter(src)
		if err != nil {
			return err
		}
		r.bind(args[0], h)

	case "next":
		if err := need(1); err != nil {
			return err
		}
		it, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		item, ok, err := r.rt.Next(it)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(r.out, "<exhausted>")
			return nil
		}
		fmt.Fprintln(r.out, r.render(item.Borrow()))
		item.Release()

	case "drain":
		if err := need(2); err != nil {
			return err
		}
		src, err := r.lookupVar(args[1])
		if err != nil {
			return err
		}
		h, err := r.rt.Drain(src)
		if err != nil {
			return err
		}
		r.bind(args[0], h)
		fmt.Fprintln(r.out, r.render(h.Borrow()))

	case "acquire":
		if err := need(1); err != nil {
			return err
		}
		ref, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		// deliberately leak-prone: the extra reference is dropped on the
		// floor so refcount experiments are possible from the shell
		ref.Acquire()

	case "release":
		if err := need(1); err != nil {
			return err
		}
		h, exists := r.vars[args[0]]
		if !exists {
			return fmt.Errorf("no variable %q", args[0])
		}
		delete(r.vars, args[0])
		h.Release()

	case "refcount":
		if err := need(1); err != nil {
			return err
		}
		ref, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.rt.RefCount(ref))

	case "kind":
		if err := need(1); err != nil {
			return err
		}
		ref, err := r.lookupVar(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.rt.KindOf(ref))

	case "raise":
		if err := need(2); err != nil {
			return err
		}
		return r.rt.Raise(ErrKind(args[0]), "%s", strings.Join(args[1:], " "))

	case "occurred":
		fmt.Fprintln(r.out, r.rt.Occurred())

	case "fetch":
		raised := r.rt.Fetch()
		if raised == nil {
			fmt.Fprintln(r.out, "<no error>")
		} else {
			fmt.Fprintln(r.out, raised.Error())
		}

	case "clear":
		r.rt.Clear()

	case "vars":
		names := make([]string, 0, len(r.vars))
		for name := range r.vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ref := r.vars[name].Borrow()
			fmt.Fprintf(r.out, "%s\t%s\trefcount %d\t%s\n",
				name, r.rt.KindOf(ref), r.rt.RefCount(ref), r.render(ref))
		}

	case "live":
		fmt.Fprintln(r.out, r.rt.LiveObjects())

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

// render formats an object for display, descending into containers
func (r *REPL) render(ref Ref) string {
	return r.renderInto(ref, make(map[int]bool))
}

// renderInto tracks the container IDs on the current descent path so a
// container reachable from itself prints a placeholder instead of recursing
func (r *REPL) renderInto(ref Ref, path map[int]bool) string {
	switch r.rt.KindOf(ref) {
	case KindInt:
		v, _ := r.rt.IntValue(ref)
		return strconv.FormatInt(v, 10)
	case KindStr:
		s, _ := r.rt.StringValue(ref)
		return strconv.Quote(s)
	case KindList:
		if path[ref.id] {
			return "(...)"
		}
		path[ref.id] = true
		defer delete(path, ref.id)
		n, _ := r.rt.Len(ref)
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			item, err := r.rt.Item(ref, i)
			if err != nil {
				break
			}
			parts = append(parts, r.renderInto(item, path))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindDict:
		if path[ref.id] {
			return "{...}"
		}
		path[ref.id] = true
		defer delete(path, ref.id)
		keys, _ := r.rt.Keys(ref)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			value, err := r.rt.Key(ref, key)
			if err != nil {
				break
			}
			parts = append(parts, key+": "+r.renderInto(value, path))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindCapsule:
		tag, _ := r.rt.CapsuleTag(ref)
		return "<capsule " + tag + ">"
	case KindRangeIter:
		return "<range iterator>"
	case KindSeqIter:
		return "<list cursor>"
	case KindBuiltin:
		name, _ := r.rt.BuiltinName(ref)
		return "<builtin " + name + ">"
	default:
		return "<destroyed>"
	}
}

const replHelp = `object construction:
  int NAME VALUE            str NAME TEXT...
  list NAME                 dict NAME
  range NAME START STOP STEP
  wrap NAME TAG TEXT        unwrap NAME TAG
containers:
  append LIST ITEM          item LIST INDEX
  len LIST                  reverse LIST
  set DICT KEY VAR          get DICT KEY
  del DICT KEY              keys DICT
  setattr VAR NAME VAL      getattr VAR NAME
iteration:
  iter NAME SOURCE          next NAME
  drain NAME SOURCE
ownership:
  acquire NAME              release NAME
  refcount NAME             kind NAME
  vars                      live
errors:
  raise KIND MESSAGE...     occurred
  fetch                     clear
quit | exit
`
