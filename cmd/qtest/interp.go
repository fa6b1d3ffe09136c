package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"deedles.dev/squeue"
	"deedles.dev/squeue/harness"
)

// bufSize is the size of the buffer that removed values are copied
// into.
const bufSize = 1024

type command struct {
	args string
	help string
	run  func(in *interp, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"new":     {"", "Create new queue", (*interp).cmdNew},
		"free":    {"", "Delete queue", (*interp).cmdFree},
		"ih":      {"str [n]", "Insert string str at head of queue n times (default: n = 1)", (*interp).cmdInsertHead},
		"it":      {"str [n]", "Insert string str at tail of queue n times (default: n = 1)", (*interp).cmdInsertTail},
		"rh":      {"[str]", "Remove from head of queue. Optionally compare to expected value str", (*interp).cmdRemoveHead},
		"rhq":     {"", "Remove from head of queue without reporting value", (*interp).cmdRemoveHeadQuiet},
		"size":    {"[n]", "Compute queue size. Optionally compare to expected value n", (*interp).cmdSize},
		"reverse": {"", "Reverse queue", (*interp).cmdReverse},
		"show":    {"", "Display queue contents", (*interp).cmdShow},
		"option":  {"fail p", "Set probability of allocation failure to p", (*interp).cmdOption},
		"help":    {"", "Show documentation", (*interp).cmdHelp},
	}
}

// interp runs qtest commands against a single queue whose memory is
// tracked by a harness.Tracker.
type interp struct {
	out     io.Writer
	verbose bool
	seed    uint64

	tr harness.Tracker
	q  *squeue.Queue

	errors int
}

type cmdError string

func (err cmdError) Error() string {
	return string(err)
}

// Run executes every command read from r until it is exhausted or a
// quit command is read.
func (in *interp) Run(r io.Reader) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		if !in.Exec(s.Text()) {
			return nil
		}
	}
	return s.Err()
}

// Exec executes a single command line. It returns false if the line
// was a quit command.
func (in *interp) Exec(line string) bool {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	if in.verbose {
		fmt.Fprintf(in.out, "cmd> %v\n", strings.Join(args, " "))
	}

	if args[0] == "quit" {
		return false
	}

	cmd, ok := commands[args[0]]
	if !ok {
		in.report(cmdError(fmt.Sprintf("Unknown command '%v'", args[0])))
		return true
	}

	in.report(cmd.run(in, args[1:]))
	return true
}

// Finish frees the current queue, if any, and checks the tracker for
// misuse and leaks. It returns the number of errors reported since
// the interpreter was created.
func (in *interp) Finish() int {
	in.q.Free()
	in.q = nil
	if err := in.tr.Check(); err != nil {
		in.report(fmt.Errorf("Freed queue: %w", err))
	}
	return in.errors
}

func (in *interp) report(err error) {
	if err == nil {
		return
	}

	in.errors++
	fmt.Fprintf(in.out, "ERROR: %v\n", err)
}

func (in *interp) warn(format string, args ...any) {
	fmt.Fprintf(in.out, "Warning: "+format+"\n", args...)
}

func (in *interp) show() {
	fmt.Fprintf(in.out, "q = %v\n", in.q)
}

func (in *interp) cmdNew(args []string) error {
	if len(args) != 0 {
		return cmdError("new takes no arguments")
	}

	if in.q != nil {
		in.q.Free()
	}
	in.q = squeue.NewAlloc(&in.tr)
	if in.q == nil {
		in.warn("Allocation of queue failed")
	}
	in.show()
	return nil
}

func (in *interp) cmdFree(args []string) error {
	if len(args) != 0 {
		return cmdError("free takes no arguments")
	}

	if in.q == nil {
		in.warn("Calling free on null queue")
	}
	in.q.Free()
	in.q = nil
	in.show()

	if live := in.tr.Live(); live > 0 {
		return cmdError(fmt.Sprintf("Freed queue, but %v blocks are still allocated", live))
	}
	return nil
}

func (in *interp) insert(name string, insert func(*squeue.Queue, []byte) bool, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return cmdError(fmt.Sprintf("%v needs 1 or 2 arguments", name))
	}

	reps := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return cmdError(fmt.Sprintf("Invalid number of insertions '%v'", args[1]))
		}
		reps = n
	}

	if in.q == nil {
		in.warn("Calling insert on null queue")
	}

	val := []byte(args[0])
	for range reps {
		size := in.q.Size()
		if !insert(in.q, val) {
			in.warn("Insertion of %v failed", args[0])
			if in.q.Size() != size {
				return cmdError("Queue size changed on failed insertion")
			}
			break
		}
		if in.q.Size() != size+1 {
			return cmdError(fmt.Sprintf("Queue size is %v after insertion, expected %v", in.q.Size(), size+1))
		}
	}

	in.show()
	return nil
}

func (in *interp) cmdInsertHead(args []string) error {
	return in.insert("ih", (*squeue.Queue).InsertHead, args)
}

func (in *interp) cmdInsertTail(args []string) error {
	return in.insert("it", (*squeue.Queue).InsertTail, args)
}

func (in *interp) cmdRemoveHead(args []string) error {
	if len(args) > 1 {
		return cmdError("rh takes at most 1 argument")
	}

	if in.q == nil {
		in.warn("Calling remove head on null queue")
	}

	size := in.q.Size()
	buf := make([]byte, bufSize)
	if !in.q.RemoveHead(buf) {
		in.show()
		if len(args) == 1 {
			return cmdError(fmt.Sprintf("Removal failed, expected %v", args[0]))
		}
		in.warn("Removal from empty queue failed")
		return nil
	}

	got := string(buf[:bytes.IndexByte(buf, 0)])
	fmt.Fprintf(in.out, "Removed %v from queue\n", got)
	in.show()

	if in.q.Size() != size-1 {
		return cmdError(fmt.Sprintf("Queue size is %v after removal, expected %v", in.q.Size(), size-1))
	}
	if len(args) == 1 && got != args[0] {
		return cmdError(fmt.Sprintf("Removed value %v, expected %v", got, args[0]))
	}
	return nil
}

func (in *interp) cmdRemoveHeadQuiet(args []string) error {
	if len(args) != 0 {
		return cmdError("rhq takes no arguments")
	}

	if in.q == nil {
		in.warn("Calling remove head on null queue")
	}
	if !in.q.RemoveHead(nil) {
		in.warn("Removal from empty queue failed")
	}
	in.show()
	return nil
}

func (in *interp) cmdSize(args []string) error {
	if len(args) > 1 {
		return cmdError("size takes at most 1 argument")
	}

	size := in.q.Size()
	fmt.Fprintf(in.out, "Queue size = %v\n", size)
	if len(args) == 1 {
		want, err := strconv.Atoi(args[0])
		if err != nil {
			return cmdError(fmt.Sprintf("Invalid size '%v'", args[0]))
		}
		if size != want {
			return cmdError(fmt.Sprintf("Queue size is %v, expected %v", size, want))
		}
	}
	return nil
}

func (in *interp) cmdReverse(args []string) error {
	if len(args) != 0 {
		return cmdError("reverse takes no arguments")
	}

	if in.q == nil {
		in.warn("Calling reverse on null queue")
	}

	allocs, frees := in.tr.Allocs(), in.tr.Frees()
	in.q.Reverse()
	in.show()
	if in.tr.Allocs() != allocs || in.tr.Frees() != frees {
		return cmdError("Reverse allocated or freed memory")
	}
	return nil
}

func (in *interp) cmdShow(args []string) error {
	if len(args) != 0 {
		return cmdError("show takes no arguments")
	}

	in.show()
	return nil
}

func (in *interp) cmdOption(args []string) error {
	if len(args) != 2 || args[0] != "fail" {
		return cmdError("usage: option fail p")
	}

	p, err := strconv.ParseFloat(args[1], 64)
	if err != nil || p < 0 || p > 1 {
		return cmdError(fmt.Sprintf("Invalid failure probability '%v'", args[1]))
	}
	in.tr.SetFailRate(p, in.seed)
	return nil
}

func (in *interp) cmdHelp([]string) error {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "quit")
	slices.Sort(names)

	for _, name := range names {
		if name == "quit" {
			fmt.Fprintf(in.out, "\t%-20v | %v\n", name, "Exit program")
			continue
		}
		cmd := commands[name]
		fmt.Fprintf(in.out, "\t%-20v | %v\n", strings.TrimSpace(name+" "+cmd.args), cmd.help)
	}
	return nil
}
