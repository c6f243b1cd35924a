package vm

import (
	"bytes"
	"os"
)

// Host provides the interface between the machine and the outside
// world. Any host implementing it is substitutable without change to
// the program being run.
type Host interface {
	// Argv returns emulated command-line arguments (excluding program name).
	Argv() []string

	// WriteOut writes to the observable output channel (PRINT_STRING).
	WriteOut(p []byte) (int, error)

	// WriteErr writes to the error channel.
	WriteErr(p []byte) (int, error)

	// ReadIn reads from the emulated standard input.
	ReadIn(p []byte) (int, error)

	// Exit signals the host to halt the program with the given status.
	Exit(status int32)

	// ExitStatus returns the status set by Exit, or -1 if not set.
	ExitStatus() int32

	// Exited returns true if Exit was called.
	Exited() bool
}

// DefaultHost implements Host using OS facilities.
type DefaultHost struct {
	argv       []string
	exitStatus int32
	exited     bool
}

// NewDefaultHost creates a host with program arguments from os.Args.
func NewDefaultHost() *DefaultHost {
	return &DefaultHost{argv: os.Args[1:], exitStatus: -1}
}

// NewHostWithArgs creates a host with the specified program arguments.
func NewHostWithArgs(argv []string) *DefaultHost {
	return &DefaultHost{argv: argv, exitStatus: -1}
}

func (h *DefaultHost) Argv() []string {
	return h.argv
}

func (h *DefaultHost) WriteOut(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (h *DefaultHost) WriteErr(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (h *DefaultHost) ReadIn(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (h *DefaultHost) Exit(status int32) {
	h.exitStatus = status
	h.exited = true
}

func (h *DefaultHost) ExitStatus() int32 {
	return h.exitStatus
}

func (h *DefaultHost) Exited() bool {
	return h.exited
}

// TestHost implements Host with controlled inputs and captured outputs.
type TestHost struct {
	argv       []string
	in         *bytes.Reader
	out        bytes.Buffer
	errOut     bytes.Buffer
	exitStatus int32
	exited     bool
}

// NewTestHost creates a test host with controlled argv and stdin.
func NewTestHost(argv []string, stdin string) *TestHost {
	return &TestHost{
		argv:       argv,
		in:         bytes.NewReader([]byte(stdin)),
		exitStatus: -1,
	}
}

func (h *TestHost) Argv() []string {
	return h.argv
}

func (h *TestHost) WriteOut(p []byte) (int, error) {
	return h.out.Write(p)
}

func (h *TestHost) WriteErr(p []byte) (int, error) {
	return h.errOut.Write(p)
}

func (h *TestHost) ReadIn(p []byte) (int, error) {
	return h.in.Read(p)
}

func (h *TestHost) Exit(status int32) {
	h.exitStatus = status
	h.exited = true
}

func (h *TestHost) ExitStatus() int32 {
	return h.exitStatus
}

func (h *TestHost) Exited() bool {
	return h.exited
}

// Output returns everything written to the output channel so far.
func (h *TestHost) Output() string {
	return h.out.String()
}

// ErrOutput returns everything written to the error channel so far.
func (h *TestHost) ErrOutput() string {
	return h.errOut.String()
}
