package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/golang/glog"
	"github.com/luthersystems/jisp/lisp"
	"github.com/luthersystems/jisp/parser"
)

// DefaultPrompt is the prompt used when Config.Prompt is empty.
const DefaultPrompt = "jisp > "

// Config configures an interactive session.
type Config struct {
	Prompt      string
	HistoryFile string
}

// Session accumulates lines of input until they contain no unclosed forms and
// then evaluates them as a program in a single environment.
type Session struct {
	env lisp.Env
	buf []string
}

// NewSession returns a Session that evaluates input in env.
func NewSession(env lisp.Env) *Session {
	return &Session{env: env}
}

// Pending returns true if the session holds input that is waiting for more
// lines.
func (s *Session) Pending() bool {
	return len(s.buf) > 0
}

// Reset discards pending input.
func (s *Session) Reset() {
	s.buf = nil
}

// Feed adds line to the session input.  If the input is still incomplete Feed
// returns false and nothing is evaluated.  Otherwise the input is evaluated,
// the pending buffer is cleared, and Feed returns the printed result, which
// is empty for blank input and for results that are Unit.
func (s *Session) Feed(line string) (string, bool, error) {
	s.buf = append(s.buf, line)
	source := strings.Join(s.buf, "\n")
	if parser.Incomplete(source) {
		return "", false, nil
	}
	s.buf = nil
	if strings.TrimSpace(source) == "" {
		return "", true, nil
	}
	v, err := lisp.EvalProgram(source, s.env)
	if err != nil {
		return "", true, err
	}
	return v.String(), true, nil
}

// Run reads chunks of source from the terminal, evaluates them in env and
// prints each result or error until the input ends.
func Run(env lisp.Env, cfg Config) error {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	session := NewSession(env)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			session.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		out, complete, err := session.Feed(line)
		if !complete {
			rl.SetPrompt(contPrompt)
			continue
		}
		rl.SetPrompt(prompt)
		if err != nil {
			glog.V(1).Infof("evaluation failed: %v", err)
			fmt.Fprintln(rl.Stderr(), err)
			continue
		}
		if out != "" {
			fmt.Fprintln(rl.Stdout(), out)
		}
	}
}
