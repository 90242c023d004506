package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"proxyrank/pkg/checker"
)

// Prompter reads operator input line by line. The proxy-type question and
// the proxy list share one buffered reader so neither loses input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ProxyType asks until the operator picks one of the supported types, by
// name or by its number in the menu.
func (p *Prompter) ProxyType() (checker.ProxyType, error) {
	for {
		fmt.Fprintln(p.out, "Select proxy type:")
		for i, t := range checker.ProxyTypes {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, t)
		}
		fmt.Fprint(p.out, "> ")

		line, err := p.readLine()
		if line != "" {
			if t, ok := pickProxyType(line); ok {
				return t, nil
			}
			fmt.Fprintf(p.out, "Invalid choice %q, try again.\n", line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrInvalidProxyType
			}
			return "", err
		}
	}
}

func pickProxyType(choice string) (checker.ProxyType, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(checker.ProxyTypes) {
			return checker.ProxyTypes[n-1], true
		}
		return "", false
	}
	t, err := checker.ParseProxyType(choice)
	return t, err == nil
}

// Source returns a Source that reads pasted proxies until a blank line.
func (p *Prompter) Source() Source {
	return &promptSource{prompter: p}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

type promptSource struct {
	prompter *Prompter
}

func (s *promptSource) Name() string {
	return "prompt"
}

func (s *promptSource) Load(ctx context.Context) ([]string, error) {
	p := s.prompter
	fmt.Fprintln(p.out, "Paste proxies (host:port or host:port:user:pass), one per line. Blank line to finish:")

	var proxies []string
	for {
		line, err := p.readLine()
		if line == "" && (err == nil || errors.Is(err, io.EOF)) {
			return proxies, nil
		}
		if line != "" {
			proxies = append(proxies, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return proxies, nil
			}
			return nil, fmt.Errorf("read proxies: %w", err)
		}
	}
}
