package services

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decider source of human decisions. Strategies never read the console
// themselves, so tests can script the answers.
type Decider interface {
	// ChooseTarget returns one of options.
	ChooseTarget(prompt string, options []int) (int, error)
	// ChooseAction returns an index into options.
	ChooseAction(prompt string, options []string) (int, error)
	Confirm(prompt string) (bool, error)
	// Inform shows the human something only they learn.
	Inform(message string)
}

// ConsoleDecider asks on a text stream and keeps asking until the answer is valid
type ConsoleDecider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDecider shares in with the command loop.
func NewConsoleDecider(in *bufio.Reader, out io.Writer) *ConsoleDecider {
	return &ConsoleDecider{in: in, out: out}
}

func (d *ConsoleDecider) readLine() (string, error) {
	line, err := d.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", ErrInputClosed
	}
	return strings.TrimSpace(line), nil
}

// ChooseTarget re-prompts on non-numeric and unlisted answers.
func (d *ConsoleDecider) ChooseTarget(prompt string, options []int) (int, error) {
	labels := make([]string, len(options))
	for i, n := range options {
		labels[i] = strconv.Itoa(n)
	}
	fmt.Fprintf(d.out, "%s\nAvailable apartments are: %s\n", prompt, strings.Join(labels, ", "))

	for {
		fmt.Fprint(d.out, "Choose an apartment number: ")
		line, err := d.readLine()
		if err != nil {
			return 0, err
		}
		number, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(d.out, "Invalid input. Please enter a valid apartment number.")
			continue
		}
		if !contains(options, number) {
			fmt.Fprintln(d.out, "No such apartment available.")
			continue
		}
		return number, nil
	}
}

// ChooseAction lists options from 1 and re-prompts until one is picked.
func (d *ConsoleDecider) ChooseAction(prompt string, options []string) (int, error) {
	fmt.Fprintln(d.out, prompt)
	for i, option := range options {
		fmt.Fprintf(d.out, "%d: %s\n", i+1, option)
	}

	for {
		fmt.Fprint(d.out, "Enter the number of your chosen action: ")
		line, err := d.readLine()
		if err != nil {
			return 0, err
		}
		index, err := strconv.Atoi(line)
		if err != nil || index < 1 || index > len(options) {
			fmt.Fprintln(d.out, "Invalid choice, please try again.")
			continue
		}
		return index - 1, nil
	}
}

// Confirm accepts y/yes/n/no.
func (d *ConsoleDecider) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprintf(d.out, "%s [y/n]: ", prompt)
		line, err := d.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(d.out, "Please answer y or n.")
	}
}

// Inform prints message on its own line.
func (d *ConsoleDecider) Inform(message string) {
	fmt.Fprintln(d.out, message)
}
