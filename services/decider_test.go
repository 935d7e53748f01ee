package services

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qianlnk/hotel/models"
)

func scripted(input string) (*ConsoleDecider, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsoleDecider(bufio.NewReader(strings.NewReader(input)), out), out
}

func TestConsoleDeciderChooseTarget(t *testing.T) {
	d, out := scripted("abc\n7\n4\n")

	target, err := d.ChooseTarget("Killer, choose your target.", []int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, target)
	assert.Contains(t, out.String(), "Available apartments are: 1, 4")
	assert.Contains(t, out.String(), "Invalid input. Please enter a valid apartment number.")
	assert.Contains(t, out.String(), "No such apartment available.")
}

func TestConsoleDeciderChooseAction(t *testing.T) {
	d, out := scripted("0\nthree\n2")

	choice, err := d.ChooseAction("Choose an action from available options:", []string{"Sleep", "Kill"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)
	assert.Contains(t, out.String(), "2: Kill")
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice, please try again."))
}

func TestConsoleDeciderConfirm(t *testing.T) {
	d, out := scripted("maybe\nYES\nn\n")

	ok, err := d.Confirm("Report it?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Please answer y or n.")

	ok, err = d.Confirm("Report it?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsoleDeciderInputClosed(t *testing.T) {
	d, _ := scripted("x\n")

	_, err := d.ChooseTarget("?", []int{1})
	assert.ErrorIs(t, err, ErrInputClosed)

	_, err = d.ChooseAction("?", []string{"a"})
	assert.ErrorIs(t, err, ErrInputClosed)

	_, err = d.Confirm("?")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRenderBoard(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())
	flow, err := NewGameFlow(w, models.FlowOrdered, "", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	RenderBoard(&out, flow.Board())

	text := out.String()
	assert.Contains(t, text, "Hotel test, day 0 (night), capital 1010.00")
	assert.Contains(t, text, "Kay (bot)")
	assert.Contains(t, text, "Game over: the killers took over the hotel")
}
