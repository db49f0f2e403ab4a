package input

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsSource_ReturnsFixedPair(t *testing.T) {
	first, second, err := ArgsSource{First: "a", Second: "b"}.Descriptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", first)
	assert.Equal(t, "b", second)
}

func TestPromptSource_PromptsInOrder(t *testing.T) {
	var out bytes.Buffer
	src := NewPromptSource(strings.NewReader("Sell candles\r\nSell soap\n"), &out)

	first, second, err := src.Descriptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sell candles", first)
	assert.Equal(t, "Sell soap", second)

	printed := out.String()
	assert.Equal(t, firstPrompt+"\n\n"+secondPrompt+"\n", printed)
}

func TestPromptSource_AcceptsEmptyLines(t *testing.T) {
	src := NewPromptSource(strings.NewReader("\n\n"), &bytes.Buffer{})

	first, second, err := src.Descriptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, first)
	assert.Empty(t, second)
}

func TestPromptSource_EOFYieldsWhatWasTyped(t *testing.T) {
	src := NewPromptSource(strings.NewReader("only one line without newline"), &bytes.Buffer{})

	first, second, err := src.Descriptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "only one line without newline", first)
	assert.Empty(t, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestPromptSource_ReadError(t *testing.T) {
	_, _, err := NewPromptSource(failingReader{}, &bytes.Buffer{}).Descriptions(context.Background())
	assert.ErrorContains(t, err, "tty gone")
}

func TestPromptSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	_, _, err := NewPromptSource(strings.NewReader("a\nb\n"), &out).Descriptions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String(), "nothing should be prompted after cancellation")
}

func TestSelect(t *testing.T) {
	interactive := NewPromptSource(strings.NewReader(""), &bytes.Buffer{})

	assert.Equal(t, ArgsSource{First: "a", Second: "b"}, Select([]string{"a", "b"}, interactive))
	assert.Equal(t, ArgsSource{First: "a", Second: "b"}, Select([]string{"a", "b", "c"}, interactive))
	assert.Same(t, interactive, Select([]string{"a"}, interactive))
	assert.Same(t, interactive, Select(nil, interactive))
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestDescriptionsModel_CollectsBothInOrder(t *testing.T) {
	var m tea.Model = newDescriptionsModel()
	assert.Contains(t, m.View(), firstPrompt)

	m = typeText(m, "Sell candles")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), secondPrompt)

	m = typeText(m, "Sell soap")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	final := m.(descriptionsModel)
	assert.False(t, final.canceled)
	assert.Equal(t, [2]string{"Sell candles", "Sell soap"}, final.values)
}

func TestDescriptionsModel_EmptyInputAccepted(t *testing.T) {
	var m tea.Model = newDescriptionsModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	final := m.(descriptionsModel)
	assert.Equal(t, [2]string{"", ""}, final.values)
}

func TestDescriptionsModel_Cancel(t *testing.T) {
	var m tea.Model = newDescriptionsModel()
	m = typeText(m, "half typed")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.True(t, m.(descriptionsModel).canceled)
	assert.Empty(t, m.View())
}
