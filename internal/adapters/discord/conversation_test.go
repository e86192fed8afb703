package discord

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbot/internal/ports/output"
)

func buttonRow(tokens ...string) []output.Button {
	row := make([]output.Button, 0, len(tokens))
	for _, token := range tokens {
		row = append(row, output.Button{Label: token, Token: token})
	}
	return row
}

func TestComponentsKeepsFittingLayout(t *testing.T) {
	screen := output.Screen{Rows: [][]output.Button{
		buttonRow("a", "b"),
		buttonRow("c"),
	}}

	rows := components(screen)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].(discordgo.ActionsRow).Components, 2)
	assert.Len(t, rows[1].(discordgo.ActionsRow).Components, 1)

	first := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, "a", first.CustomID)
	assert.Equal(t, "a", first.Label)
}

func TestComponentsRepacksTooManyRows(t *testing.T) {
	// One button per row, seven rows: more rows than Discord allows.
	var screen output.Screen
	for i := 0; i < 7; i++ {
		screen.Rows = append(screen.Rows, buttonRow(fmt.Sprintf("t%d", i)))
	}

	rows := components(screen)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].(discordgo.ActionsRow).Components, 5)
	assert.Len(t, rows[1].(discordgo.ActionsRow).Components, 2)
}

func TestComponentsTruncatesPastDiscordLimit(t *testing.T) {
	var wide []string
	for i := 0; i < 30; i++ {
		wide = append(wide, fmt.Sprintf("t%d", i))
	}
	screen := output.Screen{Rows: [][]output.Button{buttonRow(wide...)}}

	rows := components(screen)
	require.Len(t, rows, maxComponentRows)
	total := 0
	for _, row := range rows {
		total += len(row.(discordgo.ActionsRow).Components)
	}
	assert.Equal(t, maxRenderedButtons, total)
}

func TestComponentsEmptyScreen(t *testing.T) {
	assert.Nil(t, components(output.Screen{Text: "plain text"}))
}
