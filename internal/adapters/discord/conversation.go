package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"langbot/internal/ports/output"
)

const (
	maxComponentRows    = 5
	maxButtonsPerRow    = 5
	maxRenderedButtons  = maxComponentRows * maxButtonsPerRow
	buttonCustomIDLimit = 100
)

// components maps screen button rows onto Discord component rows.
// Discord caps a message at 5 rows of 5 buttons; a screen that fits
// keeps its row layout, anything bigger is repacked 5 buttons per row
// and truncated past 25 with a warning rather than failing the render.
func components(screen output.Screen) []discordgo.MessageComponent {
	fits := len(screen.Rows) <= maxComponentRows
	var flat []output.Button
	for _, row := range screen.Rows {
		if len(row) > maxButtonsPerRow {
			fits = false
		}
		flat = append(flat, row...)
	}
	if len(flat) == 0 {
		return nil
	}

	if fits {
		rows := make([]discordgo.MessageComponent, 0, len(screen.Rows))
		for _, row := range screen.Rows {
			rows = append(rows, actionsRow(row))
		}
		return rows
	}

	if len(flat) > maxRenderedButtons {
		log.Printf("⚠️ screen has %d buttons, only %d fit a Discord message", len(flat), maxRenderedButtons)
		flat = flat[:maxRenderedButtons]
	}
	var rows []discordgo.MessageComponent
	for start := 0; start < len(flat); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(flat))
		rows = append(rows, actionsRow(flat[start:end]))
	}
	return rows
}

func actionsRow(buttons []output.Button) discordgo.ActionsRow {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.Label,
			Style:    discordgo.SecondaryButton,
			CustomID: truncateID(b.Token),
		})
	}
	return row
}

func truncateID(token string) string {
	if len(token) > buttonCustomIDLimit {
		return token[:buttonCustomIDLimit]
	}
	return token
}

// interactionChat renders screens as responses to a Discord
// interaction. The first render answers the interaction itself;
// anything after that goes through the interaction's webhook.
type interactionChat struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	responded   bool
}

var _ output.Chat = (*interactionChat)(nil)

func newInteractionChat(s *discordgo.Session, i *discordgo.InteractionCreate) *interactionChat {
	return &interactionChat{session: s, interaction: i}
}

func (c *interactionChat) Render(ctx context.Context, screen output.Screen) error {
	if !c.responded {
		c.responded = true
		return c.session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    screen.Text,
				Components: components(screen),
			},
		})
	}
	_, err := c.session.FollowupMessageCreate(c.interaction.Interaction, true, &discordgo.WebhookParams{
		Content:    screen.Text,
		Components: components(screen),
	})
	return err
}

func (c *interactionChat) Edit(ctx context.Context, screen output.Screen) error {
	if !c.responded {
		c.responded = true
		return c.session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    screen.Text,
				Components: components(screen),
			},
		})
	}
	content := screen.Text
	comps := components(screen)
	_, err := c.session.InteractionResponseEdit(c.interaction.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &comps,
	})
	return err
}

// messageChat renders screens into the channel a plain message arrived
// from. Edits target the last screen this chat rendered; before any
// render an edit degrades to a fresh message.
type messageChat struct {
	session   *discordgo.Session
	channelID string
	lastID    string
}

var _ output.Chat = (*messageChat)(nil)

func newMessageChat(s *discordgo.Session, channelID string) *messageChat {
	return &messageChat{session: s, channelID: channelID}
}

func (c *messageChat) Render(ctx context.Context, screen output.Screen) error {
	msg, err := c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content:    screen.Text,
		Components: components(screen),
	})
	if err != nil {
		return err
	}
	c.lastID = msg.ID
	return nil
}

func (c *messageChat) Edit(ctx context.Context, screen output.Screen) error {
	if c.lastID == "" {
		return c.Render(ctx, screen)
	}
	content := screen.Text
	comps := components(screen)
	_, err := c.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         c.lastID,
		Channel:    c.channelID,
		Content:    &content,
		Components: &comps,
	})
	return err
}
