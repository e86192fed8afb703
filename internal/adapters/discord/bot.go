package discord

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"langbot/internal/config"
	"langbot/internal/ports/input"
	"langbot/internal/ports/output"
	"langbot/internal/session"
)

// Platform is the identity namespace this adapter tags its events with.
const Platform = "discord"

// Bot is the Discord adapter. It turns gateway traffic into neutral
// session events and leaves every decision to the session engine.
type Bot struct {
	session  *discordgo.Session
	config   *config.Config
	resolver input.SessionResolver
}

// NewBot creates a Bot over the given session resolver.
func NewBot(cfg *config.Config, resolver input.SessionResolver) *Bot {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal("❌ Erreur lors de la création de la session Discord:", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:  s,
		config:   cfg,
		resolver: resolver,
	}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessage)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if name != "start" && name != "menu" {
			return
		}
		b.dispatch(ctx, interactionUserID(i), newInteractionChat(s, i), session.Event{
			Kind:    session.KindCommand,
			Command: name,
			Locale:  string(i.Locale),
		})
	case discordgo.InteractionMessageComponent:
		b.dispatch(ctx, interactionUserID(i), newInteractionChat(s, i), session.Event{
			Kind:   session.KindSelection,
			Token:  i.MessageComponentData().CustomID,
			Locale: string(i.Locale),
		})
	}
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}
	b.dispatch(context.Background(), m.Author.ID, newMessageChat(s, m.ChannelID), session.Event{
		Kind: session.KindMessage,
		Text: text,
	})
}

// dispatch resolves the user's session and hands it the event. Each
// gateway event already runs on its own goroutine, so per-user turn
// ordering is the session's job, not this adapter's.
func (b *Bot) dispatch(ctx context.Context, platformUserID string, chat output.Chat, ev session.Event) {
	if platformUserID == "" {
		return
	}
	live, err := b.resolver.Resolve(ctx, Platform, platformUserID)
	if err != nil {
		log.Printf("⚠️ resolve session for %s/%s: %v", Platform, platformUserID, err)
		return
	}

	t := &session.Turn{Event: ev, Chat: chat}
	switch ev.Kind {
	case session.KindCommand:
		err = live.HandleCommand(ctx, t)
	case session.KindMessage:
		err = live.HandleMessage(ctx, t)
	case session.KindSelection:
		err = live.HandleSelection(ctx, t)
	}
	if err != nil {
		log.Printf("⚠️ dispatch %s/%s: %v", Platform, platformUserID, err)
	}
}

// interactionUserID returns the acting user's ID for guild and DM
// interactions alike.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	commands := []*discordgo.ApplicationCommand{
		{Name: "start", Description: "Start talking to the language bot"},
		{Name: "menu", Description: "Show the main menu"},
	}
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Printf("⚠️ Erreur lors de l'enregistrement de la commande %s: %v", cmd.Name, err)
		}
	}

	fmt.Println("🤖 Bot en ligne ! Appuyez sur CTRL+C pour quitter.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
