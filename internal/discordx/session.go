// Package discordx wraps the discordgo session with the small surface the
// walker needs: channel resolution, history paging, and replies with
// attachments.
package discordx

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ferrovax/vidrelay/internal/domain"
)

// historyPageSize is the per-request message cap imposed by the Discord API.
const historyPageSize = 100

// readyTimeout bounds the wait for the gateway ready event after Open.
const readyTimeout = 30 * time.Second

// Session is an authenticated Discord connection.
type Session struct {
	dg     *discordgo.Session
	logger *slog.Logger
	selfID string
}

// Connect authenticates with the given bot token, opens the gateway
// connection and waits for the ready event.
func Connect(token string, logger *slog.Logger) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	ready := make(chan *discordgo.Ready, 1)
	dg.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		ready <- r
	})

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("open gateway: %w", err)
	}

	select {
	case r := <-ready:
		logger.Info("logged in", "user", r.User.String())
	case <-time.After(readyTimeout):
		dg.Close()
		return nil, fmt.Errorf("timed out waiting for ready event")
	}

	return &Session{
		dg:     dg,
		logger: logger,
		selfID: dg.State.User.ID,
	}, nil
}

// Close terminates the gateway connection.
func (s *Session) Close() error {
	return s.dg.Close()
}

// ChannelName resolves a channel and returns a human-readable reference,
// "<name> (<id>)", for log lines. Resolution failure means the channel is
// missing or the bot lacks access.
func (s *Session) ChannelName(channelID string) (string, error) {
	ch, err := s.dg.Channel(channelID)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrChannelInaccessible, channelID, err)
	}
	if ch.Name == "" {
		return channelID, nil
	}
	return fmt.Sprintf("%s (%s)", ch.Name, channelID), nil
}

// LastSelfMessage scans backward through channel history, newest first,
// for the most recent message authored by the bot itself. The scan stops
// after scanLimit messages; nil with no error means nothing was found
// within the cap.
func (s *Session) LastSelfMessage(channelID string, scanLimit int) (*domain.Message, error) {
	before := ""
	scanned := 0

	for scanned < scanLimit {
		limit := historyPageSize
		if rem := scanLimit - scanned; rem < limit {
			limit = rem
		}

		page, err := s.dg.ChannelMessages(channelID, limit, before, "", "")
		if err != nil {
			return nil, fmt.Errorf("fetch history: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for _, m := range page {
			if m.Author != nil && m.Author.ID == s.selfID {
				msg := toDomain(m)
				return &msg, nil
			}
		}

		scanned += len(page)
		before = page[len(page)-1].ID
	}

	return nil, nil
}

// MessagesAfter fetches every message posted strictly after the given
// instant, oldest first, paging through the API as needed.
func (s *Session) MessagesAfter(channelID string, after time.Time) ([]domain.Message, error) {
	afterID := TimeToSnowflake(after)
	var out []domain.Message

	for {
		page, err := s.dg.ChannelMessages(channelID, historyPageSize, "", afterID, "")
		if err != nil {
			return nil, fmt.Errorf("fetch history: %w", err)
		}
		if len(page) == 0 {
			break
		}

		// The API orders pages newest first; normalize to chronological.
		sort.Slice(page, func(i, j int) bool {
			return snowflakeLess(page[i].ID, page[j].ID)
		})

		for _, m := range page {
			out = append(out, toDomain(m))
		}

		afterID = page[len(page)-1].ID
		if len(page) < historyPageSize {
			break
		}
	}

	return out, nil
}

// Reply responds to the originating message with the given text and the
// file attached. The reply mention is suppressed so the original author
// is not pinged.
func (s *Session) Reply(msg domain.Message, content, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	_, err = s.dg.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        filepath.Base(filePath),
			ContentType: "video/mp4",
			Reader:      f,
		}},
		Reference: &discordgo.MessageReference{
			MessageID: msg.ID,
			ChannelID: msg.ChannelID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrReplyFailed, err)
	}
	return nil
}

// Send posts a plain message to a channel.
func (s *Session) Send(channelID, content string) error {
	_, err := s.dg.ChannelMessageSend(channelID, content)
	return err
}

func toDomain(m *discordgo.Message) domain.Message {
	tag := ""
	if m.Author != nil {
		tag = m.Author.String()
	}
	return domain.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		AuthorTag: tag,
		CreatedAt: m.Timestamp,
	}
}
