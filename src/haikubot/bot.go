package haikubot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/haiku-transformer/src/haiku"
	"github.com/kalexmills/haiku-transformer/src/haikubot/db"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Token string
	// ActionFlags are the features enabled in guilds which were never configured with an admin command.
	ActionFlags    db.ConfigFlag
	PositiveReacts []string
	NegativeReacts []string

	DBPath string
	Debug  bool
}

func (c Config) String() string {
	return fmt.Sprintf("\tActionFlags: %s\n\tPositiveReacts: %v\n\tNegativeReacts: %v\n\tDBPath: %s\n\tDebug: %t\n",
		c.ActionFlags, c.PositiveReacts, c.NegativeReacts, c.DBPath, c.Debug)
}

type Bot struct {
	session *discordgo.Session
	db      *sql.DB

	config Config

	mu           sync.Mutex
	channelCache map[string]*discordgo.Channel
	dmCache      map[string]*discordgo.Channel
}

func NewBot(config Config, sqlDB *sql.DB) *Bot {
	log.Printf("Haiku Bot Config:\n%v", config)
	return &Bot{
		config:       config,
		db:           sqlDB,
		channelCache: make(map[string]*discordgo.Channel),
		dmCache:      make(map[string]*discordgo.Channel),
	}
}

func (h *Bot) Open() error {
	var err error
	h.session, err = discordgo.New("Bot " + h.config.Token)
	if err != nil {
		log.Println("error creating Discord session,", err)
		return err
	}

	if h.config.Debug {
		h.session.LogLevel = discordgo.LogDebug
	}

	h.session.AddHandler(h.ReceiveNewMessage)

	h.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions | discordgo.IntentsDirectMessageReactions

	err = h.session.Open()
	if err != nil {
		log.Println("error opening connection,", err)
		return err
	}
	return nil
}

func (h *Bot) Close() error {
	return h.session.Close()
}

func (h *Bot) ReceiveNewMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic on content, %s, panicking on: %v\n%s", oneLine(m.Content), r, debug.Stack())
		}
	}()
	if m.Author == nil || m.Author.Bot { // don't talk to bots
		return
	}
	if isCommand(m.Content) {
		if m.GuildID != "" {
			h.HandleAdminCommand(s, m.Message)
		}
		return
	}

	flags := h.flags(m.Message)
	if flags.ServeRandomHaiku() && mentions(m.Message, s.State.User) {
		h.ServeRandomHaiku(s, m.Message)
		return
	}
	if err := haiku.IsHaiku(m.Content); err == nil {
		log.Printf("received haiku: %s", oneLine(m.Content))
		h.HandleHaiku(s, m.Message, flags)
	} else {
		h.HandleNonHaiku(s, m.Message, flags, err)
	}
}

// HandleHaiku handles a message which was written as a haiku.
func (h *Bot) HandleHaiku(s *discordgo.Session, m *discordgo.Message, flags db.ConfigFlag) {
	if err := h.record(m, m.Content); err != nil && !errors.Is(err, db.ErrDuplicate) {
		log.Println("could not record haiku,", err)
	}
	if flags.ReactToHaiku() {
		positive, _ := h.reacts(m.GuildID)
		h.react(s, m, randomString(positive))
	}
}

// HandleNonHaiku handles a message which was not written as a haiku, but may still read as one once
// its words are broken into lines.
func (h *Bot) HandleNonHaiku(s *discordgo.Session, m *discordgo.Message, flags db.ConfigFlag, explainErr error) {
	if flags.TransformMessages() {
		if transformed, ok := haiku.Transform(m.Content); ok {
			h.HandleTransformed(s, m, transformed)
			return
		}
	}

	if flags.ReactToNonHaiku() {
		_, negative := h.reacts(m.GuildID)
		h.react(s, m, randomString(negative))
		log.Println("reacted to non-haiku,", m.ID, oneLine(m.Content))
	}
	if !flags.ExplainNonHaiku() {
		return
	}
	if isDM, err := h.isDM(s, m.ChannelID); err != nil {
		log.Println("could not lookup channel,", err)
	} else if isDM {
		h.ExplainHaiku(s, m, explainErr)
	}
}

// HandleTransformed replies to m with the haiku hidden in its text, unless the same haiku was seen before.
func (h *Bot) HandleTransformed(s *discordgo.Session, m *discordgo.Message, transformed string) {
	err := h.record(m, transformed)
	if errors.Is(err, db.ErrDuplicate) {
		log.Println("not replying to repeated haiku,", m.ID, oneLine(transformed))
		return
	}
	if err != nil {
		log.Println("could not record transformed haiku,", err)
	}
	_, err = s.ChannelMessageSendReply(m.ChannelID, transformedReply(m.Author.Mention(), transformed), reference(m))
	if err != nil {
		log.Println("could not reply with transformed haiku,", err)
		return
	}
	log.Printf("transformed message %s into haiku: %s", m.ID, oneLine(transformed))
}

func (h *Bot) ServeRandomHaiku(s *discordgo.Session, m *discordgo.Message) {
	gid, err := strconv.Atoi(m.GuildID)
	if err != nil {
		log.Println("could not parse guildID as integer,", m.GuildID)
		return
	}
	found, err := db.HaikuDAO.Random(context.Background(), h.db, gid)
	if err != nil {
		log.Println("could not read random haiku from database,", err)
		return
	}
	reply := "I haven't seen any haiku here yet."
	if found.Content != "" {
		reply = fmt.Sprintf("%s\n  by %s", quote(strings.TrimSpace(found.Content)), found.AuthorMention)
	}
	_, err = s.ChannelMessageSendReply(m.ChannelID, reply, reference(m))
	if err != nil {
		log.Println("could not send random haiku,", err)
	}
}

func (h *Bot) ExplainHaiku(s *discordgo.Session, m *discordgo.Message, explainErr error) {
	if explainErr == nil {
		log.Println("tried to explain a non-haiku without an error,", oneLine(m.Content))
		return
	}
	_, err := s.ChannelMessageSendReply(m.ChannelID, explainErr.Error(), reference(m))
	if err != nil {
		log.Println("could not send message to user DM channel,", err)
		return
	}
}

// DM sends content to the author of m in a direct message.
func (h *Bot) DM(s *discordgo.Session, m *discordgo.Message, content string) {
	dmChannel, err := h.createDMChannel(s, m.Author.ID)
	if err != nil {
		log.Println("could not create user DM channel,", err)
		return
	}
	_, err = s.ChannelMessageSend(dmChannel.ID, content)
	if err != nil {
		log.Println("could not send message to user DM channel,", err)
	}
}

// record stores a haiku found in a guild message. Haiku from direct messages are not kept.
func (h *Bot) record(m *discordgo.Message, content string) error {
	if m.GuildID == "" {
		return nil
	}
	var ids [3]int
	for i, id := range []string{m.GuildID, m.ChannelID, m.ID} {
		n, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("could not parse id %s as integer: %w", id, err)
		}
		ids[i] = n
	}

	ctx := context.Background()
	if err := db.CheckHash(ctx, h.db, ids[2], DuplicateHash(content)); err != nil {
		return err
	}
	_, err := db.HaikuDAO.Upsert(ctx, h.db, db.Haiku{
		GuildID:       ids[0],
		ChannelID:     ids[1],
		MessageID:     ids[2],
		AuthorMention: m.Author.Mention(),
		Content:       content,
	})
	return err
}

// flags returns the features enabled in the channel m was sent to.
func (h *Bot) flags(m *discordgo.Message) db.ConfigFlag {
	gid, _ := strconv.Atoi(m.GuildID) // zero for direct messages
	cid, err := strconv.Atoi(m.ChannelID)
	if err != nil {
		log.Println("could not parse channelID as integer,", m.ChannelID)
		return h.config.ActionFlags
	}
	flags, err := db.ResolveFlags(context.Background(), h.db, h.config.ActionFlags, gid, cid)
	if err != nil {
		log.Println("could not read feature flags from database,", err)
		return h.config.ActionFlags
	}
	if h.config.Debug {
		log.Debugf("features for guild %d, channel %d: %s", gid, cid, flags)
	}
	return flags
}

// reacts returns the positive and negative reactions used in a guild.
func (h *Bot) reacts(guildID string) (positive, negative []string) {
	positive, negative = h.config.PositiveReacts, h.config.NegativeReacts
	gid, err := strconv.Atoi(guildID)
	if err != nil {
		return positive, negative
	}
	conf, err := db.GuildConfigDAO.FindByID(context.Background(), h.db, gid)
	if err != nil {
		log.Println("could not read guild config from database,", err)
		return positive, negative
	}
	return overrideReacts(positive, conf.PositiveReacts), overrideReacts(negative, conf.NegativeReacts)
}

func overrideReacts(defaults []string, override string) []string {
	if reacts := strings.Fields(override); len(reacts) > 0 {
		return reacts
	}
	return defaults
}

func (h *Bot) isDM(s *discordgo.Session, channelID string) (bool, error) {
	c, err := h.lookupChannel(s, channelID)
	if err != nil {
		return false, err
	}
	return c.Type == discordgo.ChannelTypeDM && len(c.Recipients) == 1, nil
}

func (h *Bot) react(s *discordgo.Session, m *discordgo.Message, reaction string) {
	if reaction == "" {
		return
	}
	err := s.MessageReactionAdd(m.ChannelID, m.ID, reaction)
	if err != nil {
		log.Println("could not add emoji reaction,", err)
		return
	}
}

func (h *Bot) createDMChannel(s *discordgo.Session, authorID string) (*discordgo.Channel, error) {
	h.mu.Lock()
	c, ok := h.dmCache[authorID]
	h.mu.Unlock()
	if ok {
		return c, nil
	}
	c, err := s.UserChannelCreate(authorID)
	if err != nil {
		return nil, err
	}
	log.Println("retrieved new DM channel for user", authorID)
	h.mu.Lock()
	h.channelCache[c.ID] = c
	h.dmCache[authorID] = c
	h.mu.Unlock()
	return c, nil
}

func (h *Bot) lookupChannel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	h.mu.Lock()
	c, ok := h.channelCache[channelID]
	h.mu.Unlock()
	if ok {
		return c, nil
	}
	c, err := s.Channel(channelID)
	if err != nil {
		return nil, err
	}
	log.Println("looked up channel", channelID)
	h.mu.Lock()
	h.channelCache[channelID] = c
	if c.Type == discordgo.ChannelTypeDM && len(c.Recipients) == 1 {
		h.dmCache[c.Recipients[0].ID] = c
	}
	h.mu.Unlock()
	return c, nil
}

func mentions(m *discordgo.Message, user *discordgo.User) bool {
	if user == nil {
		return false
	}
	for _, mentioned := range m.Mentions {
		if mentioned != nil && mentioned.ID == user.ID {
			return true
		}
	}
	return false
}

func reference(m *discordgo.Message) *discordgo.MessageReference {
	return &discordgo.MessageReference{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
	}
}

func transformedReply(authorMention, transformed string) string {
	return fmt.Sprintf("%s, you wrote a haiku without noticing:\n%s", authorMention, quote(strings.TrimSuffix(transformed, "\n")))
}

func randomString(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	return strs[rand.Intn(len(strs))]
}

func quote(str string) string {
	return "> " + strings.ReplaceAll(str, "\n", "\n> ")
}

func oneLine(str string) string {
	return strings.ReplaceAll(str, "\n", "\\n")
}
