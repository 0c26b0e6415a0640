package haikubot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestTransformedReply(t *testing.T) {
	reply := transformedReply("<@1>", "one one on \none one one on \none one on \n")
	assert.Equal(t, "<@1>, you wrote a haiku without noticing:\n> one one on \n> one one one on \n> one one on ", reply)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "> a\n> b", quote("a\nb"))
	assert.Equal(t, "> a", quote("a"))
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, `a\nb\nc`, oneLine("a\nb\nc"))
}

func TestMentions(t *testing.T) {
	me := &discordgo.User{ID: "7"}
	m := &discordgo.Message{Mentions: []*discordgo.User{{ID: "3"}, {ID: "7"}}}
	assert.True(t, mentions(m, me))
	assert.False(t, mentions(&discordgo.Message{Mentions: []*discordgo.User{{ID: "3"}}}, me))
	assert.False(t, mentions(m, nil))
}

func TestOverrideReacts(t *testing.T) {
	defaults := []string{"💯", "🍵"}
	assert.Equal(t, defaults, overrideReacts(defaults, ""))
	assert.Equal(t, defaults, overrideReacts(defaults, "   "))
	assert.Equal(t, []string{"🌸", "🍂"}, overrideReacts(defaults, "🌸 🍂"))
}

func TestRandomString(t *testing.T) {
	assert.Equal(t, "", randomString(nil))
	assert.Equal(t, "x", randomString([]string{"x"}))
	assert.Contains(t, []string{"a", "b"}, randomString([]string{"a", "b"}))
}

func TestReference(t *testing.T) {
	ref := reference(&discordgo.Message{ID: "1", ChannelID: "2", GuildID: "3"})
	assert.Equal(t, &discordgo.MessageReference{MessageID: "1", ChannelID: "2", GuildID: "3"}, ref)
}
