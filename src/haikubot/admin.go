package haikubot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/haiku-transformer/src/haikubot/db"
	log "github.com/sirupsen/logrus"
)

const commandPrefix = "!haiku"

// adminCommandPerms is a bitmask for the min permissions required to send admin commands. If any flag is set, the
// user can send admin commands.
const adminCommandPerms = discordgo.PermissionAdministrator | discordgo.PermissionManageChannels | discordgo.PermissionManageServer

func (h *Bot) HandleAdminCommand(s *discordgo.Session, m *discordgo.Message) {
	perms, err := h.Permissions(s, m)
	if err != nil {
		log.Println("could not retrieve permissions for user, ignoring admin command,", err)
		return
	}
	if perms&adminCommandPerms == 0 {
		if h.config.Debug {
			log.Debugf("could not verify admin permissions, found perms %d, expected %d", perms, adminCommandPerms)
		}
		h.DM(s, m, fmt.Sprintf("You do not have permissions to manage the haiku bot in <#%s>", m.ChannelID))
		return
	}
	command, err := parseCommand(strings.TrimPrefix(m.Content, commandPrefix))
	if err != nil {
		h.reply(s, m, err.Error())
		return
	}

	switch command.Operation {
	case OpFeatureOn:
		if err := h.updateFeatures(m, command, EnableFeatures); err != nil {
			log.Println("could not enable features,", err)
			h.reply(s, m, "Sorry, I could not update the features for "+command.MentionTarget())
			return
		}
		h.reply(s, m, fmt.Sprintf("Enabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureOff:
		if err := h.updateFeatures(m, command, DisableFeatures); err != nil {
			log.Println("could not disable features,", err)
			h.reply(s, m, "Sorry, I could not update the features for "+command.MentionTarget())
			return
		}
		h.reply(s, m, fmt.Sprintf("Disabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureList:
		h.handleFeatureList(s, m, command)
	case OpHelp:
		h.reply(s, m, AdminHelp)
	}
}

func isCommand(content string) bool {
	return content == commandPrefix || strings.HasPrefix(content, commandPrefix+" ")
}

func (h *Bot) reply(s *discordgo.Session, m *discordgo.Message, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, reference(m)); err != nil {
		log.Println("could not reply to admin command,", err)
	}
}

func (h *Bot) Permissions(s *discordgo.Session, m *discordgo.Message) (int64, error) {
	g, err := s.Guild(m.GuildID)
	if err != nil {
		return 0, err
	}
	if g.OwnerID == m.Author.ID {
		return discordgo.PermissionAll, nil
	}
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		return 0, err
	}
	roles, err := s.GuildRoles(m.GuildID)
	if err != nil {
		return 0, err
	}
	roleMap := make(map[string]int64)
	for _, role := range roles {
		roleMap[role.ID] = role.Permissions
	}
	permissions := roleMap[m.GuildID] // @everyone shares the guild's ID
	for _, role := range member.Roles {
		permissions |= roleMap[role]
	}
	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll, nil
	}
	return permissions, nil
}

func (h *Bot) handleFeatureList(s *discordgo.Session, m *discordgo.Message, command Command) {
	ctx := context.Background()
	var flags db.ConfigFlag
	switch command.Target {
	case globalTarget:
		gid, err := strconv.Atoi(m.GuildID)
		if err != nil {
			log.Println("could not parse guildID as integer,", m.GuildID)
			return
		}
		currConfig, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid)
		if err != nil {
			log.Println("could not read guild config from database,", err)
			return
		}
		flags = currConfig.Flags
		if currConfig.GuildID == 0 {
			flags = h.config.ActionFlags
		}
	default:
		cid, err := strconv.Atoi(command.Target)
		if err != nil {
			log.Println("could not parse channelID as integer,", command.Target)
			return
		}
		currConfig, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid)
		if err != nil {
			log.Println("could not read channel config from database,", err)
			return
		}
		flags = currConfig.Flags
	}
	h.reply(s, m, fmt.Sprintf("Features enabled for target %s: %s", command.MentionTarget(), flags))
}

type featureMutator func(db.ConfigFlag, db.ConfigFlag) db.ConfigFlag

func EnableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.Or(feats)
}

func DisableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.And(^feats) // and with bitwise not
}

func (h *Bot) updateFeatures(m *discordgo.Message, command Command, mutator featureMutator) error {
	ctx := context.Background()
	switch command.Target {
	case globalTarget:
		gid, err := strconv.Atoi(m.GuildID)
		if err != nil {
			return fmt.Errorf("could not parse guildID %s as integer: %w", m.GuildID, err)
		}
		currConfig, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid) // read
		if err != nil {
			return fmt.Errorf("could not retrieve guild config: %w", err)
		}
		if currConfig.GuildID == 0 { // first change starts from the defaults
			currConfig.Flags = h.config.ActionFlags
		}

		// modify
		currConfig.GuildID = gid
		currConfig.Flags = mutator(currConfig.Flags, command.Features)

		if _, err = db.GuildConfigDAO.Upsert(ctx, h.db, currConfig); err != nil { // write
			return fmt.Errorf("could not update guild config: %w", err)
		}
	default: // channel ID (target was verified by parseCommand)
		cid, err := strconv.Atoi(command.Target)
		if err != nil {
			return fmt.Errorf("could not parse channelID %s as integer: %w", command.Target, err)
		}
		currConfig, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid) // read
		if err != nil {
			return fmt.Errorf("could not retrieve channel config: %w", err)
		}

		currConfig.Flags = mutator(currConfig.Flags, command.Features)

		if _, err = db.ChannelConfigDAO.Upsert(ctx, h.db, cid, currConfig.Flags); err != nil { // write
			return fmt.Errorf("could not update channel config: %w", err)
		}
	}
	return nil
}

type Operation uint8

const (
	OpFeatureOn Operation = iota
	OpFeatureOff
	OpFeatureList
	OpHelp
)

const globalTarget = "global"

type Command struct {
	Operation Operation
	Target    string
	Features  db.ConfigFlag
}

func (c Command) MentionTarget() string {
	if c.Target == globalTarget {
		return globalTarget
	}
	return fmt.Sprintf("<#%s>", c.Target)
}

func parseCommand(content string) (Command, error) {
	tokens := strings.Fields(content)
	if len(tokens) < 1 {
		return Command{}, errors.New("expected a valid command after `!haiku`; send `!haiku help` for help")
	}
	command := tokens[0]
	if len(tokens) > 1 {
		command += " " + tokens[1]
	}
	result := Command{}
	switch {
	case command == "feature on":
		result.Operation = OpFeatureOn
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature on`; send `!haiku help` for help")
		}
	case command == "feature off":
		result.Operation = OpFeatureOff
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature off`; send `!haiku help` for help")
		}
	case command == "feature list":
		result.Operation = OpFeatureList
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target after `feature list`; send `!haiku help` for help")
		}
	case tokens[0] == "help":
		result.Operation = OpHelp
		return result, nil
	default:
		return Command{}, fmt.Errorf("could not understand command %s", command)
	}

	target, err := parseTarget(tokens[2])
	if err != nil {
		return Command{}, err
	}
	result.Target = target

	result.Features, err = parseFeatures(tokens[3:])
	if err != nil {
		return Command{}, err
	}
	return result, nil
}

// parseTarget accepts either "global" or a channel mention, returning the channel ID for the latter.
func parseTarget(target string) (string, error) {
	if target == globalTarget {
		return target, nil
	}
	if !strings.HasPrefix(target, "<#") || !strings.HasSuffix(target, ">") {
		return "", fmt.Errorf("couldn't parse target '%s' as valid target", target)
	}
	id, err := strconv.Atoi(target[2 : len(target)-1])
	if err != nil {
		return "", fmt.Errorf("couldn't parse target '%s' as valid channel mention", target)
	}
	return strconv.Itoa(id), nil
}

func parseFeatures(features []string) (db.ConfigFlag, error) {
	var result db.ConfigFlag
	for _, feature := range features {
		flag, ok := db.ParseFlag(feature)
		if !ok {
			return 0, fmt.Errorf("could not understand '%s' as a valid feature; send `!haiku help` for help", feature)
		}
		result |= flag
	}
	return result, nil
}

var AdminHelp = `All commands must be sent in the guild they are meant to apply to.
  ~~~!haiku feature on [target] [feature feature...]~~~
  ~~~!haiku feature off [target] [feature feature...]~~~
  ~~~!haiku feature list [target]~~~

~~~[target]~~~ can be either a channel mention or ~~~global~~~ to enable features for every channel in the guild.
~~~[feature feature...]~~~ is a space-separated list of features from the below list.

   - ~~~ReactToHaiku~~~ - adds an emoji reaction to any message written as a haiku
   - ~~~ReactToNonHaiku~~~ - adds an emoji reaction to any message which is not a haiku
   - ~~~TransformMessages~~~ - replies to messages whose words can be broken into a 5-7-5 haiku
   - ~~~ExplainNonHaiku~~~ - explains in direct messages why a message is not a haiku
   - ~~~ServeRandomHaiku~~~ - reacts to mentions by quoting some haiku previously found in the same guild
`

func init() {
	AdminHelp = strings.ReplaceAll(AdminHelp, "~~~", "`")
}
