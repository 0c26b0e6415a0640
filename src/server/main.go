package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kalexmills/haiku-transformer/src/haikubot"
	"github.com/kalexmills/haiku-transformer/src/haikubot/db"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	conf := readConfig()

	sqlDB, err := db.Open(conf.DBPath)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	defer sqlDB.Close()
	go haikubot.UpdateHashes(sqlDB)

	bot := haikubot.NewBot(conf, sqlDB)
	err = bot.Open()
	if err != nil {
		log.Fatalf("fail error opening bot: %v", err)
	}

	log.Println("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	err = bot.Close()
	if err != nil {
		log.Println("error closing session,", err)
	}
}

func readConfig() haikubot.Config {
	flag.String("dbPath", "./haikuDB.sqlite3", "path to the sqlite database")
	flag.String("logLevel", "info", "one of debug, info, warning, error")
	flag.Bool("debug", false, "enable debug logging of the Discord API")
	flag.Parse()

	viper.SetDefault("reactHaiku", true)
	viper.SetDefault("reactNonHaiku", false)
	viper.SetDefault("transformMessages", true)
	viper.SetDefault("explainNonHaiku", true)
	viper.SetDefault("serveRandomHaiku", true)
	viper.SetDefault("positiveReacts", []string{"💯", "🍙", "🍵", "🍶", "🍜"})
	viper.SetDefault("negativeReacts", []string{"🚫", "⛔"})

	viper.SetEnvPrefix("HAIKU_HAMMER")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/haikuhammer")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		log.Println("no config file found, using defaults,", err)
	}

	level, err := log.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	log.SetLevel(level)

	flags := db.ConfigFlag(0)
	if viper.GetBool("reactHaiku") {
		flags |= db.ConfigReactToHaiku
	}
	if viper.GetBool("reactNonHaiku") {
		flags |= db.ConfigReactToNonHaiku
	}
	if viper.GetBool("transformMessages") {
		flags |= db.ConfigTransformMessages
	}
	if viper.GetBool("explainNonHaiku") {
		flags |= db.ConfigExplainNonHaiku
	}
	if viper.GetBool("serveRandomHaiku") {
		flags |= db.ConfigServeRandomHaiku
	}
	return haikubot.Config{
		Token:          viper.GetString("token"),
		ActionFlags:    flags,
		PositiveReacts: viper.GetStringSlice("positiveReacts"),
		NegativeReacts: viper.GetStringSlice("negativeReacts"),
		Debug:          viper.GetBool("debug"),
		DBPath:         viper.GetString("dbPath"),
	}
}
