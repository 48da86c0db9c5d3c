package hook

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/kotrzina/gas-wizard/pkg/config"
	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/prometheus"
	"github.com/kotrzina/gas-wizard/pkg/store"
	"github.com/kotrzina/gas-wizard/pkg/wa"
	"github.com/kozaktomas/diacritics"
	"github.com/sirupsen/logrus"
)

const (
	NotFoundReply = "Unable to get the info"
	cheapestLimit = 5
	statsLimit    = 5
)

// Messenger delivers replies and feeds incoming messages to registered handlers
type Messenger interface {
	RegisterEventHandler(handler wa.EventHandler)
	SendText(to, text string) error
}

// Bot answers price queries in chats.
// It works with the snapshot scraped on startup for the whole process lifetime,
// snapshot is nil when the scrape failed.
type Bot struct {
	messenger Messenger
	snapshot  *gwgp.Snapshot
	storage   store.Storage
	config    *config.Config
	monitor   *prometheus.Monitor
	logger    *logrus.Logger
}

func NewBot(
	messenger Messenger,
	snapshot *gwgp.Snapshot,
	storage store.Storage,
	conf *config.Config,
	monitor *prometheus.Monitor,
	logger *logrus.Logger,
) *Bot {
	b := &Bot{
		messenger: messenger,
		snapshot:  snapshot,
		storage:   storage,
		config:    conf,
		monitor:   monitor,
		logger:    logger,
	}

	for _, handler := range b.Handlers() {
		messenger.RegisterEventHandler(handler)
	}

	return b
}

// Handlers returns handlers of all commands in the order they are matched
func (b *Bot) Handlers() []wa.EventHandler {
	return []wa.EventHandler{
		b.command("help", b.help, "pomoc"),
		b.command("get", b.get, "cena", "price"),
		b.command("cities", b.cities, "list"),
		b.command("cheapest", b.cheapest, "top"),
		b.command("status", b.status),
		b.command("stats", b.stats),
	}
}

// command creates a handler for a prefixed command with optional aliases
// reply gets the sender and the raw arguments after the command word
func (b *Bot) command(name string, reply func(from, args string) string, aliases ...string) wa.EventHandler {
	names := append([]string{name}, aliases...)
	return wa.EventHandler{
		MatchFunc: func(msg string) bool {
			cmd, _, ok := b.parseCommand(msg)
			if !ok {
				return false
			}
			for _, n := range names {
				if cmd == n {
					return true
				}
			}
			return false
		},
		HandleFunc: func(from, msg string) error {
			_, args, _ := b.parseCommand(msg)
			b.monitor.BotCommands.WithLabelValues(name).Inc()
			return b.messenger.SendText(from, reply(from, args))
		},
	}
}

func (b *Bot) help(_, _ string) string {
	p := b.config.CommandPrefix
	return "Hello there, Human!\n\n" +
		"You have summoned me. Let's see about getting you what you need.\n\n" +
		p + "get <city> - gas price prediction for the city \n" +
		p + "cities - list of known cities \n" +
		p + "cheapest [regular|premium|diesel] - cities with the lowest prices \n" +
		p + "status - information about loaded prices \n" +
		p + "help - this help\n\n" +
		"City names are case sensitive, e.g. " + p + "get Toronto"
}

func (b *Bot) get(_, city string) string {
	if city == "" {
		return fmt.Sprintf("Usage: %sget <city>", b.config.CommandPrefix)
	}

	price, found := b.snapshot.Lookup(city)
	b.monitor.Lookups.WithLabelValues(fmt.Sprintf("%t", found)).Inc()
	if err := b.storage.AddLookup(city, found); err != nil {
		b.logger.Errorf("could not store lookup: %v", err)
	}

	if !found {
		return NotFoundReply
	}

	return b.snapshot.DateInfo() + "\n" + price.String()
}

func (b *Bot) cities(_, _ string) string {
	cities := b.snapshot.Cities()
	if len(cities) == 0 {
		return NotFoundReply
	}

	return fmt.Sprintf("Cities (%d): %s", len(cities), strings.Join(cities, ", "))
}

func (b *Bot) cheapest(_, args string) string {
	category, err := gwgp.ParseCategory(args)
	if err != nil {
		return "Unknown fuel category, use regular, premium or diesel."
	}

	ranked := b.snapshot.Cheapest(category, cheapestLimit)
	if len(ranked) == 0 {
		return NotFoundReply
	}

	reply := fmt.Sprintf("Cheapest %s: %s", category, b.snapshot.DateInfo())
	for i, r := range ranked {
		reply += fmt.Sprintf("\n%d. %s %s", i+1, r.City, r.Price)
	}
	return reply
}

func (b *Bot) status(_, _ string) string {
	if b.snapshot == nil {
		return "No price data available for this session."
	}

	age := durafmt.Parse(time.Since(b.snapshot.FetchedAt()).Round(time.Second)).LimitFirstN(2)
	return fmt.Sprintf(
		"%s\nCities: %d\nLoaded %s ago",
		b.snapshot.DateInfo(),
		b.snapshot.Len(),
		age.String(),
	)
}

func (b *Bot) stats(from, _ string) string {
	if !b.config.IsAdmin(from) {
		return "Sorry, stats are available only for admins."
	}

	lookups, err := b.storage.GetLookups()
	if err != nil {
		b.logger.Errorf("could not get lookups: %v", err)
		return "Something went wrong, please try again."
	}
	misses, err := b.storage.GetMisses()
	if err != nil {
		b.logger.Errorf("could not get misses: %v", err)
		return "Something went wrong, please try again."
	}

	return formatStats(lookups, misses, statsLimit)
}

func formatStats(lookups map[string]int, misses, limit int) string {
	type entry struct {
		city  string
		count int
	}

	entries := make([]entry, 0, len(lookups))
	for city, count := range lookups {
		entries = append(entries, entry{city: city, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].city < entries[j].city
	})

	reply := "Most wanted cities:"
	for i, e := range entries {
		if i == limit {
			break
		}
		reply += fmt.Sprintf("\n%s: %d", e.city, e.count)
	}
	reply += fmt.Sprintf("\nNot found: %d", misses)

	return reply
}

// parseCommand splits a prefixed message into the command word and its arguments.
// The command word is normalized, the arguments are kept as written because
// city lookups are case-sensitive.
func (b *Bot) parseCommand(msg string) (string, string, bool) {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, b.config.CommandPrefix) {
		return "", "", false
	}

	msg = strings.TrimSpace(strings.TrimPrefix(msg, b.config.CommandPrefix))
	word, args, _ := strings.Cut(msg, " ")

	return b.sanitizeCommand(word), strings.TrimSpace(args), true
}

func (b *Bot) sanitizeCommand(command string) string {
	c := strings.ToLower(strings.TrimSpace(command))
	clean, err := diacritics.Remove(c)
	if err != nil {
		b.logger.Errorf("could not remove diacritics: %v", err)
		return c
	}

	return clean
}
