package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/peonbot/peon/internal/auction"
	"github.com/peonbot/peon/internal/command"
	"github.com/peonbot/peon/internal/config"
	"github.com/peonbot/peon/internal/dice"
	"github.com/peonbot/peon/internal/discord"
	"github.com/peonbot/peon/internal/gpt"
	"github.com/peonbot/peon/internal/services"
	"github.com/peonbot/peon/internal/starify"
	"github.com/peonbot/peon/internal/telegram"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()
	if v := os.Getenv("PEON_CONFIG"); v != "" {
		*configPath = v
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	deps, err := buildComponents(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Discord.Token != "" {
		router := command.NewRouter(logger)
		bot, err := discord.New(cfg.Discord.Token, router, logger)
		if err != nil {
			logger.Error("creating discord bot", "error", err)
			os.Exit(1)
		}
		if err := deps.register(router, "!", bot.Mention); err != nil {
			logger.Error("registering discord commands", "error", err)
			os.Exit(1)
		}
		g.Go(func() error { return bot.Start(ctx) })
	}

	if cfg.Telegram.Token != "" {
		router := command.NewRouter(logger)
		bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.Allowlist, router, logger)
		if err != nil {
			logger.Error("creating telegram bot", "error", err)
			os.Exit(1)
		}
		if err := deps.register(router, "/", bot.Mention); err != nil {
			logger.Error("registering telegram commands", "error", err)
			os.Exit(1)
		}
		g.Go(func() error { return bot.Start(ctx) })
	}

	logger.Info("peon started", "config", *configPath)
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("peon stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("peon stopped")
}

// components holds everything the command set needs, built once and shared
// by both platform routers.
type components struct {
	cfg        *config.Config
	logger     *slog.Logger
	rnd        *rand.Rand
	roller     *dice.Roller
	stars      *starify.Engine
	translator *services.Translator
	wiki       *services.WikiClient
	urban      *services.UrbanClient
	weather    *services.WeatherClient
	matcher    *auction.Matcher
	scraper    *auction.Scraper
	completer  *gpt.Completer
}

func buildComponents(cfg *config.Config, logger *slog.Logger) (*components, error) {
	// shared by both adapters, whose dispatchers run handlers concurrently
	rnd := dice.NewLockedRand(time.Now().UnixNano())

	c := &components{
		cfg:        cfg,
		logger:     logger,
		rnd:        rnd,
		roller:     dice.NewRoller(dice.NewSource(rnd)),
		stars:      starify.New(rnd),
		translator: services.NewTranslator(),
		wiki:       services.NewWikiClient(),
	}

	if cfg.RapidAPIToken != "" {
		c.urban = services.NewUrbanClient(cfg.RapidAPIToken)
	}
	if cfg.OpenWeatherToken != "" {
		c.weather = services.NewWeatherClient(cfg.OpenWeatherToken)
	}

	if cfg.Auction.CatalogPath != "" {
		catalog, err := auction.LoadCatalog(cfg.Auction.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading item catalog: %w", err)
		}
		c.matcher = auction.NewMatcher(catalog)
		if cfg.Auction.FuzzyCutoff > 0 {
			c.matcher.Cutoff = cfg.Auction.FuzzyCutoff
		}
		c.scraper = auction.NewScraper(cfg.Auction.BaseURL, logger)
	}

	if cfg.OpenAI.Token != "" {
		db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		c.completer, err = gpt.New(cfg.OpenAI.Token, cfg.OpenAI.Model, db, logger)
		if err != nil {
			return nil, fmt.Errorf("creating completer: %w", err)
		}
	}

	return c, nil
}

// register wires the command set into one platform's router. Commands whose
// backing service is unconfigured are left out rather than half-wired.
func (c *components) register(router *command.Router, sign string, mention func() string) error {
	handlers := []any{
		command.NewHelpCommand(router, sign),
		command.NewRollCommand(c.roller),
		command.NewStarifyCommand(c.stars),
		command.NewTranslateCommand(c.translator),
		command.NewMangleCommand(c.translator, c.rnd),
		command.NewWikiCommand(c.wiki),
		command.NewMorseCommand(),
		command.NewPuntoCommand(),
		command.NewLitifyCommand(),
		command.NewReverseCommand(),
		command.NewEightBallCommand(c.rnd),
		command.NewStatsCommand(router),
	}
	if c.matcher != nil {
		handlers = append(handlers, command.NewAuctionCommand(c.matcher, c.scraper, c.logger))
	}
	if c.urban != nil {
		handlers = append(handlers, command.NewUrbanCommand(c.urban))
	}
	if c.weather != nil {
		handlers = append(handlers, command.NewWeatherCommand(c.weather))
	}
	if c.completer != nil {
		handlers = append(handlers,
			command.NewGPTRoleCommand(c.completer),
			command.NewGPTMention(c.completer, mention),
		)
	}
	return router.Register(handlers...)
}

// setupLogger builds the process logger: colored output on stderr, plus a
// plain copy in the log file when one is configured.
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	noColor := false
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		noColor = true
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	})), nil
}
