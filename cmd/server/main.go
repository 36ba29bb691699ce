package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/board"
	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/keymutex"
	"github.com/KirkDiggler/monopoly/internal/common/logger"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/config"
	"github.com/KirkDiggler/monopoly/internal/dice"
	"github.com/KirkDiggler/monopoly/internal/handlers/api"
	"github.com/KirkDiggler/monopoly/internal/handlers/discord"
	"github.com/KirkDiggler/monopoly/internal/handlers/ws"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/repositories/room"
	"github.com/KirkDiggler/monopoly/internal/services/game"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
	"github.com/KirkDiggler/monopoly/internal/services/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logs, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logs.Sync()

	if err := run(cfg, logs); err != nil {
		logs.Fatalw("server stopped", "error", err)
	}
	logs.Info("server has been shut down")
}

func run(cfg *config.Config, logs *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	roomRepo, closeRepo, err := newRoomRepository(ctx, cfg, logs)
	if err != nil {
		return err
	}
	defer closeRepo()

	systemClock := clock.New()
	uuidGenerator := uuid.New()

	gameSvc, err := game.New(&game.Config{
		StartingMoney:  cfg.StartingMoney,
		PassStartBonus: cfg.PassStartBonus,
		JailFine:       cfg.JailFine,
		Board:          board.MustLoad(),
		DiceRoller:     dice.New(&dice.Config{Seed: cfg.DiceSeed}),
		Clock:          systemClock,
		UUIDGenerator:  uuidGenerator,
		Logger:         logs.Named("game"),
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	lobbySvc, err := lobby.New(&lobby.Config{
		MaxPlayers: cfg.MaxPlayers,
		Settings: models.RoomSettings{
			StartingMoney: cfg.StartingMoney,
			HouseLimit:    game.DefaultHouseStock,
			HotelLimit:    game.DefaultHotelStock,
		},
		RoomRepo:      roomRepo,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
		Logger:        logs.Named("lobby"),
	})
	if err != nil {
		return fmt.Errorf("failed to create lobby service: %w", err)
	}

	connections, err := registry.New(&registry.Config{Logger: logs.Named("registry")})
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}

	var announcer ws.Announcer
	if cfg.DiscordEnabled() {
		bot, err := discord.New(&discord.Config{
			Token:         cfg.DiscordToken,
			ApplicationID: cfg.DiscordApplicationID,
			GuildID:       cfg.DiscordGuildID,
			ChannelID:     cfg.DiscordChannelID,
			LobbyService:  lobbySvc,
			Logger:        logs.Named("discord"),
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				logs.Warnw("failed to stop Discord bot", "error", err)
			}
		}()
		announcer = bot
	}

	locks := keymutex.New()

	dispatcher, err := ws.NewDispatcher(&ws.DispatcherConfig{
		GameService:   gameSvc,
		LobbyService:  lobbySvc,
		Registry:      connections,
		Locks:         locks,
		Announcer:     announcer,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
		Logger:        logs.Named("ws"),
	})
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	wsHandler, err := ws.NewHandler(&ws.HandlerConfig{
		Dispatcher:     dispatcher,
		LobbyService:   lobbySvc,
		UUIDGenerator:  uuidGenerator,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logs.Named("ws"),
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket handler: %w", err)
	}

	apiHandler, err := api.New(&api.Config{
		GameService:  gameSvc,
		LobbyService: lobbySvc,
		Registry:     connections,
		Locks:        locks,
		Logger:       logs.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("failed to create api handler: %w", err)
	}

	router := mux.NewRouter()
	apiHandler.Register(router)
	router.Handle("/ws/{room_code}/{player_id}", wsHandler).Methods(http.MethodGet)

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logs.Infow("server listening", "addr", cfg.HTTPAddr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logs.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := connections.BroadcastAll(ws.Envelope{Type: ws.MessageError, Data: map[string]string{"message": "server shutting down"}}); err != nil {
		logs.Warnw("failed to notify connections", "error", err)
	}

	return nil
}

// newRoomRepository keeps rooms in Redis when REDIS_ADDR is set and in memory otherwise
func newRoomRepository(ctx context.Context, cfg *config.Config, logs *zap.SugaredLogger) (room.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		logs.Info("storing rooms in memory")
		return room.NewMemory(), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo, err := room.NewRedis(&room.Config{RedisClient: redisClient, TTL: cfg.RoomTTL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create room repository: %w", err)
	}
	logs.Infow("storing rooms in redis", "addr", cfg.RedisAddr)

	return repo, func() { _ = redisClient.Close() }, nil
}
