package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/qianlnk/hotel/config"
	"github.com/qianlnk/hotel/logger"
	"github.com/qianlnk/hotel/metrics"
	"github.com/qianlnk/hotel/services"
	"github.com/qianlnk/hotel/storage"
	"github.com/qianlnk/hotel/storage/sqlite"
)

var upgrader = websocket.Upgrader{
	// spectators are read-only, any origin may watch
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func main() {
	configPath := flag.String("config", "", "path to a yaml, toml or json config file")
	flag.Parse()

	if err := run(*configPath, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("hotel stopped")
	}
}

func run(configPath string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Pretty, os.Stderr); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	feed := services.NewWebSocketManager()
	in := bufio.NewReader(stdin)

	manager := services.NewManager(services.Options{
		Defaults: cfg.HotelConfig(),
		Roles:    cfg.Game.Roles,
		Flow:     cfg.Game.FlowSequence(),
		Rules: services.Rules{
			SwindlerMode:    cfg.Game.Swindler(),
			JudgeVoteFor:    cfg.Game.JudgeVoteFor,
			JudgeResolution: cfg.Game.Resolution(),
		},
		RetellFormat: cfg.Game.RetellFormat,
		Seed:         cfg.Game.Seed,
		Store:        store,
		Decider:      services.NewConsoleDecider(in, stdout),
		Notifier:     feed,
		Metrics:      metrics.New(reg),
		Out:          stdout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Spectator.Enabled {
		srv := &http.Server{
			Addr:              cfg.Spectator.Addr,
			Handler:           newRouter(feed, reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info().Str("addr", srv.Addr).Msg("spectator server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("spectator server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return commandLoop(ctx, manager, in, stdout)
	})
	return g.Wait()
}

func openStore(cfg *config.Config) (storage.HotelStore, error) {
	if cfg.Storage.Driver == "sqlite" {
		return sqlite.Open(cfg.Storage.Path)
	}
	return storage.NewMemoryStore(), nil
}

type readResult struct {
	line string
	err  error
}

// commandLoop reads one command per line until quit, exit, end of input or
// cancellation of ctx.
func commandLoop(ctx context.Context, manager *services.Manager, in *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome to the hotel. Type 'help' for the commands of the current stage.")
	for {
		fmt.Fprint(out, "> ")
		lines := make(chan readResult, 1)
		go func() {
			line, err := in.ReadString('\n')
			lines <- readResult{line: line, err: err}
		}()

		var line string
		var err error
		select {
		case <-ctx.Done():
			log.Warn().Err(context.Cause(ctx)).Msg("command loop stopped")
			return nil
		case r := <-lines:
			line, err = r.line, r.err
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read command: %w", err)
		}

		input := strings.Fields(line)
		if len(input) > 0 {
			switch strings.ToLower(input[0]) {
			case "quit", "exit":
				return nil
			}
			manager.HandleCommand(ctx, input)
		}
		if err == io.EOF {
			return nil
		}
	}
}

func newRouter(feed *services.WebSocketManager, reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
		},
		MaxAge: 12 * time.Hour,
	}))

	r.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		id := c.Query("spectator")
		if id == "" {
			id = uuid.NewString()
		}
		feed.RegisterConnection(id, conn)
	})

	api := r.Group("/api")
	{
		api.GET("/hotel", getHotel(feed))
		api.GET("/history", getHistory(feed))
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return r
}

func getHotel(feed *services.WebSocketManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		board, ok := feed.Board()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no game in progress"})
			return
		}
		c.JSON(http.StatusOK, board)
	}
}

func getHistory(feed *services.WebSocketManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"announcements": feed.Announcements()})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("spectator request")
	}
}
