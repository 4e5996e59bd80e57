package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ir_gateway/internal/console"
	"ir_gateway/internal/handlers"
	"ir_gateway/internal/hardware"
	"ir_gateway/internal/logger"
	"ir_gateway/internal/macro"
	"ir_gateway/internal/repository"
	"ir_gateway/internal/repository/db"
	"ir_gateway/internal/server"
	"ir_gateway/internal/service"
	"ir_gateway/internal/version"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

const shutdownTimeout = 10 * time.Second

// @title           IR Gateway API
// @version         1.0
// @description     Transmit and receive infrared remote-control codes over HTTP.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfgErr := loadConfig()

	// init logger
	log := logger.Get(viper.GetString("log.level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}
	log.Infow("starting", "version", version.Version, "revision", version.Revision)

	if viper.GetBool("auth.enabled") && viper.GetString("auth.signing_key") == "" {
		log.Fatalw("auth.enabled requires auth.signing_key")
	}

	loc, err := time.LoadLocation(viper.GetString("ir.timezone"))
	if err != nil {
		log.Fatalw("invalid ir.timezone", "tz", viper.GetString("ir.timezone"), "err", err)
	}

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	device, err := newDevice(log)
	if err != nil {
		log.Fatalw("invalid ir.device", "err", err)
	}
	defer func() { _ = device.Close() }()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	macros := openMacros(ctx, log)

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, device, macros, service.Config{
		IR: service.IRConfig{
			LogSize:  viper.GetInt("ir.log_size"),
			Location: loc,
		},
		Auth: service.AuthConfig{
			SigningKey: viper.GetString("auth.signing_key"),
			TokenTTL:   viper.GetDuration("auth.token_ttl"),
		},
	}, log)
	if err := services.Begin(); err != nil {
		log.Fatalw("failed to start ir front end", "device", device.Name(), "err", err)
	}

	go services.Receiver.Run(ctx, viper.GetDuration("ir.poll_interval"))

	if viper.GetBool("console.enabled") {
		con := console.New(services.Infrared, services.Sequencer, os.Stdout, console.Options{
			HTTPAddr:   viper.GetString("port"),
			DBPath:     viper.GetString("db.path"),
			Timezone:   loc.String(),
			MacrosPath: viper.GetString("macros.path"),
			Prompt:     consolePrompt(),
		}, log)
		go func() {
			if err := con.Run(ctx, os.Stdin); err != nil {
				log.Errorw("console stopped", "err", err)
			}
		}()
	}

	// start HTTP server
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		AuthEnabled: viper.GetBool("auth.enabled"),
	})
	srv := server.New(server.Config{
		ReadHeaderTimeout: viper.GetDuration("http.read_header_timeout"),
		WriteTimeout:      viper.GetDuration("http.write_timeout"),
		IdleTimeout:       viper.GetDuration("http.idle_timeout"),
	})
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "ir_gateway.db")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("ir.device", "sim")
	viper.SetDefault("ir.sim.loopback", false)
	viper.SetDefault("ir.serial.port", "/dev/ttyUSB0")
	viper.SetDefault("ir.serial.baud", 115200)
	viper.SetDefault("ir.log_size", 30)
	viper.SetDefault("ir.poll_interval", service.DefaultPollInterval)
	viper.SetDefault("ir.timezone", "Local")
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.token_ttl", time.Hour)
	viper.SetDefault("console.enabled", true)
	viper.SetDefault("macros.path", "configs/macros.yml")
	viper.SetDefault("http.write_timeout", time.Minute)
}

// loadConfig reads configs/config.yml. A missing file is not an error; every
// key has a default and IRGW_* environment variables override the file.
func loadConfig() error {
	setDefaults()
	viper.SetEnvPrefix("IRGW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening event archive", "path", dbPath)
	return db.InitDB(dbPath)
}

// newDevice builds the IR front end selected by ir.device.
func newDevice(log *logger.Logger) (hardware.Transceiver, error) {
	switch kind := strings.ToLower(viper.GetString("ir.device")); kind {
	case "sim", "simulated":
		return hardware.NewSimulated(viper.GetBool("ir.sim.loopback")), nil
	case "serial":
		return hardware.NewSerial(hardware.SerialConfig{
			PortPath: viper.GetString("ir.serial.port"),
			BaudRate: viper.GetInt("ir.serial.baud"),
			OnUnparsed: func(line string) {
				log.Debugw("ir_bridge_line", "line", line)
			},
		}), nil
	default:
		return nil, fmt.Errorf("unknown device %q (want sim or serial)", kind)
	}
}

// openMacros loads the macro file and keeps it fresh. A broken file only
// disables macros.
func openMacros(ctx context.Context, log *logger.Logger) service.MacroSource {
	path := viper.GetString("macros.path")
	if path == "" {
		return nil
	}
	store, err := macro.Open(path, log)
	if err != nil {
		log.Errorw("macros disabled", "path", path, "err", err)
		return nil
	}
	go func() {
		if err := store.Watch(ctx); err != nil {
			log.Warnw("macro watch stopped", "path", path, "err", err)
		}
	}()
	return store
}

// consolePrompt returns "> " when stdin is an interactive terminal.
func consolePrompt() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "> "
	}
	return ""
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
