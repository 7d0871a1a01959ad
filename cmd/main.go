package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"indigo/internal/configuration"
	"indigo/internal/journal"
	"indigo/internal/protocol"
	"indigo/internal/scoreboard"
	"indigo/internal/scoring/repository"
	"indigo/internal/scoring/rule"
	"indigo/internal/server"
)

// prepareLogger настраивает глобальный логгер с использованием slog.
// Принимает строковый уровень логирования (например, "debug", "info", "warn", "error")
// и устанавливает JSON-форматированный вывод на os.Stdout.
// Если уровень не распознан, используется уровень Info по умолчанию.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// При ошибках на этапе загрузки конфигурации, чтения правил или инициализации компонентов
// приложение завершается с кодом 1.
func main() {
	configPath := flag.String("config", "/etc/indigo/config.yaml", "configuration file")
	exportContest := flag.Int("export", 0, "export the protocol for the given contest id and exit")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	var rules []rule.Rule
	if len(config.Validation.Rules) != 0 {
		rules, err = rule.LoadFromFile(config.Validation.Rules)
		if err != nil {
			slog.Error("Unable to load admission rules", "error", err)
			os.Exit(1)
		}
	}

	scoresClient := repository.NewClient(config.Scores.Endpoint, config.Scores.Timeout)

	var saver protocol.FileSaver
	if len(config.Export.Directory) != 0 {
		saver = protocol.NewDirectorySaver(config.Export.Directory)
	}

	exportJournal := journal.NewJournal(
		config.Export.Journal.File,
		config.Export.Journal.Size,
		config.Export.Journal.Amount,
		config.Export.Journal.Recent,
	)
	defer exportJournal.Close()

	board := scoreboard.NewBoard(scoresClient, rules, saver, exportJournal)

	// Разовый экспорт: выбрать конкурс, сохранить протокол в архив и выйти.
	if *exportContest > 0 {
		board.SelectContest(context.Background(), *exportContest)
		artifact, ok := board.ExportProtocol()
		if !ok {
			slog.Error("Nothing to export: contest has no participants", "contest_id", *exportContest)
			os.Exit(1)
		}
		slog.Info("Protocol exported", "contest_id", *exportContest, "filename", artifact.Filename)
		return
	}

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	srv := server.NewServer(
		config.Server.Address,
		config.Server.Static,
		board,
		exportJournal,
	)
	go srv.ListenAndServe()
	slog.Info("Server listening " + config.Server.Address)
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
