// Command atmbank runs the interactive ATM text client over the in-memory
// banking core. All state lives in process memory and is lost on exit.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atmbank/internal/account"
	"atmbank/internal/admin"
	"atmbank/internal/client"
	"atmbank/internal/config"
	"atmbank/internal/directory"
	"atmbank/internal/engine"
	"atmbank/internal/money"
)

// Exit code for unrecognized startup arguments.
const invalidCommandArgsCode = 2

func main() {
	// "--no-gui" is accepted for compatibility; the text client is the
	// only front end, so it is also the no-argument default. Anything
	// else is an error.
	if len(os.Args) > 1 && !(len(os.Args) == 2 && strings.EqualFold(os.Args[1], "--no-gui")) {
		fmt.Fprintln(os.Stderr, "Invalid command line arguments.")
		os.Exit(invalidCommandArgsCode)
	}

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: invalid LOG_LEVEL %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	formatter, err := money.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		sugar.Fatalw("invalid locale or currency", "locale", cfg.Locale, "currency", cfg.Currency, "error", err)
	}

	dir := directory.New()
	eng := engine.New(dir, formatter, sugar)
	adm := admin.NewService(dir, sugar)

	// Bootstrap administrator, without which no privileged operation is
	// reachable on a fresh in-memory directory.
	root, err := dir.Open(account.KindAdmin, cfg.AdminName, cfg.AdminPIN, cfg.AdminPIN, decimal.Zero, decimal.Zero)
	if err != nil {
		sugar.Fatalw("seed administrator account", "error", err)
	}
	sugar.Infow("administrator account ready", "number", root.Number())
	fmt.Printf("Administrator account: #%d\n\n", root.Number())

	client.New(dir, eng, adm, os.Stdin, os.Stdout, sugar).Run()
	sugar.Info("session ended")
}
