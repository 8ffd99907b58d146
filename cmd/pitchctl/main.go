// pitchctl dispara e acompanha análises pelo terminal, usando a mesma
// API que o painel.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/config"
	"github.com/Werneck0live/vincipitch-dashboard/internal/httpclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/session"
)

const (
	exitOK    = 0
	exitFalha = 1
	exitUso   = 2
)

const usage = `uso: pitchctl <comando> [flags]

comandos:
  analisar  -empresa ID           processa e acompanha uma análise
  lote      [-empresas ID,ID]     processa um lote (todas as empresas se vazio)
  ranking   [-setor S] [-limite N]
  comparar  -a ID -b ID
  exportar  -tipo empresa|comparacao|ranking -formato pdf|docx|xlsx ...
  seed                            cadastra as empresas de demonstração
`

func main() {
	cfg := config.LoadCLIConfig()
	log := config.InitLoggerTo(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		api:  apiclient.New(cfg.APIBaseURL, httpclient.New(cfg.APITimeout), log),
		cfg:  session.ConfigFrom(cfg.Polling, 0),
		out:  os.Stdout,
		errw: os.Stderr,
		log:  log,
	}
	os.Exit(c.run(ctx, os.Args[1:]))
}

type cli struct {
	api  API
	cfg  session.Config
	out  io.Writer
	errw io.Writer
	log  *slog.Logger
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.errw, usage)
		return exitUso
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "analisar":
		return c.analisar(ctx, rest)
	case "lote":
		return c.lote(ctx, rest)
	case "ranking":
		return c.ranking(ctx, rest)
	case "comparar":
		return c.comparar(ctx, rest)
	case "exportar":
		return c.exportar(ctx, rest)
	case "seed":
		return c.seed(ctx)
	case "-h", "--help", "help":
		fmt.Fprint(c.out, usage)
		return exitOK
	default:
		fmt.Fprintf(c.errw, "comando desconhecido: %s\n\n%s", cmd, usage)
		return exitUso
	}
}

func (c *cli) fail(err error, fallback string) int {
	fmt.Fprintf(c.errw, "erro: %s\n", apiclient.DetailOr(err, fallback))
	c.log.Debug("command_failed", "err", err)
	return exitFalha
}
