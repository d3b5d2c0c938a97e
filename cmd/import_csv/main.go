// import_csv importa un archivo CSV de ítems directamente en el almacenamiento configurado
// (mismas variables de entorno que el servidor) e imprime el resultado como JSON.
//
// Uso: go run ./cmd/import_csv [--user ID] [--timeout 60s] archivo.csv
// Códigos de salida: 0 todo importado, 1 archivo ilegible o rechazado, 2 alguna fila falló.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
	"github.com/jhoicas/warehouse-ledger/internal/bootstrap"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/notify"
	"github.com/jhoicas/warehouse-ledger/pkg/config"
	"github.com/jhoicas/warehouse-ledger/pkg/logger"
)

func main() {
	userID := pflag.StringP("user", "u", "", "usuario al que se atribuye la importación")
	timeout := pflag.Duration("timeout", 0, "tiempo máximo (por defecto IMPORT_TIMEOUT_SECONDS)")
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_csv [--user ID] [--timeout 60s] archivo.csv")
		os.Exit(1)
	}
	os.Exit(run(pflag.Arg(0), *userID, *timeout))
}

func run(path, userID string, timeout time.Duration) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	// logs a stderr: stdout queda para el JSON del resultado
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	if timeout <= 0 {
		timeout = cfg.Import.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		return 1
	}
	defer f.Close()

	store, err := bootstrap.OpenStore(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		return 1
	}
	defer store.Close()

	dispatcher := notify.NewDispatcher(notify.Config{
		QueueSize:       cfg.Notify.QueueSize,
		Workers:         1,
		DeliveryTimeout: cfg.Notify.DeliveryTimeout,
	}, log.Component("notify"), notify.NewStoreDeliverer(store.Notifications))
	defer func() {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelClose()
		_ = dispatcher.Close(closeCtx)
	}()

	uc := importer.NewUseCase(store.Items, store.Storage, dispatcher,
		importer.Config{MaxRows: cfg.Import.MaxRows}, log.Component("import"))

	res, err := uc.ImportCSV(ctx, userID, f)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "CSV rechazado: %s\n", verr.Error())
		} else {
			log.Error().Err(err).Msg("importación")
		}
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir resultado: %v\n", err)
		return 1
	}

	log.Info().
		Int("total", res.TotalRows).
		Int("imported", res.ImportedRows).
		Int("errors", len(res.Errors)).
		Bool("truncated", res.Truncated).
		Msg("importación finalizada")
	if len(res.Errors) > 0 || res.Truncated {
		return 2
	}
	return 0
}
