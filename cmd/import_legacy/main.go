// import_legacy carga en el almacenamiento configurado las hojas del libro de inventario
// exportadas como CSV (una por hoja, columnas en orden canónico, primera fila = encabezado).
//
// Uso:
//
//	go run ./cmd/import_legacy -colorants colorants.csv -aux auxiliaires.csv \
//	    -consumption consommation.csv -orders commandes.csv -encoding iso-8859-1 -sep ';'
//
// El snapshot se valida con el motor de inventario antes de guardarse: los derivados
// (stock real, retrasos) se recalculan y los IDs de consumo faltantes se asignan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/infrastructure/legacy"
	"github.com/jhoicas/colorstock/internal/infrastructure/storage"
	"github.com/jhoicas/colorstock/pkg/config"
	"github.com/jhoicas/colorstock/pkg/logger"
)

func main() {
	var (
		colorants   = flag.String("colorants", "", "CSV de la hoja colorants")
		auxiliaries = flag.String("aux", "", "CSV de la hoja produits auxiliaires")
		consumption = flag.String("consumption", "", "CSV de la hoja consommation")
		orders      = flag.String("orders", "", "CSV de la hoja commandes")
		encoding    = flag.String("encoding", "utf-8", "utf-8 | iso-8859-1")
		sep         = flag.String("sep", ",", "separador de columnas")
		force       = flag.Bool("force", false, "reemplazar un inventario existente")
		dryRun      = flag.Bool("dry-run", false, "validar sin guardar")
	)
	flag.Parse()

	if *colorants == "" && *auxiliaries == "" && *consumption == "" && *orders == "" {
		fmt.Fprintln(os.Stderr, "indicar al menos una hoja (-colorants, -aux, -consumption, -orders)")
		flag.Usage()
		os.Exit(2)
	}
	enc, err := legacy.ParseEncoding(*encoding)
	if err != nil {
		fail(err)
	}
	comma, size := utf8.DecodeRuneInString(*sep)
	if size == 0 || size != len(*sep) {
		fail(fmt.Errorf("separador %q inválido: debe ser un solo carácter", *sep))
	}

	cfg, err := config.Load()
	if err != nil {
		fail(fmt.Errorf("cargar configuración: %w", err))
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	snap, err := legacy.Reader{Encoding: enc, Comma: comma}.ReadFiles(legacy.Files{
		Colorants:   *colorants,
		Auxiliaries: *auxiliaries,
		Consumption: *consumption,
		Orders:      *orders,
	})
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, closeStore, err := storage.Open(ctx, cfg, log.Named("storage"))
	if err != nil {
		fail(err)
	}
	defer closeStore()

	if !*force {
		current, err := repo.Load(ctx)
		if err != nil {
			fail(fmt.Errorf("leer inventario actual: %w", err))
		}
		if len(current.Products)+len(current.Consumption)+len(current.Orders) > 0 {
			fail(fmt.Errorf("el almacenamiento ya contiene datos; usar -force para reemplazarlos"))
		}
	}

	engine, err := inventory.NewEngine(snap, repo, inventory.WithLogger(log.Named("inventory")))
	if err != nil {
		fail(fmt.Errorf("snapshot inválido: %w", err))
	}
	if *dryRun {
		log.Info().Int("alerts", len(engine.ActiveAlerts())).Msg("validación correcta (dry-run, nada guardado)")
		return
	}
	if err := engine.Flush(ctx); err != nil {
		fail(err)
	}
	log.Info().
		Str("driver", cfg.Store.Driver).
		Int("alerts", len(engine.ActiveAlerts())).
		Int("orders", engine.Statistics().Total).
		Msg("inventario importado")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "import_legacy: %v\n", err)
	os.Exit(1)
}
