package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"ayana_shop/internal/config"
	"ayana_shop/internal/database"
	"ayana_shop/internal/logging"
)

func main() {
	app := &cli.App{
		Name:   "ayana",
		Usage:  "boutique de fleurs Ayana",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serveur HTTP et relance des clients inactifs",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "applique les migrations Postgres",
				Action: migrateCmd,
			},
			{
				Name:   "mail-inactive",
				Usage:  "envoie une passe de relances aux clients inactifs",
				Action: mailInactive,
			},
			{
				Name:  "create-employee",
				Usage: "crée un compte employé confirmé",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name"},
				},
				Action: createEmployee,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("❌ Arrêt de l'application")
	}
}

// bootstrap config, logger et connexions communes à toutes les commandes
func bootstrap(ctx context.Context) (config.Config, *logrus.Logger, *database.Clients, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, errors.Wrap(err, "configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	clients, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return cfg, log, nil, err
	}
	if err := database.Migrate(clients.Postgres); err != nil {
		clients.Close()
		return cfg, log, nil, err
	}
	log.Info("✅ Migrations appliquées")
	return cfg, log, clients, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, clients, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer clients.Close()

	app, err := wire(cfg, clients, log)
	if err != nil {
		return err
	}

	app.job.Start(ctx)
	defer app.job.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Serveur Ayana lancé sur le port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Arrêt du serveur...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrateCmd(c *cli.Context) error {
	_, _, clients, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	clients.Close()
	return nil
}

func mailInactive(c *cli.Context) error {
	cfg, log, clients, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer clients.Close()

	app, err := wire(cfg, clients, log)
	if err != nil {
		return err
	}
	sent, err := app.job.RunOnce(c.Context)
	if err != nil {
		return err
	}
	log.Infof("📧 %d relance(s) envoyée(s)", sent)
	return nil
}

func createEmployee(c *cli.Context) error {
	cfg, log, clients, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer clients.Close()

	app, err := wire(cfg, clients, log)
	if err != nil {
		return err
	}
	user, err := app.accounts.CreateEmployee(c.Context, c.String("email"), c.String("name"), c.String("password"))
	if err != nil {
		return err
	}
	log.WithField("user_id", user.ID).Info("👤 Employé créé : ", user.Email)
	return nil
}
