package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"quizapp/internal/app"
	"quizapp/internal/config"
	"quizapp/internal/repository"
	"quizapp/internal/service"
	"quizapp/pkg/database"
	"quizapp/pkg/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "quizapp",
		Usage: "multiple-choice quiz web application",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "configs",
				Usage:   "directory containing config.yaml",
				EnvVars: []string{"QUIZAPP_CONFIG_DIR"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create tables and seed sample questions, then exit",
				Action: migrate,
			},
			{
				Name:  "export-scores",
				Usage: "write all scores to an xlsx file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "scores.xlsx", Usage: "output file"},
				},
				Action: exportScores,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.InitLogger(cfg)
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	return application.Run()
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	if _, err := database.InitDB(&cfg.Database); err != nil {
		return err
	}
	logger.Log.Info("Database migration finished")
	return nil
}

func exportScores(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	scores := service.NewScoreService(repository.NewScoreRepository(db))
	if err := scores.Export(context.Background(), f); err != nil {
		return err
	}

	logger.Log.Info("Scores exported", zap.String("file", out))
	return nil
}
